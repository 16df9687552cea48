package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/BradenHooton/gridboard/internal/export"
	"github.com/BradenHooton/gridboard/internal/models"
	"github.com/BradenHooton/gridboard/internal/query"
	"github.com/BradenHooton/gridboard/internal/settings"
	"github.com/BradenHooton/gridboard/internal/tableview"
	pkghttp "github.com/BradenHooton/gridboard/pkg/http"
)

// TableHandler serves the column layout and file exports of the users and
// products tables
type TableHandler struct {
	users    UserService
	products ProductService
	store    settings.Store
	logger   *slog.Logger
	now      func() time.Time
}

func NewTableHandler(users UserService, products ProductService, store settings.Store, logger *slog.Logger) *TableHandler {
	return &TableHandler{
		users:    users,
		products: products,
		store:    store,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock replaces the export timestamp source
func (h *TableHandler) WithClock(now func() time.Time) *TableHandler {
	h.now = now
	return h
}

// LayoutRequest previews unsaved overrides on top of the stored settings.
// Widths replays manual resizes, keyed by column.
type LayoutRequest struct {
	ColumnVisibility map[string]bool   `json:"columnVisibility"`
	ColumnSticky     map[string]string `json:"columnSticky" validate:"dive,oneof=left right none false"`
	Widths           map[string]int    `json:"widths" validate:"dive,gt=0"`
}

// LayoutResponse is the header render plan for one page of data
type LayoutResponse struct {
	Columns    []tableview.LayoutColumn `json:"columns"`
	TotalWidth int                      `json:"totalWidth"`
	Sort       tableview.SortState      `json:"sort"`
	Rows       int                      `json:"rows"`
}

func (h *TableHandler) RegisterRoutes(router chi.Router) {
	router.Route("/tables/{key}", func(r chi.Router) {
		r.Post("/layout", h.Layout)
		r.Get("/export", h.Export)
	})
}

// tableName maps a settings key such as "users-management-settings" to the
// table it configures
func tableName(key string) string {
	return strings.TrimSuffix(key, "-management-settings")
}

// pageRows loads the current page of a table for the query in values
func (h *TableHandler) pageRows(ctx context.Context, table string, values url.Values) ([]tableview.Row, query.Spec, error) {
	switch table {
	case "users":
		spec := h.users.Schema().Parse(values)
		result, err := h.users.ListUsers(ctx, spec)
		if err != nil {
			return nil, spec, err
		}
		return tableview.UserRows(result.Records), spec, nil
	case "products":
		spec := h.products.Schema().Parse(values)
		page, err := h.products.ListProducts(ctx, spec)
		if err != nil {
			return nil, spec, err
		}
		return tableview.ProductRows(page.Records), spec, nil
	default:
		return nil, query.Spec{}, models.Errorf(models.ErrNotFound, fmt.Sprintf("Unknown table %q", table))
	}
}

// allRows loads every row matching the query in values, unpaginated
func (h *TableHandler) allRows(ctx context.Context, table string, values url.Values) ([]tableview.Row, error) {
	switch table {
	case "users":
		users, err := h.users.SelectUsers(ctx, h.users.Schema().Parse(values))
		if err != nil {
			return nil, err
		}
		return tableview.UserRows(users), nil
	case "products":
		products, err := h.products.SelectProducts(ctx, h.products.Schema().Parse(values))
		if err != nil {
			return nil, err
		}
		return tableview.ProductRows(products), nil
	default:
		return nil, models.Errorf(models.ErrNotFound, fmt.Sprintf("Unknown table %q", table))
	}
}

// Layout resolves visible columns, content widths and sticky offsets for
// the page selected by the query string
//
// @Router /tables/{key}/layout [post]
func (h *TableHandler) Layout(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := settings.ValidateKey(key); err != nil {
		pkghttp.WriteBadRequest(w, models.Reason(err))
		return
	}
	schema, ok := tableview.SchemaFor(key)
	if !ok {
		pkghttp.WriteNotFound(w, fmt.Sprintf("Unknown table %q", tableName(key)))
		return
	}

	var req LayoutRequest
	if r.ContentLength != 0 && !decodeAndValidate(w, r, &req) {
		return
	}

	vs := settings.LoadOrDefault(r.Context(), h.store, key, h.logger)
	maps.Copy(vs.ColumnVisibility, req.ColumnVisibility)
	for k, side := range req.ColumnSticky {
		vs.ColumnSticky[k] = tableview.ParseSticky(side)
	}

	rows, spec, err := h.pageRows(r.Context(), tableName(key), r.URL.Query())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	sort := tableview.SortState{Field: spec.SortBy, Order: spec.SortOrder}
	engine := tableview.New(tableview.Config{
		Columns:    schema,
		Visibility: vs.ColumnVisibility,
		Sticky:     vs.ColumnSticky,
		Sort:       sort,
		Measurer:   tableview.NewRuneMeasurer(),
		Logger:     h.logger,
	})
	engine.Mount(rows)
	engine.ReplayWidths(req.Widths)

	layout := engine.Layout()
	total := 0
	for _, col := range layout {
		total += col.Width
	}

	pkghttp.WriteSuccess(w, http.StatusOK, LayoutResponse{
		Columns:    layout,
		TotalWidth: total,
		Sort:       sort,
		Rows:       len(rows),
	}, "")
}

// Export streams every row matching the query string as a file. The
// columns parameter picks and orders the exported fields.
//
// @Router /tables/{key}/export [get]
func (h *TableHandler) Export(w http.ResponseWriter, r *http.Request) {
	table := tableName(chi.URLParam(r, "key"))
	available, ok := export.Available(table)
	if !ok {
		pkghttp.WriteNotFound(w, fmt.Sprintf("Unknown table %q", table))
		return
	}

	values := r.URL.Query()
	format, err := export.ParseFormat(values.Get("format"))
	if err != nil {
		pkghttp.WriteBadRequest(w, models.Reason(err))
		return
	}
	columns, err := export.Select(available, query.SplitSet(values.Get("columns")))
	if err != nil {
		pkghttp.WriteBadRequest(w, models.Reason(err))
		return
	}

	rows, err := h.allRows(r.Context(), table, values)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	title := values.Get("title")
	if title == "" {
		title = tableTitle(table)
	}
	doc := export.Document{
		Title:       title,
		Columns:     columns,
		Rows:        rows,
		GeneratedAt: h.now(),
	}

	w.Header().Set("Content-Type", format.ContentType())
	if format != export.FormatHTML {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename(format)))
	}
	w.WriteHeader(http.StatusOK)

	if err := export.Write(w, format, doc); err != nil {
		h.logger.Error("export failed after headers were sent",
			slog.String("table", table),
			slog.String("format", string(format)),
			slog.String("error", err.Error()),
		)
	}
}

func tableTitle(table string) string {
	switch table {
	case "users":
		return "User Management"
	case "products":
		return "Product Management"
	default:
		return table
	}
}
