package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/BradenHooton/gridboard/internal/settings"
	"github.com/BradenHooton/gridboard/internal/tableview"
)

type layoutOptions struct {
	q           queryFlags
	settingsDir string
	hide        []string
	pin         map[string]string
	widths      map[string]int
	autofit     []string
	save        bool
	asJSON      bool
}

func newLayoutCmd(a *app) *cobra.Command {
	var opts layoutOptions

	cmd := &cobra.Command{
		Use:       "layout <users|products>",
		Short:     "Resolve column widths and sticky offsets for one page of a table",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"users", "products"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLayout(cmd, args[0], opts)
		},
	}

	opts.q.register(cmd, true)
	flags := cmd.Flags()
	flags.StringVar(&opts.settingsDir, "settings-dir", "", "directory of saved view settings (default none)")
	flags.StringSliceVar(&opts.hide, "hide", nil, "column keys to hide")
	flags.StringToStringVar(&opts.pin, "pin", nil, "sticky side per column, e.g. email=left,sku=none")
	flags.StringToIntVar(&opts.widths, "width", nil, "manual width in pixels per column, e.g. username=200")
	flags.StringSliceVar(&opts.autofit, "autofit", nil, "column keys to size to their content after --width")
	flags.BoolVar(&opts.save, "save", false, "persist --hide and --pin changes to --settings-dir")
	flags.BoolVar(&opts.asJSON, "json", false, "print the layout as JSON")
	return cmd
}

func (a *app) runLayout(cmd *cobra.Command, table string, opts layoutOptions) error {
	key := table + "-management-settings"
	schema, ok := tableview.SchemaFor(key)
	if !ok {
		return unknownTable(table)
	}
	if opts.save && opts.settingsDir == "" {
		return fmt.Errorf("--save requires --settings-dir")
	}

	var store settings.Store = settings.NewMemoryStore()
	if opts.settingsDir != "" {
		fs, err := settings.NewFileStore(opts.settingsDir)
		if err != nil {
			return err
		}
		store = fs
	}

	ctx := cmd.Context()
	vs := settings.LoadOrDefault(ctx, store, key, a.logger)

	d, err := a.defaults(table)
	if err != nil {
		return err
	}
	spec, err := opts.q.spec(d, a.cfg.ImmediateFilters(), a.logger)
	if err != nil {
		return err
	}
	_, rows, _, err := a.listPage(ctx, table, spec)
	if err != nil {
		return err
	}

	sort := tableview.SortState{Field: spec.SortBy, Order: spec.SortOrder}
	engine := tableview.New(tableview.Config{
		Columns:    schema,
		Visibility: vs.ColumnVisibility,
		Sticky:     vs.ColumnSticky,
		Sort:       sort,
		Measurer:   tableview.NewRuneMeasurer(),
		Logger:     a.logger,
	})
	engine.Mount(rows)

	var binding *settings.Binding
	if opts.save {
		binding = settings.Bind(store, key, engine, a.logger)
	}
	for _, k := range opts.hide {
		engine.SetVisibility(strings.TrimSpace(k), false)
	}
	for k, side := range opts.pin {
		engine.SetSticky(k, tableview.ParseSticky(side))
	}
	engine.ReplayWidths(opts.widths)
	for _, k := range opts.autofit {
		cols := engine.Columns()
		if i := slices.IndexFunc(cols, func(c tableview.Column) bool { return c.Key == k }); i >= 0 {
			engine.AutoFit(i)
		}
	}

	if binding != nil {
		if err := binding.Close(); err != nil {
			return err
		}
	}

	layout := engine.Layout()
	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(layout)
	}
	return writeLayout(out, layout, len(rows))
}

// writeLayout prints the layout as an aligned plain-text table
func writeLayout(w io.Writer, layout []tableview.LayoutColumn, rows int) error {
	header := []string{"KEY", "LABEL", "WIDTH", "STICKY", "OFFSET", "SORT", "FLAGS"}
	lines := [][]string{header}
	total := 0
	for _, col := range layout {
		total += col.Width
		offset := "-"
		if col.Offset != nil {
			offset = strconv.Itoa(*col.Offset)
		}
		sort := "-"
		if col.Sort != "" {
			sort = string(col.Sort)
		}
		lines = append(lines, []string{
			col.Key,
			col.Label,
			strconv.Itoa(col.Width),
			string(col.Sticky),
			offset,
			sort,
			layoutFlags(col),
		})
	}

	widths := make([]int, len(header))
	for _, line := range lines {
		for i, cell := range line {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	var b strings.Builder
	for _, line := range lines {
		for i, cell := range line {
			if i > 0 {
				b.WriteString("  ")
			}
			if i == len(line)-1 {
				b.WriteString(cell)
				continue
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]))
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "\n%d columns, %dpx total, measured over %d rows\n", len(layout), total, rows)

	_, err := io.WriteString(w, b.String())
	return err
}

func layoutFlags(col tableview.LayoutColumn) string {
	var flags []string
	if !col.Sortable {
		flags = append(flags, "unsortable")
	}
	if !col.Resizable {
		flags = append(flags, "fixed")
	}
	if col.Manual {
		flags = append(flags, "manual")
	}
	return strings.Join(flags, ",")
}
