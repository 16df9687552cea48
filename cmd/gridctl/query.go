package main

import (
	"fmt"
	"log/slog"
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BradenHooton/gridboard/internal/query"
)

// queryFlags are the search, filter and sort flags shared by list, export
// and layout
type queryFlags struct {
	search  string
	filters []string
	toggles []string
	sortBy  string
	order   string
	page    int
	limit   int
}

func (f *queryFlags) register(cmd *cobra.Command, paging bool) {
	flags := cmd.Flags()
	flags.StringVarP(&f.search, "search", "s", "", "search term")
	flags.StringArrayVarP(&f.filters, "filter", "f", nil, "filter as key=value, repeatable (e.g. roleFilter=admin,editor)")
	flags.StringArrayVar(&f.toggles, "show", nil, "show/hide toggle as key[=bool], repeatable (e.g. showInactive=false)")
	flags.StringVar(&f.sortBy, "sort", "", "sort field")
	flags.StringVar(&f.order, "order", "", "sort order, asc or desc")
	if paging {
		flags.IntVarP(&f.page, "page", "p", 0, "page number")
		flags.IntVarP(&f.limit, "limit", "l", 0, "page size")
	}
}

// spec stages every flag on a filter draft and commits it. Edits return the
// draft to the first page, so the page flag is applied after the commit.
func (f *queryFlags) spec(d query.Defaults, immediate bool, logger *slog.Logger) (query.Spec, error) {
	values := url.Values{}
	if f.sortBy != "" {
		values.Set("sortBy", f.sortBy)
	}
	if f.order != "" {
		if o := strings.ToLower(f.order); o != string(query.Asc) && o != string(query.Desc) {
			return query.Spec{}, fmt.Errorf("--order must be asc or desc (got %q)", f.order)
		}
		values.Set("sortOrder", f.order)
	}
	if f.limit > 0 {
		values.Set("limit", strconv.Itoa(f.limit))
	}

	draft := query.NewDraft(query.ParseSpec(values, d), immediate)
	if f.search != "" {
		draft.Set("search", strings.TrimSpace(f.search))
	}

	for _, kv := range f.filters {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !slices.Contains(d.FilterKeys, key) {
			return query.Spec{}, fmt.Errorf("unknown filter %q (want key=value with key one of %s)",
				kv, strings.Join(d.FilterKeys, ", "))
		}
		draft.Set(key, strings.TrimSpace(value))
	}

	for _, kv := range f.toggles {
		key, raw, hasValue := strings.Cut(kv, "=")
		if _, known := d.Toggles[key]; !known {
			return query.Spec{}, fmt.Errorf("unknown toggle %q (want one of %s)",
				key, strings.Join(slices.Sorted(maps.Keys(d.Toggles)), ", "))
		}
		on := true
		if hasValue {
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return query.Spec{}, fmt.Errorf("toggle %s: %q is not a boolean", key, raw)
			}
			on = b
		}
		draft.Toggle(key, on)
	}

	if draft.Dirty() {
		logger.Debug("applying staged filters", slog.String("query", draft.Pending().Values().Encode()))
	}
	spec := draft.Apply()
	if f.page > 0 {
		spec.Page = f.page
	}

	logger.Debug("query committed",
		slog.Bool("immediate", immediate),
		slog.Bool("filtered", spec.HasActiveFilters(d)),
		slog.String("query", spec.Values().Encode()),
	)
	return spec, nil
}
