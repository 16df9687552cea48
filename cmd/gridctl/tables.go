package main

import (
	"context"
	"fmt"

	"github.com/BradenHooton/gridboard/internal/export"
	"github.com/BradenHooton/gridboard/internal/query"
	"github.com/BradenHooton/gridboard/internal/tableview"
)

// pageInfo is the paging footer of a list
type pageInfo struct {
	Page          int
	TotalPages    int
	Shown         int
	TotalFiltered int
	Total         int
}

func (a *app) defaults(table string) (query.Defaults, error) {
	switch table {
	case "users":
		return a.users.Schema().Defaults, nil
	case "products":
		return a.products.Schema().Defaults, nil
	default:
		return query.Defaults{}, unknownTable(table)
	}
}

// listPage runs one page of a table query. payload is the service result
// as the API would serve it.
func (a *app) listPage(ctx context.Context, table string, spec query.Spec) (payload any, rows []tableview.Row, info pageInfo, err error) {
	switch table {
	case "users":
		result, err := a.users.ListUsers(ctx, spec)
		if err != nil {
			return nil, nil, pageInfo{}, err
		}
		return result, tableview.UserRows(result.Records), pageInfoOf(result), nil
	case "products":
		page, err := a.products.ListProducts(ctx, spec)
		if err != nil {
			return nil, nil, pageInfo{}, err
		}
		return page, tableview.ProductRows(page.Records), pageInfoOf(page.Result), nil
	default:
		return nil, nil, pageInfo{}, unknownTable(table)
	}
}

// allRows returns every row matching spec, unpaginated
func (a *app) allRows(ctx context.Context, table string, spec query.Spec) ([]tableview.Row, error) {
	switch table {
	case "users":
		users, err := a.users.SelectUsers(ctx, spec)
		if err != nil {
			return nil, err
		}
		return tableview.UserRows(users), nil
	case "products":
		products, err := a.products.SelectProducts(ctx, spec)
		if err != nil {
			return nil, err
		}
		return tableview.ProductRows(products), nil
	default:
		return nil, unknownTable(table)
	}
}

func pageInfoOf[T any](r query.Result[T]) pageInfo {
	return pageInfo{
		Page:          r.Page,
		TotalPages:    r.TotalPages,
		Shown:         len(r.Records),
		TotalFiltered: r.TotalFiltered,
		Total:         r.Total,
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

func exportColumns(table string) []export.Column {
	cols, _ := export.Available(table)
	return cols
}

func unknownTable(table string) error {
	return fmt.Errorf("unknown table %q (want users or products)", table)
}
