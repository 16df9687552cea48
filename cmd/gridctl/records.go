package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/BradenHooton/gridboard/internal/export"
	"github.com/BradenHooton/gridboard/internal/query"
)

func newUsersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List and export generated users",
	}
	cmd.AddCommand(newListCmd(a, "users"), newExportCmd(a, "users"))
	return cmd
}

func newProductsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List and export generated products",
	}
	cmd.AddCommand(newListCmd(a, "products"), newExportCmd(a, "products"))
	return cmd
}

func newListCmd(a *app, table string) *cobra.Command {
	var (
		q      queryFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("Print one page of %s", table),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.defaults(table)
			if err != nil {
				return err
			}
			spec, err := q.spec(d, a.cfg.ImmediateFilters(), a.logger)
			if err != nil {
				return err
			}

			payload, rows, info, err := a.listPage(cmd.Context(), table, spec)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(payload)
			}

			err = export.Write(out, export.FormatText, export.Document{
				Title:       tableTitle(table),
				Columns:     exportColumns(table),
				Rows:        rows,
				GeneratedAt: a.now(),
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "\nPage %d of %d, %d of %d matching records (%d total)\n",
				info.Page, info.TotalPages, info.Shown, info.TotalFiltered, info.Total)
			return err
		},
	}

	q.register(cmd, true)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the API response body instead of a table")
	return cmd
}

func newExportCmd(a *app, table string) *cobra.Command {
	var (
		q       queryFlags
		format  string
		columns string
		title   string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: fmt.Sprintf("Export every matching %s record", table),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			cols, err := export.Select(exportColumns(table), query.SplitSet(columns))
			if err != nil {
				return err
			}

			d, err := a.defaults(table)
			if err != nil {
				return err
			}
			spec, err := q.spec(d, a.cfg.ImmediateFilters(), a.logger)
			if err != nil {
				return err
			}
			rows, err := a.allRows(cmd.Context(), table, spec)
			if err != nil {
				return err
			}

			if title == "" {
				title = tableTitle(table)
			}
			doc := export.Document{
				Title:       title,
				Columns:     cols,
				Rows:        rows,
				GeneratedAt: a.now(),
			}

			if output == "" || output == "-" {
				return export.Write(cmd.OutOrStdout(), f, doc)
			}
			if output == "auto" {
				output = doc.Filename(f)
			}
			if err := writeFile(output, func(w io.Writer) error { return export.Write(w, f, doc) }); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d records to %s\n", len(rows), output)
			return err
		},
	}

	q.register(cmd, false)
	flags := cmd.Flags()
	flags.StringVar(&format, "format", "csv", "csv, excel, text or print")
	flags.StringVar(&columns, "columns", "", "comma separated column keys (default all)")
	flags.StringVar(&title, "title", "", "document title")
	flags.StringVarP(&output, "output", "o", "", `output file, "-" for stdout or "auto" for a dated file name`)
	return cmd
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return write(file)
}
