// Package main provides the CLI entry point for xltab.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/javajack/xltab"
	"github.com/spf13/cobra"
)

var (
	outputPath  string
	excelTables bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "xltab [manifest.json]",
		Short: "Build an xlsx workbook from a table manifest",
		Long: `xltab reads a JSON manifest describing sheets, tables and symbolic
formulas (referencing columns by table and column name), lays the tables
out, resolves every formula to concrete cell addresses and writes the
result as an .xlsx file.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "workbook.xlsx", "Output .xlsx file path")
	rootCmd.Flags().BoolVar(&excelTables, "excel-tables", false, "Emit Excel table objects over each table's extent")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// manifest mirrors the JSON input format.
type manifest struct {
	Sheets []sheetSpec `json:"sheets"`
}

type sheetSpec struct {
	Name   string      `json:"name"`
	Tables []tableSpec `json:"tables"`
	Values []valueSpec `json:"values"`
}

type tableSpec struct {
	Name    string   `json:"name"`
	Anchor  string   `json:"anchor"` // optional A1 anchor like "B3"
	Header  *bool    `json:"header"` // default true
	RowGap  *int     `json:"rowGap"` // default 1
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

type valueSpec struct {
	Cell    string `json:"cell"` // A1 position like "E2"
	Value   any    `json:"value"`
	Formula string `json:"formula"`
}

func run(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}
	var m manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("parse manifest: %w", err)
	}
	if len(m.Sheets) == 0 {
		return fmt.Errorf("manifest has no sheets")
	}

	wb := xltab.NewWorkbook()
	for _, ss := range m.Sheets {
		sheet, err := wb.NewSheet(ss.Name)
		if err != nil {
			return err
		}
		for _, ts := range ss.Tables {
			if err := addTable(sheet, ts); err != nil {
				return err
			}
		}
		for _, vs := range ss.Values {
			if err := addValue(sheet, vs); err != nil {
				return err
			}
		}
	}

	writerOpts := []xltab.WriterOption{}
	if excelTables {
		writerOpts = append(writerOpts, xltab.WithExcelTables())
	}
	w := xltab.NewExcelizeWriter(writerOpts...)
	defer w.Close()

	if err := wb.Render(w); err != nil {
		return err
	}
	if err := w.Save(outputPath); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outputPath)
	return nil
}

func addTable(sheet *xltab.Sheet, ts tableSpec) error {
	var tableOpts []xltab.TableOption
	if ts.Header != nil && !*ts.Header {
		tableOpts = append(tableOpts, xltab.WithoutHeader())
	}
	table, err := xltab.NewTable(ts.Name, ts.Columns, tableOpts...)
	if err != nil {
		return err
	}

	for i, row := range ts.Rows {
		cells := make([]any, len(row))
		for j, cell := range row {
			v, err := parseCell(cell)
			if err != nil {
				return fmt.Errorf("table %q row %d: %w", ts.Name, i, err)
			}
			cells[j] = v
		}
		if err := table.AddRow(cells...); err != nil {
			return err
		}
	}

	var placeOpts []xltab.PlaceOption
	if ts.Anchor != "" {
		ref, err := xltab.ParseCellRef(ts.Anchor)
		if err != nil {
			return fmt.Errorf("table %q: %w", ts.Name, err)
		}
		placeOpts = append(placeOpts, xltab.At(ref.Row, ref.Col))
	}
	if ts.RowGap != nil {
		placeOpts = append(placeOpts, xltab.WithRowGap(*ts.RowGap))
	}
	_, _, err = sheet.AddTable(table, placeOpts...)
	return err
}

func addValue(sheet *xltab.Sheet, vs valueSpec) error {
	ref, err := xltab.ParseCellRef(vs.Cell)
	if err != nil {
		return fmt.Errorf("value cell %q: %w", vs.Cell, err)
	}
	if vs.Formula != "" {
		e, err := xltab.ParseFormula(vs.Formula)
		if err != nil {
			return err
		}
		sheet.AddValue(ref.Row, ref.Col, e)
		return nil
	}
	v, err := parseCell(vs.Value)
	if err != nil {
		return fmt.Errorf("value cell %q: %w", vs.Cell, err)
	}
	sheet.AddValue(ref.Row, ref.Col, v)
	return nil
}

// parseCell turns a manifest cell into a table cell. Strings starting
// with "=" are parsed as symbolic formulas; anything else is a literal.
func parseCell(v any) (any, error) {
	s, ok := v.(string)
	if !ok || !strings.HasPrefix(s, "=") {
		return v, nil
	}
	return xltab.ParseFormula(s)
}
