package xltab

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// CellWriter is the narrow contract between the resolution engine and a
// rendering backend: sheets are created up front, then every resolved
// cell is written by absolute position, and table extents are reported
// last for downstream styling.
type CellWriter interface {
	AddSheet(name string) error
	WriteValue(sheet string, row, col int, v any) error
	WriteFormula(sheet string, row, col int, formula string) error
	MarkTable(sheet string, extent TableExtent) error
}

// ExcelizeWriter implements CellWriter on an excelize workbook.
type ExcelizeWriter struct {
	file        *excelize.File
	sheetCount  int
	excelTables bool
}

// WriterOption configures an ExcelizeWriter.
type WriterOption func(*ExcelizeWriter)

// WithExcelTables makes MarkTable emit a real Excel table object over
// each table's extent instead of ignoring the metadata.
func WithExcelTables() WriterOption {
	return func(w *ExcelizeWriter) { w.excelTables = true }
}

// NewExcelizeWriter creates a writer backed by a fresh excelize file.
func NewExcelizeWriter(opts ...WriterOption) *ExcelizeWriter {
	w := &ExcelizeWriter{file: excelize.NewFile()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// AddSheet creates a sheet. The first sheet takes over excelize's default
// "Sheet1" so the output contains exactly the sheets that were added.
func (w *ExcelizeWriter) AddSheet(name string) error {
	w.sheetCount++
	if w.sheetCount == 1 {
		if name == "Sheet1" {
			return nil
		}
		return w.file.SetSheetName("Sheet1", name)
	}
	_, err := w.file.NewSheet(name)
	return err
}

// WriteValue writes a literal value at the 0-based (row, col) position.
func (w *ExcelizeWriter) WriteValue(sheet string, row, col int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return err
	}
	return w.file.SetCellValue(sheet, cell, v)
}

// WriteFormula writes resolved formula text at the 0-based (row, col)
// position. The leading "=" is stripped, which is how excelize expects
// formulas.
func (w *ExcelizeWriter) WriteFormula(sheet string, row, col int, formula string) error {
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return err
	}
	return w.file.SetCellFormula(sheet, cell, strings.TrimPrefix(formula, "="))
}

// MarkTable records a table's extent. A no-op unless WithExcelTables is
// set, in which case an Excel table object is laid over the extent.
func (w *ExcelizeWriter) MarkTable(sheet string, extent TableExtent) error {
	if !w.excelTables {
		return nil
	}
	first := extent.Area.First
	last := extent.Area.Last
	return w.file.AddTable(sheet, &excelize.Table{
		Range: first.CellName() + ":" + last.CellName(),
		Name:  safeTableName(extent.Name),
	})
}

// Save writes the workbook to a file.
func (w *ExcelizeWriter) Save(path string) error {
	if err := w.file.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %q: %w", path, err)
	}
	return nil
}

// Write writes the workbook to the given writer.
func (w *ExcelizeWriter) Write(out io.Writer) error {
	return w.file.Write(out)
}

// File returns the underlying excelize file for advanced operations.
func (w *ExcelizeWriter) File() *excelize.File {
	return w.file
}

// Close releases the underlying excelize file.
func (w *ExcelizeWriter) Close() error {
	return w.file.Close()
}

// safeTableName sanitizes a table name for Excel's table-name rules:
// letters, digits, underscore and dot, not starting with a digit.
func safeTableName(name string) string {
	var b strings.Builder
	for i, r := range name {
		ok := r == '_' || r == '.' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9' && i > 0)
		if ok {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}
