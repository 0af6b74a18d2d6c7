package xltab

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// renderToFile renders a workbook and reopens the written bytes with
// excelize for verification.
func renderToFile(t *testing.T, wb *Workbook, opts ...WriterOption) *excelize.File {
	t.Helper()

	w := NewExcelizeWriter(opts...)
	require.NoError(t, wb.Render(w))

	var buf bytes.Buffer
	require.NoError(t, w.Write(&buf))
	require.NoError(t, w.Close())

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestRenderRoundTrip(t *testing.T) {
	wb := buildScenario(t)
	f := renderToFile(t, wb)

	assert.Equal(t, []string{"Sheet1"}, f.GetSheetList())

	header, err := f.GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "col_1", header)

	v, err := f.GetCellValue("Sheet1", "B3")
	require.NoError(t, err)
	assert.Equal(t, "5", v)

	formula, err := f.GetCellFormula("Sheet1", "C2")
	require.NoError(t, err)
	assert.Equal(t, "'Sheet1'!A2+'Sheet1'!B2", formula)

	formula, err = f.GetCellFormula("Sheet1", "C4")
	require.NoError(t, err)
	assert.Equal(t, "'Sheet1'!A4+'Sheet1'!B4", formula)
}

func TestRenderMultipleSheets(t *testing.T) {
	wb := NewWorkbook()

	summary, err := wb.NewSheet("Summary")
	require.NoError(t, err)
	data, err := wb.NewSheet("Data")
	require.NoError(t, err)

	tbl, err := NewTable("figures", []string{"amount"})
	require.NoError(t, err)
	require.NoError(t, tbl.AddRow(10))
	require.NoError(t, tbl.AddRow(32))
	_, _, err = data.AddTable(tbl)
	require.NoError(t, err)

	summary.AddValue(0, 0, "Total")
	summary.AddValue(0, 1, Call("SUM", ColOf("figures", "amount")))

	f := renderToFile(t, wb)

	// The first added sheet takes over excelize's default sheet.
	assert.Equal(t, []string{"Summary", "Data"}, f.GetSheetList())

	formula, err := f.GetCellFormula("Summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, "SUM('Data'!$A$2:$A$3)", formula)

	v, err := f.GetCellValue("Data", "A1")
	require.NoError(t, err)
	assert.Equal(t, "amount", v)
}

func TestRenderExcelTables(t *testing.T) {
	wb := buildScenario(t)
	f := renderToFile(t, wb, WithExcelTables())

	tables, err := f.GetTables("Sheet1")
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "A", tables[0].Name)
	assert.Equal(t, "A1:C4", tables[0].Range)
}

func TestRenderFailsWithoutPartialOutput(t *testing.T) {
	tbl, err := NewTable("T", []string{"x"})
	require.NoError(t, err)
	require.NoError(t, tbl.AddRow(Call("SUM", ColOf("ghost", "x"))))

	wb := NewWorkbook()
	sheet, err := wb.NewSheet("Sheet1")
	require.NoError(t, err)
	_, _, err = sheet.AddTable(tbl)
	require.NoError(t, err)

	w := NewExcelizeWriter()
	defer w.Close()

	err = wb.Render(w)
	var ute *UnknownTableError
	require.ErrorAs(t, err, &ute)

	// Resolution failed before any sheet was created.
	assert.Equal(t, 0, w.sheetCount)
}

func TestSafeTableName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"figures", "figures"},
		{"my table", "my_table"},
		{"2024", "_024"},
		{"a.b_c", "a.b_c"},
		{"", "_"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, safeTableName(c.in), "input %q", c.in)
	}
}
