// Package xltab builds Excel workbooks from tables whose formulas
// reference columns and cells symbolically, by table and column name,
// instead of by worksheet coordinates.
//
// Tables are added to sheets with explicit anchors or automatic vertical
// flow. Nothing is addressed until the whole workbook is resolved: a
// single pass assigns every table its rectangle, indexes every (table,
// column) pair into a symbol table and rewrites every formula expression
// into concrete A1-style formula text. The resolved grid is then handed
// to a CellWriter backend; ExcelizeWriter renders it to an .xlsx file.
//
//	tbl, _ := xltab.NewTable("items", []string{"price", "qty", "total"})
//	tbl.AddRow(9.5, 3, xltab.Mul(xltab.Col("price"), xltab.Col("qty")))
//
//	wb := xltab.NewWorkbook()
//	sheet, _ := wb.NewSheet("Sheet1")
//	sheet.AddTable(tbl)
//	sheet.AddValue(5, 0, xltab.Call("SUM", xltab.ColOf("items", "total")))
//
//	w := xltab.NewExcelizeWriter()
//	wb.Render(w)
//	w.Save("out.xlsx")
//
// Formulas are never evaluated; resolution only rewrites references. The
// emitted text is plain Excel formula syntax for the spreadsheet engine
// to calculate.
package xltab
