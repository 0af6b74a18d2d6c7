package xltab

// TableOption configures a Table at construction time.
type TableOption func(*Table)

// WithoutHeader omits the column-name header row when the table is
// written out. The table's data then starts at its anchor row.
func WithoutHeader() TableOption {
	return func(t *Table) { t.header = false }
}

// placeOpts holds placement parameters for one AddTable call.
type placeOpts struct {
	row      int
	col      int
	explicit bool
	rowGap   int
}

// PlaceOption configures how a table is placed on a sheet.
type PlaceOption func(*placeOpts)

// At places the table at an explicit (row, col) anchor instead of the
// automatic flow position. Coordinates are 0-based.
func At(row, col int) PlaceOption {
	return func(p *placeOpts) {
		p.row = row
		p.col = col
		p.explicit = true
	}
}

// AtCol keeps automatic row flow but anchors the table at the given
// 0-based column instead of column 0.
func AtCol(col int) PlaceOption {
	return func(p *placeOpts) { p.col = col }
}

// WithRowGap sets the number of blank rows left between this table and
// the next auto-placed one (default 1).
func WithRowGap(n int) PlaceOption {
	return func(p *placeOpts) { p.rowGap = n }
}
