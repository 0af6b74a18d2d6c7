package xltab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTable(t *testing.T, name string, cols int, rows int, opts ...TableOption) *Table {
	t.Helper()
	names := make([]string, cols)
	for i := range names {
		names[i] = string(rune('a' + i))
	}
	tbl, err := NewTable(name, names, opts...)
	require.NoError(t, err)
	for r := 0; r < rows; r++ {
		cells := make([]any, cols)
		for c := range cells {
			cells[c] = r*cols + c
		}
		require.NoError(t, tbl.AddRow(cells...))
	}
	return tbl
}

func TestAutoFlowStacking(t *testing.T) {
	s := NewSheet("Sheet1")

	// 3 rows + header = height 4.
	row, col, err := s.AddTable(makeTable(t, "first", 2, 3))
	require.NoError(t, err)
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, col)

	// One blank row of separation: next anchor is 4 + 1 = 5.
	row, col, err = s.AddTable(makeTable(t, "second", 2, 2))
	require.NoError(t, err)
	assert.Equal(t, 5, row)
	assert.Equal(t, 0, col)

	// second is height 3, so the next flowed table starts at 5+3+1 = 9.
	assert.Equal(t, 9, s.NextRow())
}

func TestAutoFlowRowGap(t *testing.T) {
	s := NewSheet("Sheet1")
	_, _, err := s.AddTable(makeTable(t, "first", 1, 2), WithRowGap(3))
	require.NoError(t, err)

	row, _, err := s.AddTable(makeTable(t, "second", 1, 1))
	require.NoError(t, err)
	assert.Equal(t, 6, row) // height 3 + gap 3
}

func TestAutoFlowAtColumn(t *testing.T) {
	s := NewSheet("Sheet1")
	row, col, err := s.AddTable(makeTable(t, "first", 2, 2), AtCol(4))
	require.NoError(t, err)
	assert.Equal(t, 0, row)
	assert.Equal(t, 4, col)
}

func TestExplicitAnchor(t *testing.T) {
	s := NewSheet("Sheet1")
	row, col, err := s.AddTable(makeTable(t, "first", 2, 2), At(10, 3))
	require.NoError(t, err)
	assert.Equal(t, 10, row)
	assert.Equal(t, 3, col)

	// Auto flow continues below the explicit table.
	row, _, err = s.AddTable(makeTable(t, "second", 1, 1))
	require.NoError(t, err)
	assert.Equal(t, 14, row) // 10 + height 3 + gap 1
}

func TestExplicitAnchorOverlapRejected(t *testing.T) {
	s := NewSheet("Sheet1")
	_, _, err := s.AddTable(makeTable(t, "first", 3, 3))
	require.NoError(t, err)

	_, _, err = s.AddTable(makeTable(t, "second", 2, 2), At(2, 1))
	var oe *OverlapError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, "Sheet1", oe.Sheet)
	assert.Equal(t, "second", oe.Table)
	assert.Equal(t, "first", oe.Other)

	// The rejected table leaves no trace.
	assert.Len(t, s.Placements(), 1)
}

func TestExplicitAnchorAdjacentAllowed(t *testing.T) {
	s := NewSheet("Sheet1")
	_, _, err := s.AddTable(makeTable(t, "first", 3, 3)) // rows 0-3, cols 0-2
	require.NoError(t, err)

	// Directly to the right, no gap required.
	_, _, err = s.AddTable(makeTable(t, "second", 2, 3), At(0, 3))
	require.NoError(t, err)

	// Directly below.
	_, _, err = s.AddTable(makeTable(t, "third", 3, 1), At(4, 0))
	require.NoError(t, err)
}

func TestDuplicateTableOnSheet(t *testing.T) {
	s := NewSheet("Sheet1")
	_, _, err := s.AddTable(makeTable(t, "dup", 1, 1))
	require.NoError(t, err)

	_, _, err = s.AddTable(makeTable(t, "dup", 1, 1))
	var de *DuplicateTableError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "dup", de.Table)
}

func TestNegativeAnchorRejected(t *testing.T) {
	s := NewSheet("Sheet1")
	_, _, err := s.AddTable(makeTable(t, "bad", 1, 1), At(-1, 0))
	assert.Error(t, err)
}

func TestTablePos(t *testing.T) {
	s := NewSheet("Sheet1")
	_, _, err := s.AddTable(makeTable(t, "first", 2, 3))
	require.NoError(t, err)

	row, col, err := s.TablePos("first")
	require.NoError(t, err)
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, col)

	_, _, err = s.TablePos("ghost")
	var ute *UnknownTableError
	require.ErrorAs(t, err, &ute)
}

func TestHeaderlessTableHeight(t *testing.T) {
	s := NewSheet("Sheet1")
	tbl := makeTable(t, "bare", 2, 3, WithoutHeader())
	assert.Equal(t, 3, tbl.Height())
	assert.Equal(t, 0, tbl.HeaderHeight())

	_, _, err := s.AddTable(tbl)
	require.NoError(t, err)
	assert.Equal(t, 4, s.NextRow()) // 3 rows + gap 1
}

func TestPlacementDeterminism(t *testing.T) {
	build := func() []*Placement {
		s := NewSheet("Sheet1")
		_, _, err := s.AddTable(makeTable(t, "first", 2, 3))
		require.NoError(t, err)
		_, _, err = s.AddTable(makeTable(t, "second", 1, 2), At(0, 5))
		require.NoError(t, err)
		_, _, err = s.AddTable(makeTable(t, "third", 2, 1))
		require.NoError(t, err)
		return s.Placements()
	}

	a, b := build(), build()
	require.Len(t, a, 3)
	for i := range a {
		assert.Equal(t, a[i].Row, b[i].Row)
		assert.Equal(t, a[i].Col, b[i].Col)
		assert.Equal(t, a[i].Table.Name(), b[i].Table.Name())
	}
}
