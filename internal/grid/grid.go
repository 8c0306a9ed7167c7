// Package grid holds the flattened row/cell form of a scraped table.
package grid

// Row is one table row as trimmed cell text
type Row []string

// Grid is an ordered list of rows. Rows are not required to have the
// same width; HTML tables with colspans or spacer rows produce ragged grids.
type Grid []Row

// Len returns the number of rows
func (g Grid) Len() int {
	return len(g)
}

// Empty reports whether the grid has no rows
func (g Grid) Empty() bool {
	return len(g) == 0
}

// PrependColumn returns a copy of g with value inserted as the first cell of every row
func (g Grid) PrependColumn(value string) Grid {
	if g == nil {
		return nil
	}

	out := make(Grid, len(g))
	for i, row := range g {
		r := make(Row, 0, len(row)+1)
		r = append(r, value)
		r = append(r, row...)
		out[i] = r
	}
	return out
}

// Width returns the length of the widest row
func (g Grid) Width() int {
	width := 0
	for _, row := range g {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}
