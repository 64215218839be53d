// Package sheet defines the tabular representation every source document
// is normalized into before parsing. A sheet is an ordered grid of cell
// values; loaders stringify numeric cells and leave absent cells empty.
package sheet

type Sheet struct {
	Rows [][]string
}

func New(rows [][]string) *Sheet {
	return &Sheet{Rows: rows}
}

func (s *Sheet) NumRows() int {
	return len(s.Rows)
}

// Cell returns the value at the given row and column, or "" when either
// index is out of range. Ragged rows are expected in real documents.
func (s *Sheet) Cell(row, col int) string {
	if row < 0 || row >= len(s.Rows) {
		return ""
	}
	if col < 0 || col >= len(s.Rows[row]) {
		return ""
	}
	return s.Rows[row][col]
}
