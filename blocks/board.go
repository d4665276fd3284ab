package blocks

// Anchor is the board coordinate of a piece matrix's top-left cell.
type Anchor struct {
	Row, Col int
}

// Board is a fixed-size grid of cells, each empty ("") or holding the
// ShapeID of the piece occupying it. It stores identifiers rather than
// piece references, so board contents never pin piece values. Owned
// exclusively by a game state; only lock and clear operations mutate it.
type Board struct {
	width  int
	height int
	cells  [][]string
}

// NewBoard returns an empty board with the given dimensions.
func NewBoard(width, height int) *Board {
	cells := make([][]string, height)
	for r := range cells {
		cells[r] = make([]string, width)
	}
	return &Board{width: width, height: height, cells: cells}
}

// Width returns the board width in cells.
func (b *Board) Width() int { return b.width }

// Height returns the board height in cells.
func (b *Board) Height() int { return b.height }

// Cell returns the shape id occupying (row, col), or "" when empty or
// out of bounds.
func (b *Board) Cell(row, col int) string {
	if row < 0 || row >= b.height || col < 0 || col >= b.width {
		return ""
	}
	return b.cells[row][col]
}

// Rows returns a deep copy of the board contents.
func (b *Board) Rows() [][]string {
	out := make([][]string, b.height)
	for r := range b.cells {
		out[r] = make([]string, b.width)
		copy(out[r], b.cells[r])
	}
	return out
}

// CanPlace reports whether every occupied cell of the matrix, offset by
// the anchor, maps to an in-bounds, currently-empty board cell. This is
// the collision-aware predicate used for classic movement and puzzle
// placement.
func (b *Board) CanPlace(m Matrix, at Anchor) bool {
	for r, c := range m.Cells() {
		row, col := at.Row+r, at.Col+c
		if row < 0 || row >= b.height || col < 0 || col >= b.width {
			return false
		}
		if b.cells[row][col] != "" {
			return false
		}
	}
	return true
}

// WithinBounds reports whether every occupied cell of the matrix, offset
// by the anchor, lies on the board. Occupied board cells do not reject:
// this is the bounds-only predicate that lets puzzle mode hover a piece
// over placed cells while positioning it.
func (b *Board) WithinBounds(m Matrix, at Anchor) bool {
	for r, c := range m.Cells() {
		row, col := at.Row+r, at.Col+c
		if row < 0 || row >= b.height || col < 0 || col >= b.width {
			return false
		}
	}
	return true
}

// stamp writes the piece's occupied cells onto the board. Cells that
// fall outside the board are skipped; placement predicates should have
// ruled that out already.
func (b *Board) stamp(m Matrix, at Anchor, shapeID string) {
	for r, c := range m.Cells() {
		row, col := at.Row+r, at.Col+c
		if row >= 0 && row < b.height && col >= 0 && col < b.width {
			b.cells[row][col] = shapeID
		}
	}
}

// fullRow reports whether row r has no empty cells.
func (b *Board) fullRow(r int) bool {
	for _, cell := range b.cells[r] {
		if cell == "" {
			return false
		}
	}
	return true
}

// clearFullRowsShift removes every full row and inserts an equal number
// of empty rows at the top, preserving the relative order of surviving
// rows. Classic-mode clearing. Returns the number of rows cleared.
func (b *Board) clearFullRowsShift() int {
	kept := make([][]string, 0, b.height)
	cleared := 0
	for r := range b.cells {
		if b.fullRow(r) {
			cleared++
		} else {
			kept = append(kept, b.cells[r])
		}
	}
	if cleared == 0 {
		return 0
	}
	rows := make([][]string, 0, b.height)
	for range cleared {
		rows = append(rows, make([]string, b.width))
	}
	rows = append(rows, kept...)
	b.cells = rows
	return cleared
}

// clearFullRowsInPlace empties every full row where it stands, leaving
// all other rows untouched. Puzzle-mode clearing deliberately does not
// compact rows above a cleared row.
func (b *Board) clearFullRowsInPlace() int {
	cleared := 0
	for r := range b.cells {
		if !b.fullRow(r) {
			continue
		}
		for c := range b.cells[r] {
			b.cells[r][c] = ""
		}
		cleared++
	}
	return cleared
}
