// Package blocks implements the rules engine for a falling-block puzzle
// game: piece transforms, board placement, weighted piece selection, the
// gravity-driven classic mode and the round-based puzzle mode. The engine
// performs no I/O and never drives time; an external driver invokes one
// operation at a time against a game state it exclusively owns.
package blocks

import (
	"fmt"
	"iter"
)

// Matrix is a square grid of 0/1 cells describing a piece shape,
// row-major with a top-left origin.
type Matrix [][]int

// Size returns the side length of the matrix.
func (m Matrix) Size() int {
	return len(m)
}

// CellCount returns the number of occupied cells.
func (m Matrix) CellCount() int {
	count := 0
	for _, row := range m {
		for _, v := range row {
			if v != 0 {
				count++
			}
		}
	}
	return count
}

// Clone returns a deep copy of the matrix.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = make([]int, len(row))
		copy(out[i], row)
	}
	return out
}

// Validate checks that the matrix is non-empty, square and binary-valued.
func (m Matrix) Validate() error {
	if len(m) == 0 {
		return fmt.Errorf("%w: matrix is empty", ErrInvalidMatrix)
	}
	size := len(m)
	for r, row := range m {
		if len(row) != size {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidMatrix, r, len(row), size)
		}
		for c, v := range row {
			if v != 0 && v != 1 {
				return fmt.Errorf("%w: matrix[%d][%d] = %d, want 0 or 1", ErrInvalidMatrix, r, c, v)
			}
		}
	}
	return nil
}

// Rotated returns the matrix rotated 90 degrees. The rotation is applied
// to the current orientation, so four clockwise rotations return the
// original matrix.
func (m Matrix) Rotated(clockwise bool) Matrix {
	size := len(m)
	out := make(Matrix, size)
	for i := range out {
		out[i] = make([]int, size)
	}
	for r := range size {
		for c := range size {
			if clockwise {
				out[c][size-1-r] = m[r][c]
			} else {
				out[size-1-c][r] = m[r][c]
			}
		}
	}
	return out
}

// Mirrored returns the matrix with each row horizontally reversed.
func (m Matrix) Mirrored() Matrix {
	size := len(m)
	out := make(Matrix, size)
	for r := range size {
		out[r] = make([]int, size)
		for c := range size {
			out[r][c] = m[r][size-1-c]
		}
	}
	return out
}

// Normalized returns the matrix with fully-empty border rows and columns
// trimmed from all four sides. An all-zero matrix normalizes to [[0]].
// Intended for compact display; collision always uses the raw matrix.
func (m Matrix) Normalized() Matrix {
	emptyRow := func(r int) bool {
		for _, v := range m[r] {
			if v != 0 {
				return false
			}
		}
		return true
	}
	emptyCol := func(c int) bool {
		for _, row := range m {
			if row[c] != 0 {
				return false
			}
		}
		return true
	}

	top, bottom := 0, len(m)
	for top < bottom && emptyRow(top) {
		top++
	}
	for bottom > top && emptyRow(bottom-1) {
		bottom--
	}

	left, right := 0, len(m[0])
	for left < right && emptyCol(left) {
		left++
	}
	for right > left && emptyCol(right-1) {
		right--
	}

	if top >= bottom || left >= right {
		return Matrix{{0}}
	}

	out := make(Matrix, bottom-top)
	for i := range out {
		out[i] = make([]int, right-left)
		copy(out[i], m[top+i][left:right])
	}
	return out
}

// Cells iterates over the (row, col) coordinates of occupied cells.
func (m Matrix) Cells() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for r, row := range m {
			for c, v := range row {
				if v != 0 && !yield(r, c) {
					return
				}
			}
		}
	}
}

// Piece is an immutable shape definition. Transform methods return new
// values; a Piece is never mutated after construction.
type Piece struct {
	// ShapeID uniquely identifies the shape; board cells store it.
	ShapeID     string
	DisplayName string
	Matrix      Matrix

	// Capability flags gate the Rotated and Mirrored transforms.
	AllowRotate bool
	AllowMirror bool

	// SpawnWeight is the relative probability mass used by the Selector.
	// Must be positive.
	SpawnWeight float64

	// Display metadata, unused by engine logic.
	ColorHex string
	Notes    string

	normalized Matrix
}

// NewPiece validates the definition and returns a Piece owning a private
// copy of the matrix.
func NewPiece(p Piece) (Piece, error) {
	if err := p.Matrix.Validate(); err != nil {
		return Piece{}, fmt.Errorf("piece %s: %w", p.ShapeID, err)
	}
	if p.SpawnWeight <= 0 {
		return Piece{}, fmt.Errorf("%w: piece %s: spawn weight %v, want > 0", ErrInvalidPiece, p.ShapeID, p.SpawnWeight)
	}
	if p.DisplayName == "" {
		p.DisplayName = p.ShapeID
	}
	p.Matrix = p.Matrix.Clone()
	p.normalized = nil
	return p, nil
}

// MatrixSize returns the side length of the piece matrix.
func (p Piece) MatrixSize() int {
	return p.Matrix.Size()
}

// CellCount returns the number of occupied cells.
func (p Piece) CellCount() int {
	return p.Matrix.CellCount()
}

// Normalized returns the trimmed display matrix, computing it on first
// use. Copies of the Piece recompute; the result is always a fresh copy.
func (p *Piece) Normalized() Matrix {
	if p.normalized == nil {
		p.normalized = p.Matrix.Normalized()
	}
	return p.normalized.Clone()
}

// Rotated returns a new Piece rotated 90 degrees from the current
// orientation. Fails with a capability error if the piece forbids
// rotation.
func (p Piece) Rotated(clockwise bool) (Piece, error) {
	if !p.AllowRotate {
		return Piece{}, fmt.Errorf("%w: piece %s", ErrRotateNotAllowed, p.ShapeID)
	}
	return p.withMatrix(p.Matrix.Rotated(clockwise)), nil
}

// Mirrored returns a new Piece with the matrix horizontally reversed.
// Fails with a capability error if the piece forbids mirroring.
func (p Piece) Mirrored() (Piece, error) {
	if !p.AllowMirror {
		return Piece{}, fmt.Errorf("%w: piece %s", ErrMirrorNotAllowed, p.ShapeID)
	}
	return p.withMatrix(p.Matrix.Mirrored()), nil
}

// withMatrix returns a copy of the piece carrying a replacement matrix.
// Identity fields are preserved and the normalized cache is dropped.
func (p Piece) withMatrix(m Matrix) Piece {
	p.Matrix = m
	p.normalized = nil
	return p
}
