package blocks

// StandardSet returns the seven classic tetrominoes as a ready-to-use
// catalog, so drivers and tools can run without an external piece table.
// All pieces carry weight 1 and allow rotation and mirroring.
func StandardSet() []Piece {
	defs := []struct {
		id    string
		name  string
		color string
		rows  Matrix
	}{
		{"I", "I-Bar", "#66CCFF", Matrix{
			{0, 0, 0, 0},
			{1, 1, 1, 1},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		}},
		{"O", "Square", "#FFD700", Matrix{
			{0, 0, 0, 0},
			{0, 1, 1, 0},
			{0, 1, 1, 0},
			{0, 0, 0, 0},
		}},
		{"T", "T-Piece", "#AA55FF", Matrix{
			{0, 0, 0, 0},
			{0, 1, 0, 0},
			{1, 1, 1, 0},
			{0, 0, 0, 0},
		}},
		{"S", "S-Piece", "#00E430", Matrix{
			{0, 0, 0, 0},
			{0, 1, 1, 0},
			{1, 1, 0, 0},
			{0, 0, 0, 0},
		}},
		{"Z", "Z-Piece", "#FF6FB0", Matrix{
			{0, 0, 0, 0},
			{1, 1, 0, 0},
			{0, 1, 1, 0},
			{0, 0, 0, 0},
		}},
		{"J", "J-Piece", "#0079F1", Matrix{
			{0, 0, 0, 0},
			{1, 0, 0, 0},
			{1, 1, 1, 0},
			{0, 0, 0, 0},
		}},
		{"L", "L-Piece", "#FFA100", Matrix{
			{0, 0, 0, 0},
			{0, 0, 1, 0},
			{1, 1, 1, 0},
			{0, 0, 0, 0},
		}},
	}

	pieces := make([]Piece, 0, len(defs))
	for _, d := range defs {
		p, err := NewPiece(Piece{
			ShapeID:     d.id,
			DisplayName: d.name,
			Matrix:      d.rows,
			AllowRotate: true,
			AllowMirror: true,
			SpawnWeight: 1,
			ColorHex:    d.color,
		})
		if err != nil {
			// The definitions above are static and valid.
			panic(err)
		}
		pieces = append(pieces, p)
	}
	return pieces
}
