package blocks_test

import (
	"fmt"

	"github.com/plus3/blockfall/blocks"
)

// ExamplePuzzleGame demonstrates puzzle-mode play: a round of pieces is
// presented together, the player positions each one freely (no gravity)
// and commits it with PlacePiece. Full rows clear in place, and placing
// the last piece of a round deals the next round.
func ExamplePuzzleGame() {
	dot, err := blocks.NewPiece(blocks.Piece{
		ShapeID:     "DOT",
		Matrix:      blocks.Matrix{{1}},
		SpawnWeight: 1,
	})
	if err != nil {
		panic(err)
	}

	g, err := blocks.NewPuzzleGame(blocks.PuzzleConfig{
		Pieces:         []blocks.Piece{dot},
		BoardWidth:     2,
		BoardHeight:    2,
		PiecesPerRound: 2,
	})
	if err != nil {
		panic(err)
	}

	fmt.Printf("round %d with %d pieces\n", g.Round(), g.PiecesLeftInRound())

	g.PlacePiece() // top-left
	g.MoveRight()
	g.PlacePiece() // top-right: row 0 completes and clears in place

	fmt.Printf("score %d, lines %d, placed %d\n", g.Score(), g.LinesCleared(), g.PiecesPlaced())
	fmt.Printf("round %d with %d pieces\n", g.Round(), g.PiecesLeftInRound())

	// Output:
	// round 1 with 2 pieces
	// score 100, lines 1, placed 2
	// round 2 with 2 pieces
}

// ExamplePuzzleGame_observer wires an observer to watch the engine's
// state changes as they happen.
func ExamplePuzzleGame_observer() {
	bar, err := blocks.NewPiece(blocks.Piece{
		ShapeID:     "BAR",
		Matrix:      blocks.Matrix{{1, 1}, {0, 0}},
		SpawnWeight: 1,
	})
	if err != nil {
		panic(err)
	}

	g, err := blocks.NewPuzzleGame(blocks.PuzzleConfig{
		Pieces:         []blocks.Piece{bar},
		BoardWidth:     2,
		BoardHeight:    2,
		PiecesPerRound: 1,
		Observer: func(e blocks.Event) {
			switch e.Kind {
			case blocks.EventPiecePlaced:
				fmt.Printf("placed %s at (%d,%d)\n", e.ShapeID, e.At.Row, e.At.Col)
			case blocks.EventLinesCleared:
				fmt.Printf("cleared %d for %d\n", e.Lines, e.Score)
			case blocks.EventRoundStarted:
				fmt.Printf("round %d\n", e.Round)
			}
		},
	})
	if err != nil {
		panic(err)
	}

	g.MoveDown()
	g.PlacePiece()

	// Output:
	// round 1
	// placed BAR at (1,0)
	// cleared 1 for 100
	// round 2
}
