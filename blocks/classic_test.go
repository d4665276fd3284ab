package blocks_test

import (
	"testing"

	"github.com/plus3/blockfall/blocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dotCatalog is a single 1x1 piece, which makes every spawn
// deterministic regardless of the random source.
func dotCatalog(t *testing.T) []blocks.Piece {
	return []blocks.Piece{newTestPiece(t, blocks.Piece{
		ShapeID:     "DOT",
		Matrix:      blocks.Matrix{{1}},
		SpawnWeight: 1,
	})}
}

// squareCatalog is a single 2x2 square piece.
func squareCatalog(t *testing.T) []blocks.Piece {
	return []blocks.Piece{newTestPiece(t, blocks.Piece{
		ShapeID: "SQ",
		Matrix: blocks.Matrix{
			{1, 1},
			{1, 1},
		},
		AllowRotate: true,
		SpawnWeight: 1,
	})}
}

func intPtr(v int) *int { return &v }

func TestNewGameInitialState(t *testing.T) {
	g, err := blocks.NewGame(blocks.Config{Pieces: blocks.StandardSet(), Seed: seedPtr(42)})
	require.NoError(t, err)

	snap := g.Snapshot()
	assert.Len(t, snap.Board, 20)
	assert.Len(t, snap.Board[0], 10)
	assert.NotEmpty(t, snap.ActiveID)
	assert.NotEmpty(t, snap.NextID)
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, 0, snap.LinesCleared)
	assert.False(t, snap.GameOver)

	for _, row := range snap.Board {
		for _, cell := range row {
			assert.Empty(t, cell, "a new board starts empty")
		}
	}
}

func TestSpawnColumnResolution(t *testing.T) {
	t.Run("centers by raw matrix size", func(t *testing.T) {
		g, err := blocks.NewGame(blocks.Config{Pieces: squareCatalog(t), BoardWidth: 10, BoardHeight: 6})
		require.NoError(t, err)
		_, at, ok := g.ActivePiece()
		require.True(t, ok)
		assert.Equal(t, blocks.Anchor{Row: 0, Col: 4}, at)
	})

	t.Run("explicit spawn column wins", func(t *testing.T) {
		g, err := blocks.NewGame(blocks.Config{
			Pieces:     squareCatalog(t),
			BoardWidth: 10, BoardHeight: 6,
			SpawnCol: intPtr(7),
		})
		require.NoError(t, err)
		_, at, ok := g.ActivePiece()
		require.True(t, ok)
		assert.Equal(t, 7, at.Col)
	})

	t.Run("piece wider than board clamps to zero", func(t *testing.T) {
		g, err := blocks.NewGame(blocks.Config{Pieces: squareCatalog(t), BoardWidth: 1, BoardHeight: 6})
		require.NoError(t, err)
		// The 2x2 square cannot fit a 1-wide board at all.
		assert.True(t, g.GameOver())
	})
}

func TestTickDescendsWithoutLocking(t *testing.T) {
	g, err := blocks.NewGame(blocks.Config{Pieces: squareCatalog(t), BoardWidth: 6, BoardHeight: 8})
	require.NoError(t, err)

	_, before, ok := g.ActivePiece()
	require.True(t, ok)

	g.Tick()

	p, after, ok := g.ActivePiece()
	require.True(t, ok)
	assert.Equal(t, before.Row+1, after.Row)
	assert.Equal(t, before.Col, after.Col)
	assert.Equal(t, "SQ", p.ShapeID)
	assert.Zero(t, g.LinesCleared())
	for _, row := range g.Snapshot().Board {
		for _, cell := range row {
			assert.Empty(t, cell, "no lock may occur on an unobstructed tick")
		}
	}
}

func TestMoveRejectsCollisionsWithoutSideEffects(t *testing.T) {
	g, err := blocks.NewGame(blocks.Config{
		Pieces:     squareCatalog(t),
		BoardWidth: 4, BoardHeight: 4,
		SpawnCol: intPtr(0),
	})
	require.NoError(t, err)

	assert.False(t, g.Move(0, -1), "left edge blocks")
	_, at, _ := g.ActivePiece()
	assert.Equal(t, blocks.Anchor{Row: 0, Col: 0}, at, "failed move must not change the anchor")

	assert.True(t, g.Move(0, 1))
	assert.True(t, g.MoveRight())
	assert.False(t, g.MoveRight(), "right edge blocks")
	_, at, _ = g.ActivePiece()
	assert.Equal(t, 2, at.Col)
	assert.True(t, g.MoveLeft())
}

func TestSoftDropScoresPerStep(t *testing.T) {
	g, err := blocks.NewGame(blocks.Config{Pieces: squareCatalog(t), BoardWidth: 6, BoardHeight: 6})
	require.NoError(t, err)

	// 2x2 square spawned at row 0 on a 6-high board: four descents fit.
	for i := 1; i <= 4; i++ {
		assert.True(t, g.SoftDrop())
		assert.Equal(t, i, g.Score())
	}

	// Fifth soft drop is blocked by the floor and locks instead.
	assert.False(t, g.SoftDrop())
	assert.Equal(t, 4, g.Score())
	snap := g.Snapshot()
	assert.Equal(t, "SQ", snap.Board[4][2])
	assert.Equal(t, "SQ", snap.Board[5][3])
}

func TestHardDropScoresPerCellAndLocks(t *testing.T) {
	g, err := blocks.NewGame(blocks.Config{Pieces: squareCatalog(t), BoardWidth: 6, BoardHeight: 8})
	require.NoError(t, err)

	g.HardDrop()

	// Descended from row 0 to row 6 (cells on rows 6-7): 6 cells at 2
	// points each.
	assert.Equal(t, 12, g.Score())
	snap := g.Snapshot()
	assert.Equal(t, "SQ", snap.Board[6][2])
	assert.Equal(t, "SQ", snap.Board[7][3])
	// A fresh piece respawned at the top.
	assert.Equal(t, blocks.Anchor{Row: 0, Col: 2}, snap.ActiveAt)
}

func TestRotationRejectedWithoutWallKick(t *testing.T) {
	// A 3x3 bar pinned against the right wall: rotating would need a
	// kick, so the rotation must simply fail.
	bar := newTestPiece(t, blocks.Piece{
		ShapeID: "BAR",
		Matrix: blocks.Matrix{
			{0, 1, 0},
			{0, 1, 0},
			{0, 1, 0},
		},
		AllowRotate: true,
		SpawnWeight: 1,
	})
	g, err := blocks.NewGame(blocks.Config{
		Pieces:     []blocks.Piece{bar},
		BoardWidth: 4, BoardHeight: 6,
	})
	require.NoError(t, err)

	// Push the vertical bar flush against the right edge: anchor col 2
	// puts the occupied column on board col 3.
	require.True(t, g.MoveRight())
	require.True(t, g.MoveRight())
	require.False(t, g.MoveRight())

	before, at, _ := g.ActivePiece()
	assert.False(t, g.Rotate(true), "rotation colliding with the wall is rejected outright")
	after, atAfter, _ := g.ActivePiece()
	assert.Equal(t, before.Matrix, after.Matrix)
	assert.Equal(t, at, atAfter)
}

func TestRotationRespectsCapabilityFlag(t *testing.T) {
	frozen := newTestPiece(t, blocks.Piece{
		ShapeID:     "FRZ",
		Matrix:      blocks.Matrix{{1, 0}, {1, 1}},
		AllowRotate: false,
		SpawnWeight: 1,
	})
	g, err := blocks.NewGame(blocks.Config{Pieces: []blocks.Piece{frozen}, BoardWidth: 6, BoardHeight: 6})
	require.NoError(t, err)

	assert.False(t, g.Rotate(true))
	assert.False(t, g.Rotate(false))
}

func TestRotationSucceedsInOpenSpace(t *testing.T) {
	l := lPiece(t)
	g, err := blocks.NewGame(blocks.Config{Pieces: []blocks.Piece{l}, BoardWidth: 8, BoardHeight: 8})
	require.NoError(t, err)

	before, _, _ := g.ActivePiece()
	require.True(t, g.Rotate(true))
	after, _, _ := g.ActivePiece()
	assert.Equal(t, before.Matrix.Rotated(true), after.Matrix)
}

func TestLineClearScoringAndCount(t *testing.T) {
	// 2-wide board: every locked square completes two rows at once.
	var clears []blocks.Event
	g2, err := blocks.NewGame(blocks.Config{
		Pieces:     squareCatalog(t),
		BoardWidth: 2, BoardHeight: 8,
		Observer: func(e blocks.Event) {
			if e.Kind == blocks.EventLinesCleared {
				clears = append(clears, e)
			}
		},
	})
	require.NoError(t, err)

	g2.HardDrop()

	// Two rows cleared together: 2^2 * 100, plus 12 hard-drop points
	// for the 6-cell descent.
	assert.Equal(t, 2, g2.LinesCleared())
	assert.Equal(t, 400+12, g2.Score())
	require.Len(t, clears, 1)
	assert.Equal(t, 2, clears[0].Lines)

	// Board is empty again after the clear.
	for _, row := range g2.Snapshot().Board {
		for _, cell := range row {
			assert.Empty(t, cell)
		}
	}
}

func TestSpawnCollisionEndsGame(t *testing.T) {
	// 2-wide board with a 1x1 piece pinned to column 0: each drop
	// stacks one cell, no row ever completes. The fourth spawn finds
	// its cell occupied.
	g, err := blocks.NewGame(blocks.Config{
		Pieces:     dotCatalog(t),
		BoardWidth: 2, BoardHeight: 3,
		SpawnCol: intPtr(0),
	})
	require.NoError(t, err)

	for range 3 {
		require.False(t, g.GameOver())
		g.HardDrop()
	}

	assert.True(t, g.GameOver())
	snap := g.Snapshot()
	assert.Empty(t, snap.ActiveID, "terminal state has no active piece")
	assert.Equal(t, "DOT", snap.Board[0][0])
	assert.Equal(t, "DOT", snap.Board[1][0])
	assert.Equal(t, "DOT", snap.Board[2][0])
}

func TestEngineInertAfterGameOver(t *testing.T) {
	g, err := blocks.NewGame(blocks.Config{
		Pieces:     dotCatalog(t),
		BoardWidth: 2, BoardHeight: 2,
		SpawnCol: intPtr(0),
	})
	require.NoError(t, err)

	g.HardDrop()
	g.HardDrop()
	require.True(t, g.GameOver())

	before := g.Snapshot()
	g.Tick()
	g.HardDrop()
	assert.False(t, g.SoftDrop())
	assert.False(t, g.Move(0, 1))
	assert.False(t, g.Rotate(true))
	assert.Equal(t, before, g.Snapshot(), "operations after game over are no-ops")
}

func TestSnapshotIsIsolated(t *testing.T) {
	g, err := blocks.NewGame(blocks.Config{Pieces: squareCatalog(t), BoardWidth: 6, BoardHeight: 6})
	require.NoError(t, err)
	g.HardDrop()

	snap := g.Snapshot()
	snap.Board[5][2] = "tampered"
	if snap.ActiveMatrix != nil {
		snap.ActiveMatrix[0][0] = 9
	}

	fresh := g.Snapshot()
	assert.Equal(t, "SQ", fresh.Board[5][2])
	p, _, _ := g.ActivePiece()
	assert.Equal(t, blocks.Matrix{{1, 1}, {1, 1}}, p.Matrix)
}

// TestWorkedExampleColumnPiece walks the worked single-column scenario:
// a 4-wide, 10-high board and a piece holding one full matrix column.
func TestWorkedExampleColumnPiece(t *testing.T) {
	column := newTestPiece(t, blocks.Piece{
		ShapeID: "I001",
		Matrix: blocks.Matrix{
			{0, 1, 0, 0},
			{0, 1, 0, 0},
			{0, 1, 0, 0},
			{0, 1, 0, 0},
		},
		SpawnWeight: 1,
	})

	g, err := blocks.NewGame(blocks.Config{
		Pieces:     []blocks.Piece{column},
		BoardWidth: 4, BoardHeight: 10,
	})
	require.NoError(t, err)

	// Raw matrix size 4 on a 4-wide board: spawn column (4-4)/2 = 0,
	// occupied cells land on board column 1.
	_, at, ok := g.ActivePiece()
	require.True(t, ok)
	assert.Equal(t, blocks.Anchor{Row: 0, Col: 0}, at)

	// Six ticks descend to the floor, the seventh locks.
	for i := 1; i <= 6; i++ {
		g.Tick()
		_, at, ok = g.ActivePiece()
		require.True(t, ok)
		assert.Equal(t, i, at.Row)
	}
	g.Tick()

	snap := g.Snapshot()
	for row := 6; row <= 9; row++ {
		assert.Equal(t, "I001", snap.Board[row][1], "row %d", row)
	}
	for row := 0; row < 6; row++ {
		assert.Empty(t, snap.Board[row][1], "row %d", row)
	}
	assert.False(t, snap.GameOver)
}

func TestObserverEventOrderOnCreation(t *testing.T) {
	var kinds []blocks.EventKind
	_, err := blocks.NewGame(blocks.Config{
		Pieces:     dotCatalog(t),
		BoardWidth: 4, BoardHeight: 4,
		Observer: func(e blocks.Event) { kinds = append(kinds, e.Kind) },
	})
	require.NoError(t, err)

	assert.Equal(t, []blocks.EventKind{
		blocks.EventPieceChosen, // initial next piece
		blocks.EventSpawned,     // promoted to active
		blocks.EventPieceChosen, // replacement next piece
	}, kinds)
}
