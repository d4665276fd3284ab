package blocks

import "math/rand/v2"

// Config describes a classic-mode game. Zero board dimensions default to
// the standard 10x20 well.
type Config struct {
	// Pieces is the shared read-only catalog. Must be non-empty.
	Pieces []Piece

	BoardWidth  int
	BoardHeight int

	// SpawnRow is the row of a freshly spawned piece's anchor.
	SpawnRow int
	// SpawnCol pins the spawn column when non-nil; otherwise pieces
	// spawn horizontally centered.
	SpawnCol *int

	// Seed makes the spawn sequence reproducible when non-nil.
	Seed *uint64

	// Observer, when non-nil, receives transition events.
	Observer Observer
}

func (c *Config) applyDefaults() {
	if c.BoardWidth == 0 {
		c.BoardWidth = 10
	}
	if c.BoardHeight == 0 {
		c.BoardHeight = 20
	}
}

// resolveSpawnCol centers the piece unless the config pins a column.
// Centering uses the raw matrix size, never the normalized matrix.
func (c *Config) resolveSpawnCol(p Piece) int {
	if c.SpawnCol != nil {
		return *c.SpawnCol
	}
	return max(0, (c.BoardWidth-p.MatrixSize())/2)
}

// Game is the classic gravity-driven state machine: spawn, move and
// rotate an active piece, lock it, clear lines, spawn the next. All
// operations are no-ops once the game is over.
type Game struct {
	cfg      Config
	board    *Board
	rng      *rand.Rand
	selector *Selector

	active *Piece
	anchor Anchor
	next   *Piece

	score        int
	linesCleared int
	gameOver     bool
}

// NewGame creates a classic game with an empty board and one pre-spawned
// piece. Fails with a configuration error when the catalog is empty.
func NewGame(cfg Config) (*Game, error) {
	cfg.applyDefaults()
	rng := newRNG(cfg.Seed)
	selector, err := NewSelector(cfg.Pieces, rng)
	if err != nil {
		return nil, err
	}
	g := &Game{
		cfg:      cfg,
		board:    NewBoard(cfg.BoardWidth, cfg.BoardHeight),
		rng:      rng,
		selector: selector,
	}
	g.next = g.choosePiece()
	g.spawnNext()
	return g, nil
}

// Board returns the board for read access.
func (g *Game) Board() *Board { return g.board }

// Score returns the cumulative score.
func (g *Game) Score() int { return g.score }

// LinesCleared returns the running total of cleared lines.
func (g *Game) LinesCleared() int { return g.linesCleared }

// GameOver reports whether the game reached its terminal state.
func (g *Game) GameOver() bool { return g.gameOver }

// ActivePiece returns the active piece and its anchor. ok is false when
// no piece is active.
func (g *Game) ActivePiece() (p Piece, at Anchor, ok bool) {
	if g.active == nil {
		return Piece{}, Anchor{}, false
	}
	return *g.active, g.anchor, true
}

// NextPiece returns the pre-selected next piece.
func (g *Game) NextPiece() (Piece, bool) {
	if g.next == nil {
		return Piece{}, false
	}
	return *g.next, true
}

// Move translates the active piece's anchor by (dr, dc) when the
// destination is collision-free. Returns false, with no side effects,
// otherwise.
func (g *Game) Move(dr, dc int) bool {
	if g.gameOver || g.active == nil {
		return false
	}
	to := Anchor{Row: g.anchor.Row + dr, Col: g.anchor.Col + dc}
	if !g.board.CanPlace(g.active.Matrix, to) {
		return false
	}
	g.anchor = to
	return true
}

// MoveLeft shifts the active piece one column left.
func (g *Game) MoveLeft() bool { return g.Move(0, -1) }

// MoveRight shifts the active piece one column right.
func (g *Game) MoveRight() bool { return g.Move(0, 1) }

// Tick applies one gravity step. A piece that cannot descend locks.
func (g *Game) Tick() {
	if g.gameOver || g.active == nil {
		return
	}
	if g.Move(1, 0) {
		return
	}
	g.lock()
}

// SoftDrop is a player-driven gravity step worth one point. A piece that
// cannot descend locks, returning false.
func (g *Game) SoftDrop() bool {
	if g.gameOver || g.active == nil {
		return false
	}
	if g.Move(1, 0) {
		g.score++
		return true
	}
	g.lock()
	return false
}

// HardDrop descends the active piece until blocked, awarding two points
// per cell, then locks unconditionally.
func (g *Game) HardDrop() {
	if g.gameOver || g.active == nil {
		return
	}
	distance := 0
	for g.Move(1, 0) {
		distance++
	}
	g.score += distance * 2
	g.lock()
}

// Rotate replaces the active piece with its rotation when the piece
// allows rotating and the rotated shape fits at the current anchor.
// There is no wall-kick search: a colliding rotation is rejected
// outright.
func (g *Game) Rotate(clockwise bool) bool {
	if g.gameOver || g.active == nil {
		return false
	}
	if !g.active.AllowRotate {
		return false
	}
	rotated := g.active.withMatrix(g.active.Matrix.Rotated(clockwise))
	if !g.board.CanPlace(rotated.Matrix, g.anchor) {
		return false
	}
	g.active = &rotated
	return true
}

func (g *Game) choosePiece() *Piece {
	p := g.selector.Pick()
	notify(g.cfg.Observer, Event{Kind: EventPieceChosen, ShapeID: p.ShapeID})
	return &p
}

// lock stamps the active piece, clears lines and spawns the next piece.
func (g *Game) lock() {
	if g.active == nil {
		return
	}
	g.board.stamp(g.active.Matrix, g.anchor, g.active.ShapeID)
	notify(g.cfg.Observer, Event{Kind: EventLocked, ShapeID: g.active.ShapeID, At: g.anchor})

	if cleared := g.board.clearFullRowsShift(); cleared > 0 {
		g.linesCleared += cleared
		g.score += cleared * cleared * 100
		notify(g.cfg.Observer, Event{Kind: EventLinesCleared, Lines: cleared, Score: g.score})
	}

	g.active = nil
	g.spawnNext()
}

// spawnNext promotes the pending next piece to active. A colliding spawn
// position ends the game.
func (g *Game) spawnNext() {
	if g.gameOver {
		g.active = nil
		return
	}

	next := g.next
	if next == nil {
		next = g.choosePiece()
	}
	at := Anchor{Row: g.cfg.SpawnRow, Col: g.cfg.resolveSpawnCol(*next)}
	if !g.board.CanPlace(next.Matrix, at) {
		g.gameOver = true
		g.active = nil
		notify(g.cfg.Observer, Event{Kind: EventGameOver, ShapeID: next.ShapeID, Score: g.score})
		return
	}

	g.active = next
	g.anchor = at
	notify(g.cfg.Observer, Event{Kind: EventSpawned, ShapeID: g.active.ShapeID, At: at})
	g.next = g.choosePiece()
}

// Snapshot is a read-only copy of classic game state for rendering or
// logging. Mutating it never affects the engine.
type Snapshot struct {
	Board        [][]string
	ActiveID     string
	ActiveMatrix Matrix
	ActiveAt     Anchor
	NextID       string
	Score        int
	LinesCleared int
	GameOver     bool
}

// Snapshot returns a deep copy of the observable game state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Board:        g.board.Rows(),
		Score:        g.score,
		LinesCleared: g.linesCleared,
		GameOver:     g.gameOver,
	}
	if g.active != nil {
		s.ActiveID = g.active.ShapeID
		s.ActiveMatrix = g.active.Matrix.Clone()
		s.ActiveAt = g.anchor
	}
	if g.next != nil {
		s.NextID = g.next.ShapeID
	}
	return s
}
