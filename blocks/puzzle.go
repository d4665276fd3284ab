package blocks

import (
	"math/rand/v2"
	"slices"

	"github.com/kamstrup/intmap"
)

// SlotID addresses a piece instance within the current puzzle round.
// Slot ids are stable for the life of the instance: placing a piece
// deletes its slot, it never reindexes the others.
type SlotID uint32

// PuzzleConfig describes a puzzle-mode game. Zero board dimensions
// default to 8x8 and zero PiecesPerRound defaults to 3.
type PuzzleConfig struct {
	// Pieces is the shared read-only catalog. Must be non-empty.
	Pieces []Piece

	BoardWidth  int
	BoardHeight int

	// SpawnRow and SpawnCol pick the default reposition anchor, with the
	// same centering rule as classic mode when SpawnCol is nil.
	SpawnRow int
	SpawnCol *int

	Seed *uint64

	// PiecesPerRound is the number of pieces presented each round.
	PiecesPerRound int

	Observer Observer
}

func (c *PuzzleConfig) applyDefaults() {
	if c.BoardWidth == 0 {
		c.BoardWidth = 8
	}
	if c.BoardHeight == 0 {
		c.BoardHeight = 8
	}
	if c.PiecesPerRound == 0 {
		c.PiecesPerRound = 3
	}
}

func (c *PuzzleConfig) resolveSpawnCol(p Piece) int {
	if c.SpawnCol != nil {
		return *c.SpawnCol
	}
	return max(0, (c.BoardWidth-p.MatrixSize())/2)
}

// PuzzleGame is the round-based placement state machine. A round's
// pieces are presented together; the player freely positions the active
// piece with bounds-only checks and commits it with a collision-aware
// placement. No gravity, no timing.
//
// Round pieces live in a slot arena keyed by stable SlotID, with the
// presentation order tracked separately, so placing a piece never
// invalidates another piece's identity.
type PuzzleGame struct {
	cfg      PuzzleConfig
	board    *Board
	rng      *rand.Rand
	selector *Selector

	slots  *intmap.Map[SlotID, Piece]
	order  []SlotID
	active SlotID
	anchor Anchor
	nextID SlotID

	score        int
	linesCleared int
	piecesPlaced int
	round        int
	gameOver     bool
}

// NewPuzzleGame creates a puzzle game with an empty board and the first
// round's pieces drawn. Fails with a configuration error when the
// catalog is empty.
func NewPuzzleGame(cfg PuzzleConfig) (*PuzzleGame, error) {
	cfg.applyDefaults()
	rng := newRNG(cfg.Seed)
	selector, err := NewSelector(cfg.Pieces, rng)
	if err != nil {
		return nil, err
	}
	g := &PuzzleGame{
		cfg:      cfg,
		board:    NewBoard(cfg.BoardWidth, cfg.BoardHeight),
		rng:      rng,
		selector: selector,
		slots:    intmap.New[SlotID, Piece](8),
		round:    1,
	}
	g.fillRound()
	g.resetPiecePosition()
	return g, nil
}

// Board returns the board for read access.
func (g *PuzzleGame) Board() *Board { return g.board }

// Score returns the cumulative score.
func (g *PuzzleGame) Score() int { return g.score }

// LinesCleared returns the running total of cleared lines.
func (g *PuzzleGame) LinesCleared() int { return g.linesCleared }

// PiecesPlaced returns the number of pieces committed to the board.
func (g *PuzzleGame) PiecesPlaced() int { return g.piecesPlaced }

// Round returns the current round number, starting at 1.
func (g *PuzzleGame) Round() int { return g.round }

// GameOver reports whether no remaining piece fits anywhere.
func (g *PuzzleGame) GameOver() bool { return g.gameOver }

// PiecesLeftInRound returns how many pieces remain unplaced this round.
func (g *PuzzleGame) PiecesLeftInRound() int { return len(g.order) }

// ActivePiece returns the selected piece, its slot and its anchor. It
// keeps reporting after game over so renderers can show the final state.
func (g *PuzzleGame) ActivePiece() (p Piece, slot SlotID, at Anchor, ok bool) {
	p, ok = g.slots.Get(g.active)
	if !ok {
		return Piece{}, 0, Anchor{}, false
	}
	return p, g.active, g.anchor, true
}

// fillRound draws PiecesPerRound pieces into fresh slots.
func (g *PuzzleGame) fillRound() {
	g.order = g.order[:0]
	for _, p := range g.selector.PickN(g.cfg.PiecesPerRound) {
		notify(g.cfg.Observer, Event{Kind: EventPieceChosen, ShapeID: p.ShapeID, Round: g.round})
		id := g.nextID
		g.nextID++
		g.slots.Put(id, p)
		g.order = append(g.order, id)
	}
	g.active = g.order[0]
	notify(g.cfg.Observer, Event{Kind: EventRoundStarted, Round: g.round})
}

// MoveLeft shifts the active piece one column left, bounds-only.
func (g *PuzzleGame) MoveLeft() bool { return g.move(0, -1) }

// MoveRight shifts the active piece one column right, bounds-only.
func (g *PuzzleGame) MoveRight() bool { return g.move(0, 1) }

// MoveUp shifts the active piece one row up, bounds-only.
func (g *PuzzleGame) MoveUp() bool { return g.move(-1, 0) }

// MoveDown shifts the active piece one row down, bounds-only.
func (g *PuzzleGame) MoveDown() bool { return g.move(1, 0) }

// move repositions the active piece. Positioning is virtual: only board
// bounds reject, overlap with placed cells is allowed until placement.
func (g *PuzzleGame) move(dr, dc int) bool {
	p, ok := g.activePiece()
	if !ok {
		return false
	}
	to := Anchor{Row: g.anchor.Row + dr, Col: g.anchor.Col + dc}
	if !g.board.WithinBounds(p.Matrix, to) {
		return false
	}
	g.anchor = to
	return true
}

// Rotate replaces the active piece with its rotation when the piece
// allows rotating and the rotated shape stays in bounds. Like movement,
// rotation here is bounds-only.
func (g *PuzzleGame) Rotate(clockwise bool) bool {
	p, ok := g.activePiece()
	if !ok {
		return false
	}
	if !p.AllowRotate {
		return false
	}
	rotated := p.withMatrix(p.Matrix.Rotated(clockwise))
	if !g.board.WithinBounds(rotated.Matrix, g.anchor) {
		return false
	}
	g.slots.Put(g.active, rotated)
	return true
}

// PlacePiece commits the active piece at its current anchor. The full
// collision-aware placement rule must hold; otherwise it returns false
// with no side effects. On success the piece is stamped and removed from
// the round, full lines clear in place, and an emptied round is
// replenished. If afterwards no remaining piece fits anywhere, the game
// ends.
func (g *PuzzleGame) PlacePiece() bool {
	p, ok := g.activePiece()
	if !ok {
		return false
	}
	if !g.board.CanPlace(p.Matrix, g.anchor) {
		return false
	}

	g.board.stamp(p.Matrix, g.anchor, p.ShapeID)
	g.piecesPlaced++
	notify(g.cfg.Observer, Event{Kind: EventPiecePlaced, ShapeID: p.ShapeID, At: g.anchor, Round: g.round})

	g.removeActiveSlot()

	if cleared := g.board.clearFullRowsInPlace(); cleared > 0 {
		g.linesCleared += cleared
		g.score += cleared * cleared * 100
		notify(g.cfg.Observer, Event{Kind: EventLinesCleared, Lines: cleared, Score: g.score, Round: g.round})
	}

	if len(g.order) == 0 {
		g.round++
		g.fillRound()
	}

	if !g.CanPlaceAnyPiece() {
		g.gameOver = true
		notify(g.cfg.Observer, Event{Kind: EventGameOver, Score: g.score, Round: g.round})
		return true
	}

	g.resetPiecePosition()
	return true
}

// removeActiveSlot deletes the placed piece's slot and activates the
// slot now occupying its position in the presentation order, clamped to
// the last remaining slot.
func (g *PuzzleGame) removeActiveSlot() {
	idx := slices.Index(g.order, g.active)
	g.slots.Del(g.active)
	g.order = slices.Delete(g.order, idx, idx+1)
	if len(g.order) == 0 {
		return
	}
	if idx >= len(g.order) {
		idx = len(g.order) - 1
	}
	g.active = g.order[idx]
}

// SelectNextPiece cycles the active selection forward through the
// round's remaining pieces and repositions it.
func (g *PuzzleGame) SelectNextPiece() bool {
	return g.cycleSelection(1)
}

// SelectPreviousPiece cycles the active selection backward through the
// round's remaining pieces and repositions it.
func (g *PuzzleGame) SelectPreviousPiece() bool {
	return g.cycleSelection(-1)
}

func (g *PuzzleGame) cycleSelection(step int) bool {
	if g.gameOver || len(g.order) == 0 {
		return false
	}
	idx := slices.Index(g.order, g.active)
	idx = (idx + step + len(g.order)) % len(g.order)
	g.active = g.order[idx]
	g.resetPiecePosition()
	return true
}

// CanPlaceAnyPiece reports whether any remaining round piece can be
// placed anywhere on the board.
func (g *PuzzleGame) CanPlaceAnyPiece() bool {
	for _, id := range g.order {
		p, ok := g.slots.Get(id)
		if !ok {
			continue
		}
		for row := 0; row < g.board.Height(); row++ {
			for col := 0; col < g.board.Width(); col++ {
				if g.board.CanPlace(p.Matrix, Anchor{Row: row, Col: col}) {
					return true
				}
			}
		}
	}
	return false
}

// GhostAnchor computes, without mutating state, the lowest anchor the
// active piece could descend to under the collision-aware rule. Purely
// advisory; may equal the current anchor.
func (g *PuzzleGame) GhostAnchor() (Anchor, bool) {
	p, ok := g.activePiece()
	if !ok {
		return Anchor{}, false
	}
	ghost := g.anchor
	for g.board.CanPlace(p.Matrix, Anchor{Row: ghost.Row + 1, Col: ghost.Col}) {
		ghost.Row++
	}
	return ghost, true
}

// resetPiecePosition moves the active piece to the default spawn anchor
// if it is in bounds there, otherwise to the first bounds-valid anchor
// in row-major order. When no anchor fits, the default is kept; the
// any-piece-anywhere check is responsible for ending such games.
func (g *PuzzleGame) resetPiecePosition() {
	p, ok := g.activePiece()
	if !ok {
		return
	}
	def := Anchor{Row: g.cfg.SpawnRow, Col: g.cfg.resolveSpawnCol(p)}
	if g.board.WithinBounds(p.Matrix, def) {
		g.anchor = def
		return
	}
	for row := 0; row < g.board.Height(); row++ {
		for col := 0; col < g.board.Width(); col++ {
			at := Anchor{Row: row, Col: col}
			if g.board.WithinBounds(p.Matrix, at) {
				g.anchor = at
				return
			}
		}
	}
	g.anchor = def
}

func (g *PuzzleGame) activePiece() (Piece, bool) {
	if g.gameOver {
		return Piece{}, false
	}
	return g.slots.Get(g.active)
}

// RoundPiece pairs a slot id with the shape occupying it.
type RoundPiece struct {
	Slot    SlotID
	ShapeID string
}

// PuzzleSnapshot is a read-only copy of puzzle game state for rendering
// or logging. Mutating it never affects the engine.
type PuzzleSnapshot struct {
	Board        [][]string
	RoundPieces  []RoundPiece
	ActiveSlot   SlotID
	ActiveID     string
	ActiveMatrix Matrix
	ActiveAt     Anchor
	Score        int
	LinesCleared int
	PiecesPlaced int
	Round        int
	GameOver     bool
}

// Snapshot returns a deep copy of the observable game state.
func (g *PuzzleGame) Snapshot() PuzzleSnapshot {
	s := PuzzleSnapshot{
		Board:        g.board.Rows(),
		RoundPieces:  make([]RoundPiece, 0, len(g.order)),
		Score:        g.score,
		LinesCleared: g.linesCleared,
		PiecesPlaced: g.piecesPlaced,
		Round:        g.round,
		GameOver:     g.gameOver,
	}
	for _, id := range g.order {
		if p, ok := g.slots.Get(id); ok {
			s.RoundPieces = append(s.RoundPieces, RoundPiece{Slot: id, ShapeID: p.ShapeID})
		}
	}
	if p, ok := g.slots.Get(g.active); ok {
		s.ActiveSlot = g.active
		s.ActiveID = p.ShapeID
		s.ActiveMatrix = p.Matrix.Clone()
		s.ActiveAt = g.anchor
	}
	return s
}
