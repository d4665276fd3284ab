package blocks

import (
	"math/rand/v2"
	"sort"
)

// Selector draws pieces from a catalog with replacement, using each
// piece's SpawnWeight as relative probability mass. Draws are
// independent; with a seeded generator the full draw sequence is
// reproducible.
type Selector struct {
	pieces []Piece
	cum    []float64
	total  float64
	rng    *rand.Rand
}

// NewSelector builds a selector over the catalog. The catalog must be
// non-empty; piece weights are assumed positive (NewPiece enforces it).
func NewSelector(pieces []Piece, rng *rand.Rand) (*Selector, error) {
	if len(pieces) == 0 {
		return nil, ErrNoPieces
	}
	cum := make([]float64, len(pieces))
	total := 0.0
	for i, p := range pieces {
		total += p.SpawnWeight
		cum[i] = total
	}
	return &Selector{pieces: pieces, cum: cum, total: total, rng: rng}, nil
}

// Pick returns one weighted draw from the catalog.
func (s *Selector) Pick() Piece {
	x := s.rng.Float64() * s.total
	i := sort.SearchFloat64s(s.cum, x)
	if i == len(s.cum) {
		// Float64 can return a value summing exactly to total.
		i = len(s.cum) - 1
	}
	return s.pieces[i]
}

// PickN returns k independent weighted draws.
func (s *Selector) PickN(k int) []Piece {
	out := make([]Piece, k)
	for i := range out {
		out[i] = s.Pick()
	}
	return out
}

// newRNG returns a PCG generator: seeded and reproducible when seed is
// non-nil, otherwise initialized from system entropy.
func newRNG(seed *uint64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewPCG(*seed, *seed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
