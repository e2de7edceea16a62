package policy

import (
	"math/rand"

	"github.com/garaekz/chompchamps/internal/board"
)

// RandomValid chooses uniformly among every direction whose target holds
// an unclaimed reward. It models a lightweight opponent, in place of the
// heavier Monte-Carlo/Voronoi policies real arenas sometimes ship.
type RandomValid struct {
	cfg config
}

// NewRandomValid constructs a RandomValid policy.
func NewRandomValid(opts ...Option) *RandomValid {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return &RandomValid{cfg: c}
}

// Select implements Policy.
func (p *RandomValid) Select(s *board.Snapshot, myIndex int, rng *rand.Rand) (board.Direction, bool) {
	moves := legalMoves(s, myIndex)
	if len(moves) == 0 {
		return 0, false
	}
	return moves[rng.Intn(len(moves))].dir, true
}
