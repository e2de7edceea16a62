package policy

import (
	"math/rand"

	"github.com/garaekz/chompchamps/internal/board"
)

// GreedyLiberties picks the reachable unclaimed cell of highest reward,
// tie-broken by the post-move liberty count (how many unclaimed neighbours
// the mover would have after the move), and finally by direction order.
// It is the reference policy every shipped player binary uses by default.
type GreedyLiberties struct {
	cfg config
}

// NewGreedyLiberties constructs a GreedyLiberties policy. The RNG option
// has no effect on GreedyLiberties itself (its choice is deterministic);
// it is accepted for interface symmetry with RandomValid and so a caller
// building both policies from one option set doesn't need to special-case
// either.
func NewGreedyLiberties(opts ...Option) *GreedyLiberties {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return &GreedyLiberties{cfg: c}
}

// Select implements Policy.
func (p *GreedyLiberties) Select(s *board.Snapshot, myIndex int, rng *rand.Rand) (board.Direction, bool) {
	moves := legalMoves(s, myIndex)
	if len(moves) == 0 {
		return 0, false
	}

	best := moves[0]
	bestLiberties := liberties(s, best.x, best.y)
	for _, m := range moves[1:] {
		l := liberties(s, m.x, m.y)
		if m.reward > best.reward || (m.reward == best.reward && l > bestLiberties) {
			best = m
			bestLiberties = l
		}
	}
	return best.dir, true
}
