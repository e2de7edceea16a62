// Package policy provides pluggable move-selection strategies a player
// runtime invokes against a board snapshot. Policy itself has no IPC
// knowledge; internal/playerrt is the only caller that threads a Policy's
// decision back through the shared-memory protocol.
package policy

import (
	"math/rand"
	"time"

	"github.com/garaekz/chompchamps/internal/board"
)

// Policy chooses a move for myIndex given a read-only snapshot of the
// current game state.
type Policy interface {
	Select(snapshot *board.Snapshot, myIndex int, rng *rand.Rand) (board.Direction, bool)
}

// Option configures a policy built by one of the New... constructors.
type Option func(*config)

type config struct {
	rngSeed int64
	hasSeed bool
	budget  time.Duration
	depth   int
}

// WithRNGSeed records an RNG seed in the policy's configuration. No shipped
// policy reads it: each Select draws from the rng it is passed.
func WithRNGSeed(seed int64) Option {
	return func(c *config) {
		c.rngSeed = seed
		c.hasSeed = true
	}
}

// WithBudget bounds the wall-clock time a time-budgeted policy may spend
// per move. Policies without a time dimension ignore it.
func WithBudget(d time.Duration) Option {
	return func(c *config) {
		c.budget = d
	}
}

// WithPlayoutDepth caps how many full rounds a single simulated playout
// may run before it is scored as-is.
func WithPlayoutDepth(n int) Option {
	return func(c *config) {
		c.depth = n
	}
}

// legalMoves returns every direction whose target cell is in bounds and
// still holds an unclaimed reward, alongside that cell's coordinates.
func legalMoves(s *board.Snapshot, myIndex int) []move {
	p := s.Header.Players[myIndex]
	var moves []move
	for d := board.Direction(0); d < board.NumDirections; d++ {
		nx, ny, ok := d.Target(p.X, p.Y, s.Header.Width, s.Header.Height)
		if !ok {
			continue
		}
		cell := s.At(nx, ny)
		if !cell.Unclaimed() {
			continue
		}
		moves = append(moves, move{dir: d, x: nx, y: ny, reward: cell.Reward()})
	}
	return moves
}

type move struct {
	dir    board.Direction
	x, y   int32
	reward int32
}

// liberties counts the in-bounds, still-unclaimed neighbours of (x, y) on
// the given snapshot.
func liberties(s *board.Snapshot, x, y int32) int {
	n := 0
	for d := board.Direction(0); d < board.NumDirections; d++ {
		nx, ny, ok := d.Target(x, y, s.Header.Width, s.Header.Height)
		if ok && s.At(nx, ny).Unclaimed() {
			n++
		}
	}
	return n
}
