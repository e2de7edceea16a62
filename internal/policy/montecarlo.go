package policy

import (
	"math/rand"
	"time"

	"github.com/garaekz/chompchamps/internal/board"
)

// FlatMonteCarlo evaluates every legal first move by running random
// playouts from it until a wall-clock budget runs out, then picks the move
// with the best mean payoff (own final score minus the strongest
// opponent's). Opponents inside the playouts are modelled with a light
// greedy-plus-random policy preferring reward and liberties; all simulation
// mutates private copies, never the snapshot.
type FlatMonteCarlo struct {
	cfg config
}

// defaultBudget applies when no WithBudget option is given; it matches the
// per-move decision budget the PLAYER_TIME_MS environment variable defaults
// to.
const defaultBudget = 120 * time.Millisecond

// defaultPlayoutDepth caps a single playout's rounds so late-game playouts
// on large boards still finish well inside the budget.
const defaultPlayoutDepth = 32

// greedyBias is the probability a simulated player takes the greedy move
// instead of a uniformly random legal one.
const greedyBias = 0.8

// NewFlatMonteCarlo constructs a FlatMonteCarlo policy.
func NewFlatMonteCarlo(opts ...Option) *FlatMonteCarlo {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	if c.budget <= 0 {
		c.budget = defaultBudget
	}
	if c.depth <= 0 {
		c.depth = defaultPlayoutDepth
	}
	return &FlatMonteCarlo{cfg: c}
}

// Select implements Policy.
func (p *FlatMonteCarlo) Select(s *board.Snapshot, myIndex int, rng *rand.Rand) (board.Direction, bool) {
	moves := legalMoves(s, myIndex)
	if len(moves) == 0 {
		return 0, false
	}
	if len(moves) == 1 {
		return moves[0].dir, true
	}

	deadline := time.Now().Add(p.cfg.budget)
	totals := make([]int64, len(moves))
	counts := make([]int64, len(moves))

	// Round-robin over the candidates so an early deadline still leaves
	// every move with a comparable number of playouts.
	for i := 0; time.Now().Before(deadline); i++ {
		c := i % len(moves)
		sim := newSimState(s)
		sim.apply(myIndex, moves[c])
		sim.playout(rng, p.cfg.depth)
		totals[c] += sim.payoff(myIndex)
		counts[c]++
	}

	best := 0
	for c := 1; c < len(moves); c++ {
		if counts[c] == 0 {
			continue
		}
		if counts[best] == 0 || totals[c]*counts[best] > totals[best]*counts[c] {
			best = c
		}
	}
	return moves[best].dir, true
}

// simState is a private, mutable copy of the parts of a snapshot a playout
// touches.
type simState struct {
	w, h    int32
	cells   []board.Cell
	x, y    [board.MaxPlayers]int32
	score   [board.MaxPlayers]int64
	blocked [board.MaxPlayers]bool
	n       int
}

func newSimState(s *board.Snapshot) *simState {
	sim := &simState{
		w:     s.Header.Width,
		h:     s.Header.Height,
		cells: append([]board.Cell(nil), s.Cells...),
		n:     int(s.Header.PlayerCount),
	}
	for i := 0; i < sim.n; i++ {
		p := s.Header.Players[i]
		sim.x[i], sim.y[i] = p.X, p.Y
		sim.score[i] = p.Score
		sim.blocked[i] = p.Blocked
	}
	return sim
}

func (sim *simState) apply(idx int, m move) {
	sim.score[idx] += int64(m.reward)
	sim.cells[m.y*sim.w+m.x] = board.Claim(int32(idx))
	sim.x[idx], sim.y[idx] = m.x, m.y
}

func (sim *simState) legal(idx int) []move {
	var moves []move
	for d := board.Direction(0); d < board.NumDirections; d++ {
		nx, ny, ok := d.Target(sim.x[idx], sim.y[idx], sim.w, sim.h)
		if !ok {
			continue
		}
		cell := sim.cells[ny*sim.w+nx]
		if !cell.Unclaimed() {
			continue
		}
		moves = append(moves, move{dir: d, x: nx, y: ny, reward: cell.Reward()})
	}
	return moves
}

func (sim *simState) liberties(x, y int32) int {
	n := 0
	for d := board.Direction(0); d < board.NumDirections; d++ {
		nx, ny, ok := d.Target(x, y, sim.w, sim.h)
		if ok && sim.cells[ny*sim.w+nx].Unclaimed() {
			n++
		}
	}
	return n
}

// playout runs up to depth full rounds, every player moving in index order
// with the light greedy+random opponent model, stopping early once nobody
// can move.
func (sim *simState) playout(rng *rand.Rand, depth int) {
	for round := 0; round < depth; round++ {
		moved := false
		for idx := 0; idx < sim.n; idx++ {
			if sim.blocked[idx] {
				continue
			}
			moves := sim.legal(idx)
			if len(moves) == 0 {
				continue
			}
			sim.apply(idx, sim.pick(rng, moves))
			moved = true
		}
		if !moved {
			return
		}
	}
}

// pick is the opponent model: greedy on reward plus liberties most of the
// time, uniformly random otherwise.
func (sim *simState) pick(rng *rand.Rand, moves []move) move {
	if rng.Float64() >= greedyBias {
		return moves[rng.Intn(len(moves))]
	}
	best := moves[0]
	bestVal := int(best.reward) + sim.liberties(best.x, best.y)
	for _, m := range moves[1:] {
		if v := int(m.reward) + sim.liberties(m.x, m.y); v > bestVal {
			best = m
			bestVal = v
		}
	}
	return best
}

// payoff scores a finished playout for idx: own total minus the strongest
// other player's.
func (sim *simState) payoff(idx int) int64 {
	var bestOther int64
	for i := 0; i < sim.n; i++ {
		if i == idx {
			continue
		}
		if sim.score[i] > bestOther {
			bestOther = sim.score[i]
		}
	}
	return sim.score[idx] - bestOther
}
