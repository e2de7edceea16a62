package policy

import (
	"math/rand"
	"testing"
	"time"

	"github.com/garaekz/chompchamps/internal/board"
)

func snapshotWithRewards(width, height int32, rewards map[[2]int32]int32) *board.Snapshot {
	s := &board.Snapshot{
		Header: board.StateHeader{Width: width, Height: height, PlayerCount: 1},
		Cells:  make([]board.Cell, width*height),
	}
	for xy, r := range rewards {
		s.Cells[xy[1]*width+xy[0]] = board.Cell(r)
	}
	return s
}

func TestGreedyLibertiesPrefersHighestReward(t *testing.T) {
	s := snapshotWithRewards(3, 3, map[[2]int32]int32{
		{0, 0}: 1, // UpLeft of player
		{1, 2}: 9, // Down from player
	})
	s.Header.Players[0] = board.PlayerRecord{X: 1, Y: 1}

	p := NewGreedyLiberties()
	dir, ok := p.Select(s, 0, rand.New(rand.NewSource(1)))
	if !ok {
		t.Fatal("expected a legal move")
	}
	if dir != board.Down {
		t.Fatalf("Select() = %s, want DOWN (highest reward)", dir)
	}
}

func TestGreedyLibertiesNoLegalMoveGivesUp(t *testing.T) {
	s := snapshotWithRewards(1, 1, nil)
	s.Header.Players[0] = board.PlayerRecord{X: 0, Y: 0}

	p := NewGreedyLiberties()
	_, ok := p.Select(s, 0, rand.New(rand.NewSource(1)))
	if ok {
		t.Fatal("expected no legal move on a 1x1 board with no neighbours")
	}
}

func TestRandomValidOnlyPicksLegalMoves(t *testing.T) {
	s := snapshotWithRewards(3, 3, map[[2]int32]int32{
		{2, 1}: 3, // Right
		{0, 1}: 4, // Left
	})
	s.Header.Players[0] = board.PlayerRecord{X: 1, Y: 1}

	p := NewRandomValid()
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		dir, ok := p.Select(s, 0, rng)
		if !ok {
			t.Fatal("expected a legal move")
		}
		if dir != board.Right && dir != board.Left {
			t.Fatalf("Select() = %s, want LEFT or RIGHT", dir)
		}
	}
}

func TestLibertiesCountsUnclaimedNeighbours(t *testing.T) {
	s := snapshotWithRewards(3, 3, map[[2]int32]int32{
		{0, 0}: 1,
		{1, 0}: 1,
		{0, 1}: 1,
	})
	if got := liberties(s, 0, 0); got != 2 {
		t.Fatalf("liberties(0,0) = %d, want 2", got)
	}
}

func TestFlatMonteCarloReturnsLegalMove(t *testing.T) {
	s := snapshotWithRewards(3, 3, map[[2]int32]int32{
		{2, 1}: 3,
		{0, 1}: 4,
		{1, 0}: 2,
	})
	s.Header.Players[0] = board.PlayerRecord{X: 1, Y: 1}

	p := NewFlatMonteCarlo(WithBudget(5 * time.Millisecond))
	rng := rand.New(rand.NewSource(7))
	dir, ok := p.Select(s, 0, rng)
	if !ok {
		t.Fatal("expected a legal move")
	}
	nx, ny, inBounds := dir.Target(1, 1, 3, 3)
	if !inBounds || !s.At(nx, ny).Unclaimed() {
		t.Fatalf("Select() = %s targets a non-legal cell", dir)
	}
}

func TestFlatMonteCarloGivesUpWithNoMoves(t *testing.T) {
	s := snapshotWithRewards(1, 1, nil)
	s.Header.Players[0] = board.PlayerRecord{X: 0, Y: 0}

	p := NewFlatMonteCarlo(WithBudget(time.Millisecond))
	if _, ok := p.Select(s, 0, rand.New(rand.NewSource(1))); ok {
		t.Fatal("expected no legal move on a 1x1 board")
	}
}

func TestFlatMonteCarloDoesNotMutateSnapshot(t *testing.T) {
	s := snapshotWithRewards(3, 3, map[[2]int32]int32{
		{2, 1}: 3,
		{0, 1}: 4,
	})
	s.Header.Players[0] = board.PlayerRecord{X: 1, Y: 1}
	before := append([]board.Cell(nil), s.Cells...)

	p := NewFlatMonteCarlo(WithBudget(5 * time.Millisecond))
	p.Select(s, 0, rand.New(rand.NewSource(3)))

	for i := range before {
		if s.Cells[i] != before[i] {
			t.Fatalf("cell %d changed from %d to %d during simulation", i, before[i], s.Cells[i])
		}
	}
}
