package arbiter

import (
	"context"
	"time"

	"github.com/garaekz/chompchamps/internal/board"
)

// checkTermination evaluates spec.md §4.3's three termination conditions,
// first match wins, and marks the game over if any fires. The Arbiter is
// the sole writer of StateHeader, so these reads never need the readers'
// protocol — only concurrent readers (players, viewer) do.
func (a *Arbiter) checkTermination() bool {
	h := a.state.Header()
	if h.GameOver {
		return true
	}

	switch {
	case a.noLegalMoveRemains():
	case time.Since(a.lastValidMove) >= time.Duration(a.cfg.TimeoutSec)*time.Second:
	case a.allBlocked():
	default:
		return false
	}

	sb := a.sync.Sync()
	sb.WriterEnter(context.Background())
	h.GameOver = true
	sb.WriterExit()
	a.releasePlayers()
	return true
}

// forceGameOver sets game_over directly, for the SIGINT/SIGTERM shutdown
// path where none of the three documented termination conditions fired.
func (a *Arbiter) forceGameOver() {
	sb := a.sync.Sync()
	sb.WriterEnter(context.Background())
	a.state.Header().GameOver = true
	sb.WriterExit()
	a.releasePlayers()
}

// releasePlayers signals every turn token once after game_over is set, so a
// player parked on its token wakes, snapshots the terminal state, and exits
// instead of waiting forever for a refill that will never come.
func (a *Arbiter) releasePlayers() {
	sb := a.sync.Sync()
	for i := range a.players {
		sb.SignalTurn(i)
	}
}

// noLegalMoveRemains is termination condition 1: no non-blocked player has
// any in-bounds move whose target cell still holds a positive reward.
func (a *Arbiter) noLegalMoveRemains() bool {
	h := a.state.Header()
	cells := a.state.Cells()
	for i := int32(0); i < h.PlayerCount; i++ {
		p := &h.Players[i]
		if p.Blocked {
			continue
		}
		for d := board.Direction(0); d < board.NumDirections; d++ {
			nx, ny, inBounds := d.Target(p.X, p.Y, h.Width, h.Height)
			if !inBounds {
				continue
			}
			if cells[ny*h.Width+nx].Unclaimed() {
				return false
			}
		}
	}
	return true
}

// allBlocked is termination condition 3: every player's pipe has hit EOF.
func (a *Arbiter) allBlocked() bool {
	h := a.state.Header()
	for i := int32(0); i < h.PlayerCount; i++ {
		if !h.Players[i].Blocked {
			return false
		}
	}
	return true
}
