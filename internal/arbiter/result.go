package arbiter

import (
	"context"
	"fmt"
	"sort"
)

// Standing is one player's final tally, used both for the lexicographic
// winner computation and for the exit report.
type Standing struct {
	Index        int
	Name         string
	Score        int64
	ValidMoves   uint64
	InvalidMoves uint64
	Blocked      bool
	ExitStatus   string
}

// Result is what Run returns once the game has ended.
type Result struct {
	Standings []Standing
	Winner    Standing
	Tie       bool
}

// finish performs the terminal sequence from spec.md §4.3: one final view
// handshake so the viewer observes the terminal state, then the standings
// and winner computation. checkTermination (or forceGameOver on
// cancellation) has already set game_over.
func (a *Arbiter) finish(ctx context.Context) *Result {
	a.viewHandshake(ctx)

	standings := a.standings()
	winner, tie := computeWinner(standings)
	a.logResult(standings, winner, tie)

	return &Result{Standings: standings, Winner: winner, Tie: tie}
}

func (a *Arbiter) standings() []Standing {
	h := a.state.Header()
	out := make([]Standing, 0, h.PlayerCount)
	for i := int32(0); i < h.PlayerCount; i++ {
		p := h.Players[i]
		exit := "unknown"
		if int(i) < len(a.players) {
			exit = a.players[i].exit
		}
		out = append(out, Standing{
			Index:        int(i),
			Name:         p.NameString(),
			Score:        p.Score,
			ValidMoves:   p.ValidMoves,
			InvalidMoves: p.InvalidMoves,
			Blocked:      p.Blocked,
			ExitStatus:   exit,
		})
	}
	return out
}

// ranksBetter reports whether a outranks b: higher score first, then fewer
// valid_moves, then fewer invalid_moves (spec.md §4.3's tiebreak).
func ranksBetter(a, b Standing) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.ValidMoves != b.ValidMoves {
		return a.ValidMoves < b.ValidMoves
	}
	return a.InvalidMoves < b.InvalidMoves
}

func ranksEqual(a, b Standing) bool {
	return a.Score == b.Score && a.ValidMoves == b.ValidMoves && a.InvalidMoves == b.InvalidMoves
}

// computeWinner sorts standings best-first and reports a tie when the top
// two are indistinguishable by every tiebreak key.
func computeWinner(standings []Standing) (Standing, bool) {
	if len(standings) == 0 {
		return Standing{}, false
	}
	sorted := append([]Standing(nil), standings...)
	sort.SliceStable(sorted, func(i, j int) bool { return ranksBetter(sorted[i], sorted[j]) })

	if len(sorted) > 1 && ranksEqual(sorted[0], sorted[1]) {
		return sorted[0], true
	}
	return sorted[0], false
}

func (a *Arbiter) logResult(standings []Standing, winner Standing, tie bool) {
	for _, s := range standings {
		a.log.Info(fmt.Sprintf("player %d (%s): score=%d valid=%d invalid=%d blocked=%v %s",
			s.Index, s.Name, s.Score, s.ValidMoves, s.InvalidMoves, s.Blocked, s.ExitStatus))
	}
	if tie {
		a.log.Info("game over: tie")
		return
	}
	a.log.Info(fmt.Sprintf("game over: winner is player %d (%s) with score %d", winner.Index, winner.Name, winner.Score))
}
