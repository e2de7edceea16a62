package arbiter

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/garaekz/chompchamps/internal/board"
	"github.com/garaekz/chompchamps/terminal"
)

// viewerHandshakeTimeout bounds every master<->view handshake wait. A dead
// or wedged viewer must never be able to stall the scheduler or the final
// shutdown (spec.md §9, Open Question 3).
const viewerHandshakeTimeout = 2 * time.Second

// pipeEvent reports one byte read from a player's pipe, or that the pipe
// hit EOF/an error and the player should be treated as blocked.
type pipeEvent struct {
	idx int
	b   byte
	eof bool
}

// tickEvent is produced on a fixed interval purely so the main loop wakes
// up and re-runs the termination checks even when no player has moved —
// the Go-native stand-in for the multiplexer's bounded wait.
type tickEvent struct{}

// readPlayerPipe is the per-player producer goroutine: it mirrors
// runfx/loop.go's produceKeyEvents by performing the one blocking
// primitive (a one-byte Read) and reporting every result over the shared
// events channel, so the consuming select loop never calls Read itself.
func readPlayerPipe(ctx context.Context, idx int, r io.Reader, events chan<- any) {
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n == 1 {
			select {
			case events <- pipeEvent{idx: idx, b: buf[0]}:
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			select {
			case events <- pipeEvent{idx: idx, eof: true}:
			case <-ctx.Done():
			}
			return
		}
	}
}

// produceTickEvents mirrors runfx/loop.go's produceTickEvents: a ticker
// goroutine feeding the same events channel the pipe producers use, so the
// select loop treats pacing and pipe readiness uniformly.
func produceTickEvents(ctx context.Context, events chan<- any, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			select {
			case events <- tickEvent{}:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Run drives the event-driven scheduler until a termination condition
// fires or ctx is cancelled (including by SIGINT/SIGTERM), then reports the
// final standings and releases every resource Start acquired.
func (a *Arbiter) Run(ctx context.Context) (*Result, error) {
	events := make(chan any, 4*len(a.players)+1)
	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg, _ := errgroup.WithContext(context.Background())
	for i, p := range a.players {
		i, p := i, p
		eg.Go(func() error {
			readPlayerPipe(loopCtx, i, p.r, events)
			return nil
		})
	}

	delay := time.Duration(a.cfg.DelayMS) * time.Millisecond
	if delay <= 0 {
		delay = time.Millisecond
	}
	go produceTickEvents(loopCtx, events, delay)

	sh := terminal.NewSignalHandler()
	sh.OnStop(cancel)
	go sh.Listen(loopCtx)

	a.lastValidMove = time.Now()

loop:
	for {
		select {
		case <-loopCtx.Done():
			a.forceGameOver()
			break loop
		case ev := <-events:
			a.handleEvent(loopCtx, ev, delay)
		}
		if a.checkTermination() {
			break loop
		}
	}

	sh.Stop()

	// Cancel first so a producer parked on a full events channel can bail
	// out, then close the pipes to unblock producers parked in Read.
	cancel()
	for _, p := range a.players {
		_ = p.close()
	}
	_ = eg.Wait()
	for _, p := range a.players {
		_ = p.wait()
	}

	result := a.finish(context.Background())

	if err := a.Shutdown(); err != nil {
		a.log.Error(fmt.Sprintf("cleanup: %v", err))
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, ctxErr
	}
	return result, nil
}

// handleEvent applies one event to the game state. Pipe events carrying a
// move run entirely under the writer lock; the view handshake and pacing
// sleep happen after the lock is released (spec.md §9, Open Question 1).
func (a *Arbiter) handleEvent(ctx context.Context, ev any, delay time.Duration) {
	switch e := ev.(type) {
	case pipeEvent:
		if e.eof {
			a.markBlocked(ctx, e.idx)
			_ = a.players[e.idx].close()
			return
		}
		if a.applyMove(ctx, e.idx, e.b) {
			a.lastValidMove = time.Now()
		}
		a.viewHandshake(ctx)
		time.Sleep(delay)
		if !a.playerDone(e.idx) {
			a.sync.Sync().SignalTurn(e.idx)
		}
	case tickEvent:
		// No direct effect: its only purpose is waking the select loop so
		// Run's termination check below runs on a regular cadence even
		// when every player is idle.
	}
}

// applyMove validates and, if legal, applies one move byte for player idx,
// entirely under the writer lock, per spec.md §4.3's main-loop rules.
func (a *Arbiter) applyMove(ctx context.Context, idx int, b byte) (valid bool) {
	sb := a.sync.Sync()
	if err := sb.WriterEnter(ctx); err != nil {
		return false
	}
	defer sb.WriterExit()

	h := a.state.Header()
	p := &h.Players[idx]
	if h.GameOver || p.Blocked {
		return false
	}

	dir := board.Direction(b)
	if !dir.Valid() {
		p.InvalidMoves++
		return false
	}
	nx, ny, inBounds := dir.Target(p.X, p.Y, h.Width, h.Height)
	if !inBounds {
		p.InvalidMoves++
		return false
	}
	cells := a.state.Cells()
	target := ny*h.Width + nx
	if !cells[target].Unclaimed() {
		p.InvalidMoves++
		return false
	}

	p.Score += int64(cells[target].Reward())
	cells[target] = board.Claim(int32(idx))
	p.X, p.Y = nx, ny
	p.ValidMoves++
	return true
}

// markBlocked sets a player's Blocked flag under the writer lock after its
// pipe reports EOF.
func (a *Arbiter) markBlocked(ctx context.Context, idx int) {
	sb := a.sync.Sync()
	if err := sb.WriterEnter(ctx); err != nil {
		return
	}
	a.state.Header().Players[idx].Blocked = true
	sb.WriterExit()
}

// playerDone reports whether idx should not receive another turn token:
// either the game has ended, or that player is already blocked.
func (a *Arbiter) playerDone(idx int) bool {
	h := a.state.Header()
	return h.GameOver || h.Players[idx].Blocked
}

// viewHandshake signals master_to_view and waits on view_to_master, bounded
// by viewerHandshakeTimeout so a dead viewer can never stall a move or
// shutdown. It is a no-op when no viewer was spawned.
func (a *Arbiter) viewHandshake(parent context.Context) {
	if a.viewer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(parent, viewerHandshakeTimeout)
	defer cancel()

	sb := a.sync.Sync()
	sb.MasterToView.Signal()
	if err := sb.ViewToMaster.Wait(ctx); err != nil {
		a.log.Warn(fmt.Sprintf("view handshake timed out: %v", err))
	}
}
