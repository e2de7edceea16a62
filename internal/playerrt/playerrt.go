// Package playerrt implements the player process's choreography: discover
// which board slot belongs to this process, then repeatedly wait for a
// turn token, snapshot the board under the readers' protocol, ask a
// policy.Policy for a move, and emit it to stdout under the writer lock as
// an ordering device.
//
// The turn-token wait is a context-bounded spin wait, so cancellation
// ends it; the stdout write of the chosen direction is a plain blocking
// write.
package playerrt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"syscall"
	"time"

	"github.com/garaekz/chompchamps/internal/board"
	"github.com/garaekz/chompchamps/internal/errkind"
	"github.com/garaekz/chompchamps/internal/policy"
	"github.com/garaekz/chompchamps/internal/shmem"
)

const op = "playerrt"

// Runtime drives one player process's turn loop.
type Runtime struct {
	State  *shmem.Region
	Sync   *shmem.Region
	Policy policy.Policy
	Rng    *rand.Rand
	Out    io.Writer

	myIndex int
}

// DiscoverSlot finds the board slot the arbiter reserved for this process
// by matching os.Getpid() against the PlayerRecord.PID field every slot
// carries. The arbiter writes PID before forking this process's sibling
// slots, but writes it concurrently with its own startup goroutines; this
// scan deliberately does not take the readers' protocol, because the only
// concurrent writer at this point is arbiter startup populating PID fields
// once each, which is benign to read racily before the game loop begins.
func (r *Runtime) DiscoverSlot(ctx context.Context, pid int32, retry time.Duration) error {
	for {
		header := r.State.Header()
		for i := int32(0); i < header.PlayerCount; i++ {
			if header.Players[i].PID == pid {
				r.myIndex = int(i)
				return nil
			}
		}
		if header.GameOver {
			return errkind.New(errkind.ResourceUnavailable, op+".DiscoverSlot",
				fmt.Errorf("game ended before pid %d was assigned a slot", pid))
		}
		select {
		case <-ctx.Done():
			return errkind.New(errkind.ResourceUnavailable, op+".DiscoverSlot", ctx.Err())
		case <-time.After(retry):
		}
	}
}

// MyIndex returns the slot discovered by DiscoverSlot.
func (r *Runtime) MyIndex() int { return r.myIndex }

// snapshot copies width, height, player_count, the full board, and every
// PlayerRecord under the readers' protocol.
func (r *Runtime) snapshot(ctx context.Context) (*board.Snapshot, error) {
	sb := r.Sync.Sync()
	if err := sb.ReaderEnter(ctx); err != nil {
		return nil, errkind.New(errkind.Interrupted, op+".snapshot", err)
	}
	defer sb.ReaderExit(context.Background())

	h := r.State.Header()
	s := &board.Snapshot{Header: *h}
	s.Cells = append(s.Cells[:0:0], r.State.Cells()...)
	return s, nil
}

// RunTurn executes exactly one Idle->...->Idle cycle of the player state
// machine, returning (false, nil) once game_over is observed so the
// caller's loop can stop.
func (r *Runtime) RunTurn(ctx context.Context) (bool, error) {
	sb := r.Sync.Sync()

	if err := sb.WaitTurn(ctx, r.myIndex); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false, errkind.New(errkind.Interrupted, op+".RunTurn", err)
		}
		return false, err
	}

	snap, err := r.snapshot(ctx)
	if err != nil {
		return false, err
	}
	if snap.Header.GameOver {
		return false, nil
	}
	if snap.Header.Players[r.myIndex].Blocked {
		return false, nil
	}

	dir, ok := r.Policy.Select(snap, r.myIndex, r.Rng)
	if !ok {
		return false, errkind.New(errkind.PolicyGaveUp, op+".RunTurn", fmt.Errorf("no legal move for player %d", r.myIndex))
	}

	if err := sb.WriterEnter(ctx); err != nil {
		return false, errkind.New(errkind.Interrupted, op+".RunTurn", err)
	}

	cur := r.State.Header().Players[r.myIndex]
	stale := cur.X != snap.Header.Players[r.myIndex].X ||
		cur.Y != snap.Header.Players[r.myIndex].Y ||
		cur.Blocked

	if stale {
		// Snapshot is out of date: skip this emission and loop back to
		// Idle for the next turn token, per the documented side exit.
		sb.WriterExit()
		return true, nil
	}

	if err := r.emit(byte(dir)); err != nil {
		sb.WriterExit()
		if errors.Is(err, io.ErrClosedPipe) || errors.Is(err, syscall.EPIPE) {
			// The arbiter is gone; give up the remaining turns cleanly.
			return false, nil
		}
		return false, errkind.New(errkind.BrokenPipe, op+".RunTurn", err)
	}
	sb.WriterExit()
	return true, nil
}

// emit writes exactly one raw byte (not ASCII) to stdout.
func (r *Runtime) emit(b byte) error {
	_, err := r.Out.Write([]byte{b})
	return err
}

// Run drives RunTurn in a loop until the game ends or ctx is cancelled.
func (r *Runtime) Run(ctx context.Context) error {
	for {
		cont, err := r.RunTurn(ctx)
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
}
