// Package viewer implements the read-only spectator process: it maps both
// shared regions, waits on master_to_view, renders the board and
// scoreboard under the readers' protocol, and signals view_to_master so
// the Arbiter's handshake unblocks.
package viewer

import (
	"context"
	"io"

	"github.com/garaekz/chompchamps/internal/board"
	"github.com/garaekz/chompchamps/internal/errkind"
	"github.com/garaekz/chompchamps/internal/shmem"
	"github.com/garaekz/chompchamps/writer"
)

const op = "viewer"

// Viewer drives the render loop described in spec.md §4.5.
type Viewer struct {
	State *shmem.Region
	Sync  *shmem.Region
	Out   *writer.TerminalWriter
}

// New builds a Viewer writing to out (typically os.Stdout — the viewer, not
// being a player, has no one-byte protocol to protect on stdout).
func New(state, sync *shmem.Region, out io.Writer) *Viewer {
	return &Viewer{
		State: state,
		Sync:  sync,
		Out:   writer.NewTerminalWriter(out, writer.TerminalOptions{}),
	}
}

// snapshot copies width, height, player_count, the full board, and every
// PlayerRecord under the readers' protocol, mirroring playerrt.Runtime's
// own snapshot helper.
func (v *Viewer) snapshot(ctx context.Context) (*board.Snapshot, error) {
	sb := v.Sync.Sync()
	if err := sb.ReaderEnter(ctx); err != nil {
		return nil, errkind.New(errkind.Interrupted, op+".snapshot", err)
	}
	defer sb.ReaderExit(context.Background())

	h := v.State.Header()
	s := &board.Snapshot{Header: *h}
	s.Cells = append(s.Cells[:0:0], v.State.Cells()...)
	return s, nil
}

// Run loops: wait on master_to_view, snapshot, render, signal
// view_to_master, exit once game_over is observed.
func (v *Viewer) Run(ctx context.Context) error {
	sb := v.Sync.Sync()
	for {
		if err := sb.MasterToView.Wait(ctx); err != nil {
			return errkind.New(errkind.Interrupted, op+".Run", err)
		}

		snap, err := v.snapshot(ctx)
		if err != nil {
			return err
		}

		v.Out.Clear()
		if _, err := v.Out.Write([]byte(renderBoard(snap) + renderScoreboard(snap))); err != nil {
			return errkind.New(errkind.IOFailure, op+".Run", err)
		}

		sb.ViewToMaster.Signal()

		if snap.Header.GameOver {
			return nil
		}
	}
}
