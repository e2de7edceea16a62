// Package arbiter implements the central referee: it owns both shared
// regions, spawns the player and viewer processes, runs the event-driven
// scheduler that is the game's single writer, and reports the final
// standings. Nothing outside this package ever calls shmem.Region.Destroy
// on the two named regions — that is the Arbiter's responsibility alone.
package arbiter

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"go.uber.org/multierr"

	"github.com/garaekz/chompchamps/flowfx"
	"github.com/garaekz/chompchamps/internal/board"
	"github.com/garaekz/chompchamps/internal/config"
	"github.com/garaekz/chompchamps/internal/errkind"
	"github.com/garaekz/chompchamps/internal/gamelog"
	"github.com/garaekz/chompchamps/internal/shmem"
	"github.com/garaekz/chompchamps/logx"
)

const (
	op = "arbiter"

	// stateRegionName and syncRegionName are the two POSIX-named shared
	// regions every player and the viewer map by these exact names.
	stateRegionName = "/game_state"
	syncRegionName  = "/game_sync"
)

// Arbiter owns the two shared regions, the spawned player and viewer
// processes, and the single writer lock through which every StateBlock
// mutation passes.
type Arbiter struct {
	cfg *config.Game
	log *logx.Context

	state *shmem.Region
	sync  *shmem.Region

	players []*playerHandle
	viewer  *exec.Cmd

	lastValidMove time.Time
}

// New builds an Arbiter from a resolved configuration. If log is nil, a
// stderr logger is created for the "arbiter" component using cfg's log
// settings.
func New(cfg *config.Game, log *logx.Context) *Arbiter {
	if log == nil {
		log = gamelog.ForComponent("arbiter", gamelog.Options{
			JSON:    cfg.LogFormat == "json",
			Level:   cfg.LogLevel,
			LogFile: cfg.LogFile,
		})
	}
	return &Arbiter{cfg: cfg, log: log}
}

// Start creates both shared regions, seeds the board, and spawns every
// player and the optional viewer, as a flowfx.Sequence so the first failing
// step stops everything after it. Run (or Shutdown, on a failed Start)
// releases the regions and reaps every spawned child.
func (a *Arbiter) Start() error {
	playerCount := len(a.cfg.PlayerPaths)
	rng := newSeededRand(a.cfg.Seed)
	snap := board.NewSnapshot(a.cfg.Width, a.cfg.Height, playerCount, rng)

	seq := flowfx.NewSequence(flowfx.SequenceConfig{Name: op + ".Start"})

	seq.AddFunc("create state region", func(ctx context.Context) error {
		state, err := shmem.Create(stateRegionName, shmem.StateSize(a.cfg.Width, a.cfg.Height), false)
		if err != nil {
			return errkind.New(errkind.ResourceUnavailable, op+".Start", err)
		}
		a.state = state
		return nil
	})

	seq.AddFunc("create sync region", func(ctx context.Context) error {
		sync, err := shmem.Create(syncRegionName, shmem.SyncBlockSize, false)
		if err != nil {
			return errkind.New(errkind.ResourceUnavailable, op+".Start", err)
		}
		a.sync = sync
		return nil
	})

	seq.AddFunc("seed board", func(ctx context.Context) error {
		*a.state.Header() = snap.Header
		copy(a.state.Cells(), snap.Cells)
		return nil
	})

	for i, path := range a.cfg.PlayerPaths {
		i, path := i, path
		seq.AddFunc(fmt.Sprintf("spawn player %d", i), func(ctx context.Context) error {
			ph, err := spawnPlayer(path, a.cfg.Width, a.cfg.Height)
			if err != nil {
				a.log.Error(fmt.Sprintf("spawn player %d (%s): %v", i, path, err))
				return errkind.New(errkind.IOFailure, op+".Start", err)
			}
			rec := &a.state.Header().Players[i]
			rec.PID = ph.pid
			rec.SetName(filepath.Base(path))
			a.players = append(a.players, ph)
			a.log.Debug(fmt.Sprintf("player %d (%s) spawned, pid=%d", i, rec.NameString(), ph.pid))
			return nil
		})
	}

	seq.AddFunc("spawn viewer", func(ctx context.Context) error {
		if a.cfg.ViewerPath == "" {
			return nil
		}
		cmd := exec.Command(a.cfg.ViewerPath)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Start(); err != nil {
			a.log.Warn(fmt.Sprintf("spawn viewer (%s): %v, continuing without one", a.cfg.ViewerPath, err))
			return nil
		}
		a.viewer = cmd
		a.viewHandshake(context.Background())
		return nil
	})

	seq.AddFunc("signal initial turn tokens", func(ctx context.Context) error {
		for i := range a.players {
			a.sync.Sync().SignalTurn(i)
		}
		return nil
	})

	if err := seq.Run(context.Background()); err != nil {
		_ = a.Shutdown()
		return err
	}

	a.log.Info(fmt.Sprintf("started %d player(s) on a %dx%d board", playerCount, a.cfg.Width, a.cfg.Height))
	return nil
}

// Shutdown closes every player pipe, reaps every spawned child (player and
// viewer), and destroys both shared regions, combining every failure along
// the way with go.uber.org/multierr. It is safe to call more than once.
func (a *Arbiter) Shutdown() error {
	var err error
	for _, p := range a.players {
		err = multierr.Append(err, p.close())
	}
	for _, p := range a.players {
		err = multierr.Append(err, p.wait())
	}
	a.players = nil

	if a.viewer != nil {
		_ = a.viewer.Process.Kill()
		err = multierr.Append(err, a.viewer.Wait())
		a.viewer = nil
	}
	if a.sync != nil {
		err = multierr.Append(err, a.sync.Destroy())
		a.sync = nil
	}
	if a.state != nil {
		err = multierr.Append(err, a.state.Destroy())
		a.state = nil
	}
	return err
}

// newSeededRand resolves a zero seed to the wall-clock time; tests pass a
// non-zero seed and get fully deterministic board seeding.
func newSeededRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
