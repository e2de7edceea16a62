// Command player is a reference PlayerRuntime binary: it maps both shared
// regions, discovers its own board slot by PID, and runs a move-selection
// policy (greedy-with-liberties by default) until the game ends.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/garaekz/chompchamps/internal/gamelog"
	"github.com/garaekz/chompchamps/internal/playerrt"
	"github.com/garaekz/chompchamps/internal/policy"
	"github.com/garaekz/chompchamps/internal/shmem"
)

const (
	stateRegionName = "/game_state"
	syncRegionName  = "/game_sync"
)

func main() {
	// Without this, the runtime turns a write to the arbiter's closed pipe
	// into a fatal SIGPIPE instead of the EPIPE the turn loop handles.
	signal.Ignore(syscall.SIGPIPE)

	policyName := pflag.String("policy", "greedy", "move policy: greedy, random, or montecarlo")
	discoverTimeout := pflag.Duration("discover-timeout", 5*time.Second, "how long to wait to find this process's board slot")
	pflag.Parse()

	log := gamelog.ForComponent("player", gamelog.Options{})

	state, err := shmem.Open(stateRegionName, 0, false)
	if err != nil {
		log.Error(fmt.Sprintf("open state region: %v", err))
		os.Exit(1)
	}
	defer state.Close()

	hdr := state.Header()
	if err := state.ValidateStateSize(hdr.Width, hdr.Height); err != nil {
		log.Error(fmt.Sprintf("state region: %v", err))
		os.Exit(1)
	}

	sync, err := shmem.Open(syncRegionName, shmem.SyncBlockSize, false)
	if err != nil {
		log.Error(fmt.Sprintf("open sync region: %v", err))
		os.Exit(1)
	}
	defer sync.Close()

	pid := int32(os.Getpid())
	seed := int64(pid) ^ time.Now().UnixNano()
	rt := &playerrt.Runtime{
		State: state,
		Sync:  sync,
		Rng:   rand.New(rand.NewSource(seed)),
		Out:   os.Stdout,
	}

	switch *policyName {
	case "random":
		rt.Policy = policy.NewRandomValid(policy.WithRNGSeed(seed))
	case "montecarlo":
		rt.Policy = policy.NewFlatMonteCarlo(
			policy.WithRNGSeed(seed),
			policy.WithBudget(moveBudget()),
		)
	default:
		rt.Policy = policy.NewGreedyLiberties(policy.WithRNGSeed(seed))
	}

	discoverCtx, cancel := context.WithTimeout(context.Background(), *discoverTimeout)
	defer cancel()
	if err := rt.DiscoverSlot(discoverCtx, pid, 10*time.Millisecond); err != nil {
		log.Error(fmt.Sprintf("discover slot: %v", err))
		os.Exit(1)
	}

	if err := rt.Run(context.Background()); err != nil {
		log.Error(fmt.Sprintf("run: %v", err))
		os.Exit(1)
	}
}

// moveBudget resolves the per-move decision budget for time-budgeted
// policies from the PLAYER_TIME_MS environment variable.
func moveBudget() time.Duration {
	vp := viper.New()
	vp.SetDefault("player_time_ms", 120)
	if err := vp.BindEnv("player_time_ms", "PLAYER_TIME_MS"); err != nil {
		return 120 * time.Millisecond
	}
	return time.Duration(vp.GetInt("player_time_ms")) * time.Millisecond
}
