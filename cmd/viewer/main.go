// Command viewer is the reference spectator binary: it maps both shared
// regions and renders the board and scoreboard to standard output every
// time the Arbiter signals master_to_view.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/garaekz/chompchamps/internal/gamelog"
	"github.com/garaekz/chompchamps/internal/shmem"
	"github.com/garaekz/chompchamps/internal/viewer"
)

const (
	stateRegionName = "/game_state"
	syncRegionName  = "/game_sync"
)

func main() {
	log := gamelog.ForComponent("viewer", gamelog.Options{})

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

	v := viewer.New(state, sync, os.Stdout)
	if err := v.Run(context.Background()); err != nil {
		log.Error(fmt.Sprintf("run: %v", err))
		os.Exit(1)
	}
}
