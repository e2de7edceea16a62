// Command master is the Arbiter entrypoint: it parses the CLI, spawns the
// configured players (and optional viewer), runs the event-driven
// scheduler to completion, and reports the final standings.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/garaekz/chompchamps/internal/arbiter"
	"github.com/garaekz/chompchamps/internal/config"
	"github.com/garaekz/chompchamps/internal/gamelog"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "chompchamps-master:", err)
		os.Exit(2)
	}

	log := gamelog.ForComponent("arbiter", gamelog.Options{
		JSON:    cfg.LogFormat == "json",
		Level:   cfg.LogLevel,
		LogFile: cfg.LogFile,
	})

	a := arbiter.New(cfg, log)
	if err := a.Start(); err != nil {
		log.Error(fmt.Sprintf("start: %v", err))
		os.Exit(1)
	}

	result, err := a.Run(context.Background())
	if err != nil {
		log.Error(fmt.Sprintf("run: %v", err))
		os.Exit(1)
	}

	for _, s := range result.Standings {
		fmt.Printf("player %d (%s): score=%d %s\n", s.Index, s.Name, s.Score, s.ExitStatus)
	}

	if result.Tie {
		fmt.Println("result: tie")
	} else {
		fmt.Printf("result: player %d (%s) wins with score %d\n", result.Winner.Index, result.Winner.Name, result.Winner.Score)
	}
}
