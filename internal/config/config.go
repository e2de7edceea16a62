// Package config parses the arbiter's command line and resolves the
// PLAYER_TIME_MS environment override, using spf13/pflag for flag parsing
// and spf13/viper to bind the environment variable over it the way pack
// repo niceyeti-tabular's training config layer binds viper over a flag
// set.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/garaekz/chompchamps/internal/board"
	"github.com/garaekz/chompchamps/internal/errkind"
)

const op = "config"

// Game holds the fully resolved, validated arbiter configuration.
type Game struct {
	Width       int32
	Height      int32
	DelayMS     int
	TimeoutSec  int
	Seed        int64
	ViewerPath  string
	PlayerPaths []string
	PlayerTime  time.Duration
	LogFormat   string
	LogLevel    string
	LogFile     string
}

// Parse parses args (typically os.Args[1:]) plus the environment into a
// validated Game configuration.
func Parse(args []string) (*Game, error) {
	fs := pflag.NewFlagSet("chompchamps-master", pflag.ContinueOnError)

	width := fs.Int32P("width", "w", 10, "board width")
	height := fs.Int32P("height", "h", 10, "board height")
	delay := fs.IntP("delay", "d", 200, "pacing delay between turns, in milliseconds")
	timeout := fs.IntP("timeout", "t", 10, "idle timeout in seconds before the game is declared over")
	// 0 is the "unset" sentinel: internal/arbiter resolves it to the
	// wall-clock time at startup, so Parse itself stays deterministic and
	// testable.
	seed := fs.Int64P("seed", "s", 0, "RNG seed (default: wall-clock time)")
	viewerPath := fs.StringP("viewer", "v", "", "path to a viewer binary (optional)")
	players := fs.StringArrayP("player", "p", nil, "path to a player binary (repeatable, 1..9)")
	logFormat := fs.String("log-format", "badge", "arbiter log format: badge or json")
	logLevel := fs.String("log-level", "info", "arbiter log level")

	if err := fs.Parse(args); err != nil {
		return nil, errkind.New(errkind.InvalidArgument, op+".Parse", err)
	}

	playerPaths := append([]string{}, *players...)
	playerPaths = append(playerPaths, fs.Args()...)

	vp := viper.New()
	vp.SetDefault("player_time_ms", 120)
	vp.SetDefault("game_log_file", "")
	if err := vp.BindEnv("player_time_ms", "PLAYER_TIME_MS"); err != nil {
		return nil, errkind.New(errkind.InvalidArgument, op+".Parse", err)
	}
	if err := vp.BindEnv("game_log_file", "GAME_LOG_FILE"); err != nil {
		return nil, errkind.New(errkind.InvalidArgument, op+".Parse", err)
	}
	playerTimeMS := vp.GetInt("player_time_ms")

	cfg := &Game{
		Width:       *width,
		Height:      *height,
		DelayMS:     *delay,
		TimeoutSec:  *timeout,
		Seed:        *seed,
		ViewerPath:  *viewerPath,
		PlayerPaths: playerPaths,
		PlayerTime:  time.Duration(playerTimeMS) * time.Millisecond,
		LogFormat:   *logFormat,
		LogLevel:    *logLevel,
		LogFile:     vp.GetString("game_log_file"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (g *Game) validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return errkind.New(errkind.InvalidArgument, op+".validate", fmt.Errorf("width and height must be positive, got %dx%d", g.Width, g.Height))
	}
	if len(g.PlayerPaths) < 1 || len(g.PlayerPaths) > board.MaxPlayers {
		return errkind.New(errkind.InvalidArgument, op+".validate", fmt.Errorf("player_count must be between 1 and %d, got %d", board.MaxPlayers, len(g.PlayerPaths)))
	}
	if g.DelayMS < 0 {
		return errkind.New(errkind.InvalidArgument, op+".validate", fmt.Errorf("delay_ms must be non-negative, got %d", g.DelayMS))
	}
	if g.TimeoutSec <= 0 {
		return errkind.New(errkind.InvalidArgument, op+".validate", fmt.Errorf("timeout_sec must be positive, got %d", g.TimeoutSec))
	}
	return nil
}
