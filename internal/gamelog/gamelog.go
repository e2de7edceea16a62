// Package gamelog is a thin adapter over the logx package that constrains
// game diagnostics to stderr. Stdout is reserved for the one-byte player
// move protocol, so nothing in the arbiter, player runtime, or viewer may
// ever write a log line there.
package gamelog

import (
	"os"

	"github.com/garaekz/chompchamps/internal/share"
	"github.com/garaekz/chompchamps/logx"
)

// Options configures a game logger. It mirrors the subset of config.Game
// that governs logging, so callers don't need to import internal/config.
type Options struct {
	JSON    bool   // true selects share.FormatJSON, false share.FormatBadge
	Level   string // "trace".."panic"; unrecognised values fall back to info
	LogFile string // optional secondary file writer, empty disables it
}

func parseLevel(s string) share.Level {
	switch s {
	case "trace":
		return share.LevelTrace
	case "debug":
		return share.LevelDebug
	case "success":
		return share.LevelSuccess
	case "warn", "warning":
		return share.LevelWarn
	case "error":
		return share.LevelError
	case "fatal":
		return share.LevelFatal
	case "panic":
		return share.LevelPanic
	default:
		return share.LevelInfo
	}
}

// New builds a logger writing structured entries to stderr (plus LogFile,
// if set). It does not use component; ForComponent attaches it as a field. Badge format suits a human
// watching a terminal; JSON suits the arbiter when its output is piped into
// another tool.
func New(component string, opts Options) *logx.Logger {
	lopts := logx.DefaultOptions()
	lopts.Output = os.Stderr
	lopts.BadgeWidth = 8
	lopts.Level = parseLevel(opts.Level)
	lopts.LogFile = opts.LogFile
	if opts.JSON {
		lopts.Format = share.FormatJSON
	} else {
		lopts.Format = share.FormatBadge
	}
	return logx.New(lopts)
}

// ForComponent returns a logger whose entries all carry a "component"
// field, so arbiter/player/viewer logs interleaved on one terminal can be
// told apart.
func ForComponent(component string, opts Options) *logx.Context {
	return New(component, opts).WithFields(share.Fields{"component": component})
}
