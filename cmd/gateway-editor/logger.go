// ABOUTME: slog setup for gateway-editor, text with colored levels or JSON
// ABOUTME: Log output goes to stderr so command output stays clean on stdout

package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"

	"github.com/2389/gateway-editor/internal/config"
)

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	return slog.New(newLogHandler(os.Stderr, cfg))
}

func newLogHandler(w io.Writer, cfg config.LoggingConfig) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if cfg.Format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	opts.ReplaceAttr = shortenTextAttr
	return slog.NewTextHandler(w, opts)
}

// parseLevel maps a config level name to a slog level. Unknown names warn.
func parseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelWarn
	}
	return level
}

var levelColors = map[slog.Level]*color.Color{
	slog.LevelDebug: color.New(color.FgMagenta),
	slog.LevelInfo:  color.New(color.FgCyan),
	slog.LevelWarn:  color.New(color.FgYellow),
	slog.LevelError: color.New(color.FgRed, color.Bold),
}

// shortenTextAttr drops the timestamp, which a one-shot command does not
// need, and colors the level when the terminal allows it.
func shortenTextAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.TimeKey:
		return slog.Attr{}
	case slog.LevelKey:
		level, ok := a.Value.Any().(slog.Level)
		if !ok {
			return a
		}
		if c, ok := levelColors[level]; ok {
			return slog.String(slog.LevelKey, c.Sprint(level.String()))
		}
	}
	return a
}
