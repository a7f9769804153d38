// Package logging configures slog for the command line
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/lmittmann/tint"
	slogctx "github.com/veqryn/slog-context"
	"gitlab.com/tozd/go/errors"
)

// ErrUnknownLevel is returned for level names other than debug, info, warn and error
var ErrUnknownLevel = errors.New("unknown log level")

// Options represents logger settings
type Options struct {
	Level   string
	NoColor bool
	Writer  io.Writer // defaults to stderr
}

// ParseLevel parses a level name, empty name is info
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, errors.Errorf("%w: %q", ErrUnknownLevel, name)
}

// Setup installs a tint console logger as the default logger and returns a context carrying it
func Setup(ctx context.Context, options Options) (context.Context, error) {
	level, err := ParseLevel(options.Level)
	if err != nil {
		return ctx, err
	}
	w := options.Writer
	if w == nil {
		w = os.Stderr
	}
	handler := tint.NewHandler(w, &tint.Options{
		Level:       level,
		TimeFormat:  "2006-01-02 15:04 05.0000",
		AddSource:   level == slog.LevelDebug,
		NoColor:     options.NoColor,
		ReplaceAttr: formatErrorStacks,
	})
	logger := slog.New(slogctx.NewHandler(handler, &slogctx.HandlerOptions{}))
	slog.SetDefault(logger)
	return slogctx.NewCtx(ctx, logger), nil
}

// formatErrorStacks adds the origin of errors carrying a stack trace
func formatErrorStacks(groups []string, a slog.Attr) slog.Attr {
	if a.Key != "error" {
		return a
	}
	err, ok := a.Value.Any().(error)
	if !ok {
		return a
	}
	var terr errors.E
	if !errors.As(err, &terr) {
		return a
	}
	frame, _ := runtime.CallersFrames(terr.StackTrace()).Next()
	if frame.File == "" {
		return a
	}
	a.Value = slog.GroupValue(
		slog.String("message", err.Error()),
		slog.String("func", frame.Function),
		slog.String("file", fmt.Sprintf("%s/%s:%d", filepath.Base(filepath.Dir(frame.File)), filepath.Base(frame.File), frame.Line)),
	)
	return a
}
