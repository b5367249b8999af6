package main

import (
	"io"
	"log/slog"

	"github.com/lmittmann/tint"
	slogmulti "github.com/samber/slog-multi"
	"github.com/tartampluch/go-birthday-card/internal/config"
)

// newLogHandler fans records out to a colored console handler and a JSON file
// handler. A nil writer skips that output.
func newLogHandler(console, file io.Writer, level slog.Level, addSource bool) slog.Handler {
	var handlers []slog.Handler
	if console != nil {
		handlers = append(handlers, tint.NewHandler(console, &tint.Options{
			Level:      level,
			TimeFormat: config.LogConsoleTimeFormat,
			AddSource:  addSource,
		}))
	}
	if file != nil {
		handlers = append(handlers, slog.NewJSONHandler(file, &slog.HandlerOptions{
			Level:     level,
			AddSource: addSource,
		}))
	}
	return slogmulti.Fanout(handlers...)
}
