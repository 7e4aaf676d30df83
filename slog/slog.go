// Package slog decorates contactdir services with structured logging.
package slog

import (
	"context"
	"errors"
	"log/slog"
)

// level picks Debug for successful calls and Warn for failures, except
// cancellations which are expected when a locality times out.
func level(err error) slog.Level {
	switch {
	case err == nil:
		return slog.LevelDebug
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return slog.LevelDebug
	default:
		return slog.LevelWarn
	}
}
