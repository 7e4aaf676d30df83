package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/contactdir"
)

// Ensure LoggingContactStore implements contactdir.ContactStore.
var _ contactdir.ContactStore = (*LoggingContactStore)(nil)

// LoggingContactStore wraps a ContactStore with logging.
type LoggingContactStore struct {
	next   contactdir.ContactStore
	logger *slog.Logger
}

// NewLoggingContactStore creates a new LoggingContactStore.
func NewLoggingContactStore(next contactdir.ContactStore, logger *slog.Logger) *LoggingContactStore {
	return &LoggingContactStore{next: next, logger: logger}
}

// SaveLocality delegates to the wrapped store.
func (s *LoggingContactStore) SaveLocality(ctx context.Context, locality string, set *contactdir.ContactSet) (err error) {
	defer func(begin time.Time) {
		s.logger.Log(ctx, level(err), "save locality",
			"locality", locality,
			"contacts", set.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveLocality(ctx, locality, set)
}

// LoadResults delegates to the wrapped store.
func (s *LoggingContactStore) LoadResults(ctx context.Context) (results contactdir.Results, err error) {
	defer func(begin time.Time) {
		s.logger.Info("load results",
			"localities", len(results),
			"contacts", results.Total(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.LoadResults(ctx)
}

// SaveResults delegates to the wrapped store.
func (s *LoggingContactStore) SaveResults(ctx context.Context, results contactdir.Results) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save results",
			"localities", len(results),
			"contacts", results.Total(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveResults(ctx, results)
}
