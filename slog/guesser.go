package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/contactdir"
)

var (
	_ contactdir.NameGuesser       = (*LoggingGuesser)(nil)
	_ contactdir.DepartmentGuesser = (*LoggingGuesser)(nil)
)

// Guesser is the pair of language-model lookups the extractor consults.
type Guesser interface {
	contactdir.NameGuesser
	contactdir.DepartmentGuesser
}

// LoggingGuesser wraps a Guesser with logging. A miss (ENOTFOUND) is an
// ordinary answer and is logged at debug level.
type LoggingGuesser struct {
	next   Guesser
	logger *slog.Logger
}

// NewLoggingGuesser creates a new LoggingGuesser.
func NewLoggingGuesser(next Guesser, logger *slog.Logger) *LoggingGuesser {
	return &LoggingGuesser{next: next, logger: logger}
}

// Available delegates to the wrapped guesser.
func (g *LoggingGuesser) Available() bool {
	return g.next.Available()
}

// GuessName delegates to the wrapped guesser and logs the answer.
func (g *LoggingGuesser) GuessName(ctx context.Context, text string) (name string, err error) {
	defer func(begin time.Time) {
		g.log(ctx, "name guess", err, "input", text, "output", name, "duration", time.Since(begin))
	}(time.Now())
	return g.next.GuessName(ctx, text)
}

// GuessDepartment delegates to the wrapped guesser and logs the answer.
func (g *LoggingGuesser) GuessDepartment(ctx context.Context, text, url string) (dept string, err error) {
	defer func(begin time.Time) {
		g.log(ctx, "department guess", err, "url", url, "output", dept, "duration", time.Since(begin))
	}(time.Now())
	return g.next.GuessDepartment(ctx, text, url)
}

func (g *LoggingGuesser) log(ctx context.Context, msg string, err error, args ...any) {
	lvl := level(err)
	if contactdir.ErrorCode(err) == contactdir.ENOTFOUND {
		lvl = slog.LevelDebug
	}
	g.logger.Log(ctx, lvl, msg, append(args, "err", err)...)
}
