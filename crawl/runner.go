package crawl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/fwojciec/contactdir"
	"golang.org/x/sync/errgroup"
)

// Runner defaults.
const (
	DefaultConcurrency     = 5
	DefaultLocalityTimeout = 60 * time.Second
)

// Runner crawls many localities concurrently, each with its own Fetcher and
// deadline, and writes the combined results when done.
type Runner struct {
	// Crawler is the template copied for every locality. Its Fetcher is
	// replaced by one from NewFetcher.
	Crawler    Crawler
	NewFetcher func(ctx context.Context) (contactdir.Fetcher, error)

	Store      contactdir.ContactStore
	Failures   contactdir.FailureLog
	Exclusions contactdir.ExclusionSet
	Logger     *slog.Logger

	Concurrency int
	Timeout     time.Duration
	// Force re-crawls localities that already have contacts in the results.
	Force bool
}

// Summary reports the outcome of a run.
type Summary struct {
	Localities int
	Contacts   int
	Skipped    int
	Failed     map[contactdir.FailureReason]int
}

// Outcome of a single locality.
type outcome struct {
	set    *contactdir.ContactSet
	reason contactdir.FailureReason
	detail string
}

// Run crawls the given localities and saves the combined results, merged
// over whatever the store already holds. Locality failures are logged and
// never abort the run; only loading or saving results can fail it.
func (r *Runner) Run(ctx context.Context, localities []*contactdir.Locality) (*Summary, error) {
	logger := r.logger()

	results, err := r.Store.LoadResults(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading results: %w", err)
	}
	if results == nil {
		results = contactdir.Results{}
	}

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	summary := &Summary{Failed: make(map[contactdir.FailureReason]int)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, loc := range localities {
		if loc == nil {
			continue
		}
		if ctx.Err() != nil {
			break
		}

		mu.Lock()
		existing := results[loc.Name]
		mu.Unlock()

		if r.Exclusions != nil && r.Exclusions.Excludes(loc.Name) {
			r.recordFailure(ctx, loc, contactdir.FailureSkip, "excluded")
			mu.Lock()
			results[loc.Name] = contactdir.NewContactSet()
			summary.Skipped++
			mu.Unlock()
			continue
		}
		if !r.Force && existing.Len() > 0 {
			logger.Info("already scraped", "locality", loc.Name, "contacts", existing.Len())
			r.recordFailure(ctx, loc, contactdir.FailureSkip, "already scraped")
			mu.Lock()
			summary.Skipped++
			mu.Unlock()
			continue
		}

		g.Go(func() error {
			out := r.crawlOne(gctx, loc)

			mu.Lock()
			defer mu.Unlock()
			summary.Localities++
			if out.reason != "" {
				summary.Failed[out.reason]++
			}
			if out.reason == contactdir.FailureTimeout || out.set == nil {
				results[loc.Name] = contactdir.NewContactSet()
				return nil
			}
			results[loc.Name] = out.set
			summary.Contacts += out.set.Len()
			return nil
		})
	}
	// Workers never return errors.
	_ = g.Wait()

	if err := r.Store.SaveResults(context.WithoutCancel(ctx), results); err != nil {
		return summary, fmt.Errorf("saving results: %w", err)
	}
	logger.Info("run finished",
		"localities", summary.Localities,
		"contacts", summary.Contacts,
		"skipped", summary.Skipped,
	)
	return summary, nil
}

// crawlOne processes a single locality and classifies its outcome.
func (r *Runner) crawlOne(ctx context.Context, loc *contactdir.Locality) (out outcome) {
	logger := r.logger().With("locality", loc.Name)
	start := time.Now()

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultLocalityTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	defer func() {
		if p := recover(); p != nil {
			logger.Error("locality panicked", "panic", p, "stack", string(debug.Stack()))
			out = outcome{reason: contactdir.FailureException, detail: fmt.Sprint(p)}
		}
		if out.reason != "" {
			r.recordFailure(context.WithoutCancel(ctx), loc, out.reason, out.detail)
		}
		logger.Info("locality done",
			"contacts", out.set.Len(),
			"reason", string(out.reason),
			"duration", time.Since(start),
		)
	}()

	crawler := r.Crawler
	if r.NewFetcher != nil {
		fetcher, err := r.NewFetcher(ctx)
		if err != nil {
			return outcome{reason: contactdir.FailureException, detail: err.Error()}
		}
		defer func() {
			if err := fetcher.Close(); err != nil {
				logger.Warn("closing fetcher", "err", err)
			}
		}()
		crawler.Fetcher = fetcher
	}
	if crawler.Logger == nil {
		crawler.Logger = r.Logger
	}

	set, err := crawler.CrawlLocality(ctx, loc)
	switch {
	case err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded):
		return outcome{set: set, reason: contactdir.FailureTimeout, detail: err.Error()}
	case err != nil:
		return outcome{set: set, reason: contactdir.FailureException, detail: err.Error()}
	case set.Len() == 0:
		return outcome{set: set, reason: contactdir.FailureEmpty}
	}
	return outcome{set: set}
}

func (r *Runner) recordFailure(ctx context.Context, loc *contactdir.Locality, reason contactdir.FailureReason, detail string) {
	if r.Failures == nil {
		return
	}
	err := r.Failures.RecordFailure(ctx, contactdir.Failure{
		Time:     time.Now().UTC(),
		Locality: loc.Name,
		URL:      loc.URL,
		Reason:   reason,
		Detail:   detail,
	})
	if err != nil {
		r.logger().Warn("failure log write failed", "locality", loc.Name, "err", err)
	}
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r.Logger
}
