package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/contactdir"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the pauses between fetch attempts: three
// attempts in total, two seconds apart.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{2 * time.Second, 2 * time.Second}
}

// FetchWithRetryDelays fetches url, pausing for each of delays between
// attempts, so one attempt is made per delay plus the initial one. The
// logger, if provided, is called for each retry. Missing pages and invalid
// URLs are not retried.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 || permanent(err) {
			break
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		if logger != nil {
			logger("retry %s (attempt %d): %v", url, attempt+2, err)
		}

		timer := time.NewTimer(delays[attempt])
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	return "", lastErr
}

func permanent(err error) bool {
	switch contactdir.ErrorCode(err) {
	case contactdir.ENOTFOUND, contactdir.EINVALID:
		return true
	}
	return false
}
