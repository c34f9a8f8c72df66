package scrape

import (
	"context"
	"time"
)

// DefaultRetryDelays returns the backoff delays between fetch attempts.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// fetchFunc is the signature of ramprice.Fetcher.Fetch.
type fetchFunc func(ctx context.Context, url string) (string, error)

// fetchWithRetry calls fetch until it succeeds, making one attempt more
// than there are delays. It returns the last error when every attempt
// fails, or the context error when ctx ends while waiting.
func fetchWithRetry(ctx context.Context, url string, fetch fetchFunc, delays []time.Duration) (string, int, error) {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(delays[attempt-1])
			select {
			case <-ctx.Done():
				timer.Stop()
				return "", attempt, ctx.Err()
			case <-timer.C:
			}
		}

		source, err := fetch(ctx, url)
		if err == nil {
			return source, attempt + 1, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", attempt + 1, ctx.Err()
		}
	}
	return "", len(delays) + 1, lastErr
}
