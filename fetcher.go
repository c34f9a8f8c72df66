package ramprice

import "context"

// Fetcher retrieves the source of vendor pages.
type Fetcher interface {
	// Fetch returns the decoded body of the page at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (source string, err error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
