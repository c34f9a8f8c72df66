// Package scrape fetches vendor pages concurrently and extracts listings
// from them with a ramprice.Adapter.
package scrape

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/fwojciec/ramprice"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages fetched at once when
// Scraper.Concurrency is not set.
const DefaultConcurrency = 4

// Scraper fetches pages and extracts their listings. A failed page never
// aborts the batch.
type Scraper struct {
	Fetcher     ramprice.Fetcher
	RateLimiter ramprice.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration
}

// Page is the outcome for one fetched URL.
type Page struct {
	URL      string
	Attempts int
	Hash     uint64
	Listings int
	// DuplicateOf is set when the body matched an earlier page.
	DuplicateOf string
	Err         error
}

// Result holds the outcome of a scrape.
type Result struct {
	// Listings from every page, sorted by price. Listings with equal prices
	// keep page order.
	Listings   []ramprice.Listing
	Pages      []Page
	Failed     int
	Duplicates int
}

// ProgressEvent reports progress during a scrape.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Listings  int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

type pageResult struct {
	position int
	page     Page
	listings []ramprice.Listing
}

// Scrape fetches urls and parses each page with adapter. Repeated URLs are
// fetched once and pages whose body repeats an earlier page contribute no
// listings; both count as duplicates. The progress callback, if provided,
// is called from the calling goroutine.
func (s *Scraper) Scrape(ctx context.Context, adapter ramprice.Adapter, urls []string, progress ProgressFunc) (*Result, error) {
	if adapter == nil {
		return nil, ramprice.Errorf(ramprice.EINVALID, "adapter required")
	}
	if s.Fetcher == nil {
		return nil, ramprice.Errorf(ramprice.EINVALID, "fetcher required")
	}

	seen := newSeenSet(len(urls))
	result := &Result{}
	var unique []string
	for _, u := range urls {
		if seen.addURL(u) {
			unique = append(unique, u)
		} else {
			result.Duplicates++
		}
	}

	total := len(unique)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan pageResult, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range unique {
			g.Go(func() error {
				resultCh <- s.scrapePage(gctx, adapter, i, u)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect in completion order, then merge in input order.
	pages := make([]pageResult, total)
	completed := 0
	for r := range resultCh {
		completed++
		pages[r.position] = r

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: completed,
			Total:     total,
			URL:       r.page.URL,
			Listings:  r.page.Listings,
		}
		if r.page.Err != nil {
			event.Type = ProgressFailed
			event.Error = r.page.Err
		}
		progress(event)
	}

	for _, r := range pages {
		page := r.page
		if page.Err != nil {
			result.Failed++
			result.Pages = append(result.Pages, page)
			continue
		}
		if first, dup := seen.addBody(page.URL, page.Hash); dup {
			page.DuplicateOf = first
			page.Listings = 0
			result.Duplicates++
			result.Pages = append(result.Pages, page)
			continue
		}
		result.Listings = append(result.Listings, r.listings...)
		result.Pages = append(result.Pages, page)
	}
	ramprice.SortListings(result.Listings)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// scrapePage waits for the page's domain, fetches it with retry and parses
// it.
func (s *Scraper) scrapePage(ctx context.Context, adapter ramprice.Adapter, position int, rawURL string) pageResult {
	r := pageResult{position: position, page: Page{URL: rawURL}}

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		r.page.Err = ramprice.Errorf(ramprice.EINVALID, "invalid URL %q", rawURL)
		return r
	}

	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, u.Host); err != nil {
			r.page.Err = err
			return r
		}
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	source, attempts, err := fetchWithRetry(ctx, rawURL, s.Fetcher.Fetch, delays)
	r.page.Attempts = attempts
	if err != nil {
		r.page.Err = fmt.Errorf("fetch %s: %w", rawURL, err)
		return r
	}

	listings, err := adapter.Parse(source)
	if err != nil {
		r.page.Err = fmt.Errorf("parse %s: %w", rawURL, err)
		return r
	}

	r.page.Hash = pageHash(source)
	r.page.Listings = len(listings)
	r.listings = listings
	return r
}
