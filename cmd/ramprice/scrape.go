package main

import (
	"fmt"

	"github.com/fwojciec/ramprice"
	"github.com/fwojciec/ramprice/scrape"
	"github.com/fwojciec/ramprice/yaml"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	adapter, ok := deps.Adapters[c.Store]
	if !ok {
		err := ramprice.Errorf(ramprice.EINVALID, "unknown store %q", c.Store)
		fmt.Fprintf(deps.Stderr, "error: %s\n", ramprice.ErrorMessage(err))
		return err
	}

	date := deps.today()
	if c.Date != "" {
		d, err := ramprice.ParseDate(c.Date)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", ramprice.ErrorMessage(err))
			return err
		}
		date = d
	}

	store := c.Name
	if store == "" {
		store = adapter.Name()
	}

	progress := func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressStarted:
			fmt.Fprintf(deps.Stderr, "Scraping %d pages from %s\n", event.Total, store)
		case scrape.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] skip %s: %v\n", event.Completed, event.Total, event.URL, event.Error)
		case scrape.ProgressCompleted:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] %s: %d listings\n", event.Completed, event.Total, event.URL, event.Listings)
		}
	}

	result, err := deps.Scraper.Scrape(deps.Ctx, adapter, c.URLs, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error scraping: %v\n", err)
		return err
	}

	if len(result.Listings) == 0 {
		fmt.Fprintf(deps.Stdout, "No listings found.\n")
	} else {
		t := newTable(deps.Stdout)
		t.AppendHeader(table.Row{"Price", "Listing"})
		for _, l := range result.Listings {
			t.AppendRow(table.Row{"$" + l.Price.StringFixed(2), l.Description})
		}
		t.AppendFooter(table.Row{"", fmt.Sprintf("%d listings", len(result.Listings))})
		t.Render()
	}
	if result.Failed > 0 || result.Duplicates > 0 {
		fmt.Fprintf(deps.Stderr, "%d pages failed, %d duplicates\n", result.Failed, result.Duplicates)
	}

	if c.History != "" && len(result.Listings) > 0 {
		h := make(ramprice.History)
		for _, l := range result.Listings {
			h.Add(date, c.Type, store, l.Description)
		}
		if err := yaml.AppendFile(c.History, h); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "Appended %d listings to %s\n", len(result.Listings), c.History)
	}

	if c.Save {
		records, skips := ramprice.RecordsFromListings(date, c.Type, store, result.Listings)
		logSkips(deps, skips)
		added, err := deps.Records.CreateRecords(deps.Ctx, records)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", ramprice.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Saved %d new records (%d already stored)\n", added, len(records)-added)
	}

	return nil
}
