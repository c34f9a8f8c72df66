// Package newegg extracts listings from Newegg RSS feeds.
//
// Feed item titles have the form "&#36;<price> - <brand> <description>".
// The feed is scanned for title tags directly rather than parsed as XML.
package newegg

import (
	"strings"
	"unicode"

	"github.com/fwojciec/ramprice"
	"github.com/shopspring/decimal"
)

// StoreName is the store the adapter reports listings for.
const StoreName = "newegg"

const (
	titleOpen      = "<title>"
	titleClose     = "</title>"
	dollarEntity   = "&#36;"
	priceSeparator = " - "
)

var _ ramprice.Adapter = (*Adapter)(nil)

// Adapter parses Newegg feeds.
type Adapter struct{}

// NewAdapter creates a new Adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Name returns StoreName.
func (a *Adapter) Name() string {
	return StoreName
}

// Parse returns the listings in the feed source, sorted by price. Titles that
// do not start with a price are skipped; an unterminated title ends the scan.
func (a *Adapter) Parse(source string) ([]ramprice.Listing, error) {
	listings := []ramprice.Listing{}
	for _, title := range titles(source) {
		if l, ok := listingFromTitle(title); ok {
			listings = append(listings, l)
		}
	}
	ramprice.SortListings(listings)
	return listings, nil
}

// titles returns the trimmed text of every complete title tag in source.
func titles(source string) []string {
	var out []string
	for offset := 0; ; {
		i := strings.Index(source[offset:], titleOpen)
		if i < 0 {
			break
		}
		start := offset + i + len(titleOpen)
		j := strings.Index(source[start:], titleClose)
		if j < 0 {
			break
		}
		out = append(out, strings.TrimSpace(source[start:start+j]))
		offset = start + j + len(titleClose)
	}
	return out
}

func listingFromTitle(title string) (ramprice.Listing, bool) {
	title, ok := strings.CutPrefix(title, dollarEntity)
	if !ok {
		return ramprice.Listing{}, false
	}

	capacity, ok := ramprice.ParseCapacity(title)
	if !ok {
		return ramprice.Listing{}, false
	}

	rawPrice, rest, ok := strings.Cut(title, priceSeparator)
	if !ok {
		return ramprice.Listing{}, false
	}
	priceText := strings.ReplaceAll(strings.TrimSpace(rawPrice), ",", "")
	price, err := decimal.NewFromString(priceText)
	if err != nil {
		return ramprice.Listing{}, false
	}

	brand := rest
	if end := strings.IndexFunc(rest, unicode.IsSpace); end >= 0 {
		brand = rest[:end]
	}
	if brand == "" {
		return ramprice.Listing{}, false
	}

	return ramprice.Listing{
		Price:       price,
		Description: ramprice.FormatShorthand(capacity, priceText, brand),
	}, true
}
