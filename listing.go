package ramprice

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Listing is one product found on a vendor page: its price and its
// description in shorthand notation.
type Listing struct {
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}

// Adapter extracts listings from the source of one vendor's pages.
type Adapter interface {
	// Name returns the store name the adapter extracts listings for.
	Name() string

	// Parse returns the listings in source, sorted by price. Fragments
	// without a usable capacity are skipped. A source with no recognizable
	// listings yields an empty result, not an error.
	Parse(source string) ([]Listing, error)
}

// SortListings sorts listings by ascending price. Listings with equal prices
// keep their relative order.
func SortListings(listings []Listing) {
	slices.SortStableFunc(listings, func(a, b Listing) int {
		return a.Price.Cmp(b.Price)
	})
}

// RecordsFromListings converts scraped listings into price records. Listings
// that do not parse or validate are returned as skips.
func RecordsFromListings(date Date, moduleType, store string, listings []Listing) ([]PriceRecord, []Skip) {
	var records []PriceRecord
	var skips []Skip
	path := skipPath(date, moduleType, store)
	for _, l := range listings {
		r, ok, err := recordFromShorthand(date, moduleType, store, l.Description)
		switch {
		case err != nil:
			skips = append(skips, Skip{Path: path, Entry: l.Description, Err: err})
		case !ok:
			skips = append(skips, Skip{Path: path, Entry: l.Description, Err: errNoCapacity})
		default:
			records = append(records, r)
		}
	}
	return records, skips
}
