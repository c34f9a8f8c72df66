package ramprice

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// History is the typed form of a price history document: date, then module
// type, then store, then shorthand entries in recorded order.
type History map[Date]map[string]map[string][]string

// Add appends entries under date, module type and store.
func (h History) Add(date Date, moduleType, store string, entries ...string) {
	types, ok := h[date]
	if !ok {
		types = make(map[string]map[string][]string)
		h[date] = types
	}
	stores, ok := types[moduleType]
	if !ok {
		stores = make(map[string][]string)
		types[moduleType] = stores
	}
	stores[store] = append(stores[store], entries...)
}

// Merge appends every entry of other to h.
func (h History) Merge(other History) {
	for date, types := range other {
		for moduleType, stores := range types {
			for store, entries := range stores {
				h.Add(date, moduleType, store, entries...)
			}
		}
	}
}

// Dates returns the dates in h in ascending order.
func (h History) Dates() []Date {
	dates := make([]Date, 0, len(h))
	for d := range h {
		dates = append(dates, d)
	}
	sortDates(dates)
	return dates
}

func sortDates(dates []Date) {
	slices.SortFunc(dates, Date.Compare)
}

// Skip describes an entry or branch left out of a batch.
type Skip struct {
	// Path locates the skipped branch, e.g. "2020-01-05/desktop/micro center".
	Path  string
	Entry string
	Err   error
}

func (s Skip) String() string {
	if s.Entry == "" {
		return fmt.Sprintf("%s: %v", s.Path, s.Err)
	}
	return fmt.Sprintf("%s: %q: %v", s.Path, s.Entry, s.Err)
}

// skipPath locates a store branch of a history, e.g.
// "2020-01-05/desktop/micro center".
func skipPath(date Date, moduleType, store string) string {
	return strings.Join([]string{date.String(), moduleType, store}, "/")
}

var errNoCapacity = Errorf(EMALFORMED, "entry has no capacity or price")

// LoadHistory builds price records from every entry of h. Entries without a
// capacity, malformed entries and entries that fail validation are skipped
// and reported; they never stop the batch.
//
// Records are ordered by date, module type, store and entry order.
func LoadHistory(h History) ([]PriceRecord, []Skip) {
	var records []PriceRecord
	var skips []Skip
	for _, date := range h.Dates() {
		types := h[date]
		for _, moduleType := range slices.Sorted(maps.Keys(types)) {
			stores := types[moduleType]
			for _, store := range slices.Sorted(maps.Keys(stores)) {
				path := skipPath(date, moduleType, store)
				for _, entry := range stores[store] {
					r, ok, err := recordFromShorthand(date, moduleType, store, entry)
					switch {
					case err != nil:
						skips = append(skips, Skip{Path: path, Entry: entry, Err: err})
					case !ok:
						skips = append(skips, Skip{Path: path, Entry: entry, Err: errNoCapacity})
					default:
						records = append(records, r)
					}
				}
			}
		}
	}
	return records, skips
}

// recordFromShorthand parses entry and validates the resulting record. It
// reports false without an error on a soft miss.
func recordFromShorthand(date Date, moduleType, store, entry string) (PriceRecord, bool, error) {
	sh, err := ParseShorthand(entry)
	if err != nil {
		return PriceRecord{}, false, err
	}
	if !sh.HasCapacity() {
		return PriceRecord{}, false, nil
	}
	r, err := NewPriceRecord(date, moduleType, store, sh.Count, sh.SizeGB, sh.Price, sh.Brand)
	if err != nil {
		return PriceRecord{}, false, err
	}
	return r, true, nil
}
