package ramprice

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// PriceMarker separates the capacity from the price in shorthand notation.
const PriceMarker = CapacityMarker + "@$"

// MinShorthandLen is the shortest input ParseShorthand accepts.
const MinShorthandLen = 10

// Shorthand holds the fields of a "<count>x<size>GB@$<price> <brand>" string.
//
// A zero SizeGB is a soft miss: the string had no price marker or nothing
// after the price. Callers discard such entries.
type Shorthand struct {
	Count  int
	SizeGB int
	Price  decimal.Decimal
	Brand  string
}

// HasCapacity reports whether s carries a capacity and price. A negative
// capacity still counts; record validation rejects it.
func (s Shorthand) HasCapacity() bool {
	return s.SizeGB != 0
}

// TotalGB returns Count * SizeGB.
func (s Shorthand) TotalGB() int {
	return s.Count * s.SizeGB
}

// FormatShorthand composes the canonical notation for a listing.
func FormatShorthand(c Capacity, price, brand string) string {
	return c.String() + PriceMarker + price + " " + brand
}

// ParseShorthand splits s into count, size, price and brand.
//
// Inputs shorter than MinShorthandLen are EMALFORMED. A count or price that
// is present but not numeric is also EMALFORMED. A string with no space
// after the price, or with no price marker, yields a Shorthand with zero
// SizeGB and Price.
func ParseShorthand(s string) (Shorthand, error) {
	if len(s) < MinShorthandLen {
		return Shorthand{}, Errorf(EMALFORMED, "shorthand %q is too short", s)
	}

	marker := strings.Index(s, PriceMarker)
	space := strings.IndexByte(s, ' ')

	// The count separator only counts inside the capacity part.
	limit := len(s)
	switch {
	case marker > 0:
		limit = marker
	case space > 0:
		limit = space
	}

	out := Shorthand{Count: 1}
	sizeStart := 0
	if x := strings.IndexByte(s[:limit], 'x'); x > 0 {
		n, err := strconv.Atoi(s[:x])
		if err != nil {
			return Shorthand{}, Errorf(EMALFORMED, "shorthand %q has invalid module count", s)
		}
		out.Count = n
		sizeStart = x + 1
	} else if x == 0 {
		sizeStart = 1
	}

	if space <= 0 {
		return out, nil
	}
	out.Brand = strings.TrimSpace(s[space+1:])
	if marker <= 0 {
		return out, nil
	}

	priceStart := marker + len(PriceMarker)
	if space < priceStart {
		return Shorthand{}, Errorf(EMALFORMED, "shorthand %q has no price", s)
	}
	size, err := strconv.Atoi(s[sizeStart:marker])
	if err != nil {
		return Shorthand{}, Errorf(EMALFORMED, "shorthand %q has invalid capacity", s)
	}
	price, err := decimal.NewFromString(s[priceStart:space])
	if err != nil {
		return Shorthand{}, Errorf(EMALFORMED, "shorthand %q has invalid price", s)
	}
	out.SizeGB = size
	out.Price = price
	return out, nil
}
