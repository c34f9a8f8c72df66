package ramprice

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Minimum lengths of the text fields of a PriceRecord, after trimming.
const (
	MinModuleTypeLen = 6
	MinStoreLen      = 5
	MinBrandLen      = 3
)

// PriceRecord is a validated price observation. It is immutable once built
// by NewPriceRecord.
type PriceRecord struct {
	date        Date
	moduleType  string
	store       string
	moduleCount int
	unitSizeGB  int
	unitPrice   decimal.Decimal
	brand       string
}

// NewPriceRecord validates the fields of a price observation and returns the
// record. Text fields are trimmed, checked against their minimum length and
// lower-cased. Failures are EINVALID errors tagged with the field name.
func NewPriceRecord(date Date, moduleType, store string, moduleCount, unitSizeGB int, unitPrice decimal.Decimal, brand string) (PriceRecord, error) {
	if !date.IsValid() {
		return PriceRecord{}, FieldErrorf(EINVALID, "date", "date %s is not a calendar date", date)
	}
	moduleType, err := normalizeField("moduleType", moduleType, MinModuleTypeLen)
	if err != nil {
		return PriceRecord{}, err
	}
	store, err = normalizeField("store", store, MinStoreLen)
	if err != nil {
		return PriceRecord{}, err
	}
	if moduleCount <= 0 {
		return PriceRecord{}, FieldErrorf(EINVALID, "moduleCount", "module count must be positive, got %d", moduleCount)
	}
	if unitSizeGB <= 0 {
		return PriceRecord{}, FieldErrorf(EINVALID, "unitSizeGB", "unit size must be positive, got %d", unitSizeGB)
	}
	if moduleCount > math.MaxInt/unitSizeGB {
		return PriceRecord{}, FieldErrorf(EINVALID, "unitSizeGB", "total capacity of %dx%dGB is out of range", moduleCount, unitSizeGB)
	}
	if unitPrice.IsNegative() {
		return PriceRecord{}, FieldErrorf(EINVALID, "unitPrice", "price must not be negative, got %s", unitPrice)
	}
	brand, err = normalizeField("brand", brand, MinBrandLen)
	if err != nil {
		return PriceRecord{}, err
	}

	return PriceRecord{
		date:        date,
		moduleType:  moduleType,
		store:       store,
		moduleCount: moduleCount,
		unitSizeGB:  unitSizeGB,
		unitPrice:   unitPrice,
		brand:       brand,
	}, nil
}

func normalizeField(field, value string, minLen int) (string, error) {
	value = strings.TrimSpace(value)
	if len(value) < minLen {
		return "", FieldErrorf(EINVALID, field, "%s must be at least %d characters", field, minLen)
	}
	return strings.ToLower(value), nil
}

func (r PriceRecord) Date() Date                 { return r.date }
func (r PriceRecord) ModuleType() string         { return r.moduleType }
func (r PriceRecord) Store() string              { return r.store }
func (r PriceRecord) ModuleCount() int           { return r.moduleCount }
func (r PriceRecord) UnitSizeGB() int            { return r.unitSizeGB }
func (r PriceRecord) UnitPrice() decimal.Decimal { return r.unitPrice }
func (r PriceRecord) Brand() string              { return r.brand }

// TotalCapacityGB returns moduleCount * unitSizeGB.
func (r PriceRecord) TotalCapacityGB() int {
	return r.moduleCount * r.unitSizeGB
}

// PricePerGB returns the price divided by the total capacity.
func (r PriceRecord) PricePerGB() decimal.Decimal {
	return r.unitPrice.Div(decimal.NewFromInt(int64(r.TotalCapacityGB())))
}

// PricePerModule returns the price divided by the module count.
func (r PriceRecord) PricePerModule() decimal.Decimal {
	return r.unitPrice.Div(decimal.NewFromInt(int64(r.moduleCount)))
}

// Capacity returns the capacity token of r. A single module is rendered
// without a count.
func (r PriceRecord) Capacity() Capacity {
	if r.moduleCount == 1 {
		return Capacity{SizeGB: r.unitSizeGB}
	}
	return Capacity{Count: r.moduleCount, SizeGB: r.unitSizeGB}
}

// Shorthand renders r in canonical shorthand notation.
func (r PriceRecord) Shorthand() string {
	return FormatShorthand(r.Capacity(), r.unitPrice.String(), r.brand)
}

// String renders r for display.
func (r PriceRecord) String() string {
	return fmt.Sprintf("%dx%dGB@$%s %s for %s from %s on %s",
		r.moduleCount, r.unitSizeGB, r.unitPrice.StringFixed(2), r.brand,
		r.moduleType, r.store, r.date)
}

// RecordService represents a service for storing price records.
type RecordService interface {
	// CreateRecords stores records, ignoring any that are already stored.
	// Returns the number of records added.
	CreateRecords(ctx context.Context, records []PriceRecord) (int, error)

	// FindRecords retrieves records matching the filter, ordered by date,
	// module type, store and insertion order.
	FindRecords(ctx context.Context, filter RecordFilter) ([]PriceRecord, error)
}

// RecordFilter represents a filter for FindRecords and FilterRecords.
// Nil fields match everything. From and To are inclusive.
type RecordFilter struct {
	From       *Date   `json:"from"`
	To         *Date   `json:"to"`
	ModuleType *string `json:"moduleType"`
	Store      *string `json:"store"`
	UnitSizeGB *int    `json:"unitSizeGB"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// Match reports whether r satisfies the field conditions of f. Offset and
// Limit are ignored.
func (f RecordFilter) Match(r PriceRecord) bool {
	if f.From != nil && r.date.Before(*f.From) {
		return false
	}
	if f.To != nil && f.To.Before(r.date) {
		return false
	}
	if f.ModuleType != nil && r.moduleType != strings.ToLower(strings.TrimSpace(*f.ModuleType)) {
		return false
	}
	if f.Store != nil && r.store != strings.ToLower(strings.TrimSpace(*f.Store)) {
		return false
	}
	if f.UnitSizeGB != nil && r.unitSizeGB != *f.UnitSizeGB {
		return false
	}
	return true
}
