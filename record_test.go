package ramprice_test

import (
	"math"
	"testing"
	"time"

	"github.com/fwojciec/ramprice"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = ramprice.Date{Year: 2020, Month: time.January, Day: 5}

func ptr[T any](v T) *T { return &v }

func mustRecord(t *testing.T, date ramprice.Date, moduleType, store string, count, size int, price, brand string) ramprice.PriceRecord {
	t.Helper()
	r, err := ramprice.NewPriceRecord(date, moduleType, store, count, size, decimal.RequireFromString(price), brand)
	require.NoError(t, err)
	return r
}

func TestNewPriceRecord(t *testing.T) {
	t.Parallel()

	t.Run("normalizes text fields", func(t *testing.T) {
		t.Parallel()

		r, err := ramprice.NewPriceRecord(testDate, " Desktop ", "Micro Center", 2, 8, decimal.RequireFromString("28.99"), " Foobar ")
		require.NoError(t, err)
		assert.Equal(t, testDate, r.Date())
		assert.Equal(t, "desktop", r.ModuleType())
		assert.Equal(t, "micro center", r.Store())
		assert.Equal(t, 2, r.ModuleCount())
		assert.Equal(t, 8, r.UnitSizeGB())
		assert.Equal(t, "28.99", r.UnitPrice().String())
		assert.Equal(t, "foobar", r.Brand())
		assert.Equal(t, 16, r.TotalCapacityGB())
	})

	t.Run("accepts a zero price", func(t *testing.T) {
		t.Parallel()

		_, err := ramprice.NewPriceRecord(testDate, "desktop", "store", 1, 2, decimal.Decimal{}, "brand")
		require.NoError(t, err)
	})

	tests := []struct {
		name       string
		date       ramprice.Date
		moduleType string
		store      string
		count      int
		size       int
		price      string
		brand      string
		field      string
	}{
		{"invalid date", ramprice.Date{Year: 2021, Month: time.February, Day: 30}, "desktop", "store", 1, 2, "1", "brand", "date"},
		{"zero date", ramprice.Date{}, "desktop", "store", 1, 2, "1", "brand", "date"},
		{"short module type", testDate, "dimm", "store", 1, 2, "1", "brand", "moduleType"},
		{"padded short module type", testDate, "  dimm   ", "store", 1, 2, "1", "brand", "moduleType"},
		{"short store", testDate, "desktop", "shop", 1, 2, "1", "brand", "store"},
		{"empty store", testDate, "desktop", "", 1, 2, "1", "brand", "store"},
		{"zero count", testDate, "laptop", "store", 0, 2, "1", "brand", "moduleCount"},
		{"negative count", testDate, "laptop", "store", -1, 2, "1", "brand", "moduleCount"},
		{"zero size", testDate, "laptop", "store", 1, 0, "1", "brand", "unitSizeGB"},
		{"negative size", testDate, "laptop", "store", 1, -1, "1", "brand", "unitSizeGB"},
		{"capacity overflow", testDate, "laptop", "store", math.MaxInt/2 + 1, 2, "1", "brand", "unitSizeGB"},
		{"capacity overflow at max size", testDate, "laptop", "store", 2, math.MaxInt, "1", "brand", "unitSizeGB"},
		{"negative price", testDate, "laptop", "store", 1, 2, "-0.01", "brand", "unitPrice"},
		{"short brand", testDate, "laptop", "store", 1, 2, "1", "ab", "brand"},
		{"blank brand", testDate, "laptop", "store", 1, 2, "1", "     ", "brand"},
		// The first failing field in order wins.
		{"several failures", testDate, "dimm", "shop", 0, 0, "1", "", "moduleType"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ramprice.NewPriceRecord(tt.date, tt.moduleType, tt.store, tt.count, tt.size, decimal.RequireFromString(tt.price), tt.brand)
			require.Error(t, err)
			assert.Equal(t, ramprice.EINVALID, ramprice.ErrorCode(err))
			assert.Equal(t, tt.field, ramprice.ErrorField(err))
		})
	}
}

func TestPriceRecord_Derived(t *testing.T) {
	t.Parallel()

	r := mustRecord(t, testDate, "desktop", "micro center", 2, 8, "28.99", "Foobar")

	assert.Equal(t, "2x8GB@$28.99 foobar for desktop from micro center on 2020-01-05", r.String())
	assert.Equal(t, "2x8GB@$28.99 foobar", r.Shorthand())
	assert.Equal(t, ramprice.Capacity{Count: 2, SizeGB: 8}, r.Capacity())
	assert.True(t, decimal.RequireFromString("14.495").Equal(r.PricePerModule()))
	assert.Equal(t, "1.81", r.PricePerGB().StringFixed(2))

	single := mustRecord(t, testDate, "desktop", "micro center", 1, 16, "64", "Foobar")
	assert.Equal(t, "16GB@$64 foobar", single.Shorthand())
	assert.Equal(t, "1x16GB@$64.00 foobar for desktop from micro center on 2020-01-05", single.String())
}

func TestRecordFilter_Match(t *testing.T) {
	t.Parallel()

	r := mustRecord(t, testDate, "desktop", "micro center", 2, 8, "28.99", "Foobar")
	before := ramprice.Date{Year: 2020, Month: time.January, Day: 4}
	after := ramprice.Date{Year: 2020, Month: time.January, Day: 6}

	assert.True(t, ramprice.RecordFilter{}.Match(r))
	assert.True(t, ramprice.RecordFilter{From: &testDate, To: &testDate}.Match(r))
	assert.True(t, ramprice.RecordFilter{From: &before, To: &after}.Match(r))
	assert.False(t, ramprice.RecordFilter{From: &after}.Match(r))
	assert.False(t, ramprice.RecordFilter{To: &before}.Match(r))
	assert.True(t, ramprice.RecordFilter{ModuleType: ptr("Desktop")}.Match(r))
	assert.False(t, ramprice.RecordFilter{ModuleType: ptr("laptop")}.Match(r))
	assert.True(t, ramprice.RecordFilter{Store: ptr(" Micro Center")}.Match(r))
	assert.False(t, ramprice.RecordFilter{Store: ptr("newegg")}.Match(r))
	assert.True(t, ramprice.RecordFilter{UnitSizeGB: ptr(8)}.Match(r))
	assert.False(t, ramprice.RecordFilter{UnitSizeGB: ptr(16)}.Match(r))
}
