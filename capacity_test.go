package ramprice_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/fwojciec/ramprice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCapacity(t *testing.T) {
	t.Parallel()

	t.Run("reports not found without a capacity", func(t *testing.T) {
		t.Parallel()

		for _, text := range []string{"", "foobar", "foobarbaz", "GB", "GB GB", "gb 8gb", "Foobar DDR4 kit"} {
			_, ok := ramprice.ParseCapacity(text)
			assert.False(t, ok, "text %q", text)
		}
	})

	tests := []struct {
		text string
		want string
	}{
		{" 4GB", "4"},
		{" 4 GB", "4"},
		{"8GB", "8"},
		{"8 GB", "8"},
		{"16GB ", "16"},
		{"16 GB ", "16"},
		{"16GB (2x8GB)", "2x8"},
		{"16GB (2x 8GB)", "2x8"},
		{"16GB (2x8 GB)", "2x8"},
		{"16GB (2x 8 GB)", "2x8"},
		{"16GB (2 x8GB)", "2x8"},
		{"16GB (2 x 8GB)", "2x8"},
		{"16GB (2 x8 GB)", "2x8"},
		{"16GB (2 x 8 GB)", "2x8"},
		{"16 GB (2x8GB)", "2x8"},
		{"16 GB (2 x 8 GB)", "2x8"},
		{"(2x8GB) 16GB", "2x8"},
		{"(2x 8GB) 16GB", "2x8"},
		{"(2 x 8GB) 16GB", "2x8"},
		{"(2 x 8 GB) 16GB", "2x8"},
		{"(2x8GB) 16 GB", "2x8"},
		{"(2 x 8 GB) 16 GB", "2x8"},
		// Misleading numbers preceding the size.
		{"4 8GB", "8"},
		{"4 8 GB", "8"},
		{"4 16GB (2x8GB)", "2x8"},
		{"4 16GB (2 x 8 GB)", "2x8"},
		{"4 16 GB (2x8GB)", "2x8"},
		{"4 16 GB (2 x 8 GB)", "2x8"},
	}

	variants := func(text string) []string {
		out := []string{text, "Foobar " + text, text + " baz", "Foobar " + text + " baz"}
		if strings.Contains(text, "(") {
			out = append(out,
				strings.ReplaceAll(text, "(", "( "),
				strings.ReplaceAll(text, ")", " )"),
			)
		}
		return out
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			for _, text := range variants(tt.text) {
				c, ok := ramprice.ParseCapacity(text)
				require.True(t, ok, "text %q", text)
				assert.Equal(t, tt.want, c.String(), "text %q", text)
			}
		})
	}
}

func TestParseCapacity_Scenarios(t *testing.T) {
	t.Parallel()

	t.Run("total and module sizes resolve to a kit", func(t *testing.T) {
		t.Parallel()

		c, ok := ramprice.ParseCapacity("16GB (2 x 8GB)")
		require.True(t, ok)
		assert.Equal(t, ramprice.Capacity{Count: 2, SizeGB: 8}, c)
		assert.True(t, c.IsKit())
		assert.Equal(t, 16, c.TotalGB())
	})

	t.Run("single value", func(t *testing.T) {
		t.Parallel()

		c, ok := ramprice.ParseCapacity("4GB")
		require.True(t, ok)
		assert.Equal(t, ramprice.Capacity{SizeGB: 4}, c)
		assert.False(t, c.IsKit())
		assert.Equal(t, 4, c.TotalGB())
	})

	t.Run("equal candidates collapse to a single value", func(t *testing.T) {
		t.Parallel()

		c, ok := ramprice.ParseCapacity("8GB module, 8GB total")
		require.True(t, ok)
		assert.Equal(t, "8", c.String())
	})

	t.Run("candidates beyond the first two are ignored", func(t *testing.T) {
		t.Parallel()

		c, ok := ramprice.ParseCapacity("32GB (4 x 8GB) 64GB")
		require.True(t, ok)
		assert.Equal(t, "4x8", c.String())
	})

	t.Run("markers without digits are skipped", func(t *testing.T) {
		t.Parallel()

		c, ok := ramprice.ParseCapacity("GB series 8GB")
		require.True(t, ok)
		assert.Equal(t, "8", c.String())
	})

	t.Run("overflowing digit runs are dropped", func(t *testing.T) {
		t.Parallel()

		c, ok := ramprice.ParseCapacity("99999999999999999999999GB 16GB")
		require.True(t, ok)
		assert.Equal(t, "16", c.String())
	})

	t.Run("zero is not a capacity", func(t *testing.T) {
		t.Parallel()

		c, ok := ramprice.ParseCapacity("0GB 16GB")
		require.True(t, ok)
		assert.Equal(t, "16", c.String())
	})

	t.Run("marker is case sensitive", func(t *testing.T) {
		t.Parallel()

		c, ok := ramprice.ParseCapacity("8gb stick 16GB")
		require.True(t, ok)
		assert.Equal(t, "16", c.String())
	})

	t.Run("non-breaking space between digits and marker", func(t *testing.T) {
		t.Parallel()

		c, ok := ramprice.ParseCapacity("16 GB")
		require.True(t, ok)
		assert.Equal(t, "16", c.String())
	})

	t.Run("truncating ratio", func(t *testing.T) {
		t.Parallel()

		c, ok := ramprice.ParseCapacity("12GB 8GB")
		require.True(t, ok)
		assert.Equal(t, ramprice.Capacity{Count: 1, SizeGB: 8}, c)
		assert.Equal(t, "1x8", c.String())
	})
}

func TestParseCapacity_RatioBounds(t *testing.T) {
	t.Parallel()

	for a := 1; a <= 40; a++ {
		for b := 1; b <= 40; b++ {
			if a == b {
				continue
			}
			for _, text := range []string{
				fmt.Sprintf("%dGB %dGB", a, b),
				fmt.Sprintf("%d GB  (%d  GB)", a, b),
				fmt.Sprintf("kit\t%d\tGB / %d GB", a, b),
			} {
				c, ok := ramprice.ParseCapacity(text)
				require.True(t, ok, "text %q", text)

				hi, lo := max(a, b), min(a, b)
				assert.Equal(t, lo, c.SizeGB, "text %q", text)
				assert.LessOrEqual(t, c.Count*c.SizeGB, hi, "text %q", text)
				assert.Less(t, hi, (c.Count+1)*c.SizeGB, "text %q", text)
			}
		}
	}
}
