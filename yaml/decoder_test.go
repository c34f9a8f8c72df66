package yaml_test

import (
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/ramprice"
	"github.com/fwojciec/ramprice/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	jan5 = ramprice.Date{Year: 2020, Month: time.January, Day: 5}
	jan6 = ramprice.Date{Year: 2020, Month: time.January, Day: 6}
)

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("reads nested documents", func(t *testing.T) {
		t.Parallel()

		h, skips, err := yaml.Decode(strings.NewReader(`
2020-01-05:
  desktop:
    micro center:
      - 4GB@$14.99 Foobar
      - 2x4GB@$24.99 Foobar
    newegg:
      - 8GB@$18.99 Foobar
  laptop:
    newegg:
      - 2x4GB@$24.99 Foo
`))
		require.NoError(t, err)
		assert.Empty(t, skips)
		assert.Equal(t, []string{"4GB@$14.99 Foobar", "2x4GB@$24.99 Foobar"}, h[jan5]["desktop"]["micro center"])
		assert.Equal(t, []string{"8GB@$18.99 Foobar"}, h[jan5]["desktop"]["newegg"])
		assert.Equal(t, []string{"2x4GB@$24.99 Foo"}, h[jan5]["laptop"]["newegg"])
	})

	t.Run("merges documents", func(t *testing.T) {
		t.Parallel()

		h, skips, err := yaml.Decode(strings.NewReader(`2020-01-05:
  desktop:
    newegg:
      - 8GB@$18.99 Foobar
---
2020-01-05:
  desktop:
    newegg:
      - 8GB@$17.99 Foobar
2020-01-06:
  desktop:
    newegg:
      - 8GB@$16.99 Foobar
`))
		require.NoError(t, err)
		assert.Empty(t, skips)
		assert.Equal(t, []string{"8GB@$18.99 Foobar", "8GB@$17.99 Foobar"}, h[jan5]["desktop"]["newegg"])
		assert.Equal(t, []ramprice.Date{jan5, jan6}, h.Dates())
	})

	t.Run("empty input and empty documents", func(t *testing.T) {
		t.Parallel()

		for _, src := range []string{"", "---\n", "---\n---\n"} {
			h, skips, err := yaml.Decode(strings.NewReader(src))
			require.NoError(t, err, "source %q", src)
			assert.Empty(t, h)
			assert.Empty(t, skips)
		}
	})

	t.Run("skips documents that are not mappings", func(t *testing.T) {
		t.Parallel()

		for _, src := range []string{"42", "foo", "[]", "- 2020-01-05"} {
			h, skips, err := yaml.Decode(strings.NewReader(src))
			require.NoError(t, err, "source %q", src)
			assert.Empty(t, h)
			assert.Len(t, skips, 1, "source %q", src)
		}
	})

	t.Run("skips branches of the wrong shape", func(t *testing.T) {
		t.Parallel()

		h, skips, err := yaml.Decode(strings.NewReader(`foo: bar
"2020-01-04":
  desktop:
    newegg:
      - 8GB@$18.99 Quoted
2020-01-05:
  desktop: not a mapping
  laptop:
    newegg: not a list
    123:
      - 8GB@$18.99 Numeric store
    micro center:
      - 4GB@$14.99 Foobar
      - 42
      - [nested]
      - 8GB@$18.99 Foobar
2020-01-06: []
`))
		require.NoError(t, err)
		assert.Equal(t, []string{"4GB@$14.99 Foobar", "8GB@$18.99 Foobar"}, h[jan5]["laptop"]["micro center"])
		assert.Len(t, h, 1)

		var paths []string
		for _, s := range skips {
			paths = append(paths, s.Path)
			assert.Equal(t, ramprice.EMALFORMED, ramprice.ErrorCode(s.Err))
		}
		assert.Equal(t, []string{
			"foo",
			"2020-01-04",
			"2020-01-05/desktop",
			"2020-01-05/laptop/newegg",
			"2020-01-05/laptop",
			"2020-01-05/laptop/micro center",
			"2020-01-05/laptop/micro center",
			"2020-01-06",
		}, paths)
		assert.Equal(t, "42", skips[5].Entry)
		assert.Contains(t, skips[5].Err.Error(), "line 14")
	})

	t.Run("follows aliases", func(t *testing.T) {
		t.Parallel()

		h, skips, err := yaml.Decode(strings.NewReader(`2020-01-05:
  desktop: &stores
    newegg:
      - 8GB@$18.99 Foobar
2020-01-06:
  desktop: *stores
`))
		require.NoError(t, err)
		assert.Empty(t, skips)
		assert.Equal(t, []string{"8GB@$18.99 Foobar"}, h[jan6]["desktop"]["newegg"])
	})

	t.Run("date keys with a time keep the date", func(t *testing.T) {
		t.Parallel()

		h, _, err := yaml.Decode(strings.NewReader(`2020-01-05T10:30:00Z:
  desktop:
    newegg:
      - 8GB@$18.99 Foobar
`))
		require.NoError(t, err)
		assert.Contains(t, h, jan5)
	})

	t.Run("syntax errors are fatal", func(t *testing.T) {
		t.Parallel()

		_, _, err := yaml.Decode(strings.NewReader("2020-01-05:\n  desktop: [unclosed\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode history document 1")
	})
}

func TestDecode_LoadHistory(t *testing.T) {
	t.Parallel()

	h, _, err := yaml.Decode(strings.NewReader(`2020-01-05:
  desktop:
    store:
      - 4GB@$14.99 Foo
  laptop:
    store:
      - 2x4GB@$24.99 Foo
      - 4GB@$14.99
`))
	require.NoError(t, err)

	records, skips := ramprice.LoadHistory(h)
	require.Len(t, records, 2)
	assert.Equal(t, "2x4GB@$24.99 foo for laptop from store on 2020-01-05", records[1].String())
	require.Len(t, skips, 1)
	assert.Equal(t, "4GB@$14.99", skips[0].Entry)
}
