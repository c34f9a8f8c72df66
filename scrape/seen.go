package scrape

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/cespare/xxhash/v2"
)

// Bloom filter sizing for URL deduplication within one run.
const (
	expectedURLs      = 1000
	falsePositiveRate = 0.001
)

// seenSet remembers URLs and page bodies already handled in a run. URLs go
// through a Bloom filter, so a rare false positive drops a URL that was not
// seen. Page bodies are compared by exact hash.
type seenSet struct {
	urls   *bloom.BloomFilter
	bodies map[uint64]string
}

func newSeenSet(n int) *seenSet {
	return &seenSet{
		urls:   bloom.NewWithEstimates(uint(max(n, expectedURLs)), falsePositiveRate),
		bodies: make(map[uint64]string),
	}
}

// addURL records url and reports whether it was new.
func (s *seenSet) addURL(url string) bool {
	return !s.urls.TestAndAddString(url)
}

// addBody records the body hash of the page at url. It returns the URL that
// first produced the same hash and whether this body was a duplicate.
func (s *seenSet) addBody(url string, hash uint64) (string, bool) {
	if first, ok := s.bodies[hash]; ok {
		return first, true
	}
	s.bodies[hash] = url
	return url, false
}

// pageHash fingerprints a page body.
func pageHash(source string) uint64 {
	return xxhash.Sum64String(source)
}
