package ramprice

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// CapacityMarker is the unit marker that follows a capacity in vendor text.
const CapacityMarker = "GB"

// Capacity is a normalized capacity token. A single stated capacity has
// Count zero; a kit of Count modules of SizeGB each has Count > 0.
type Capacity struct {
	Count  int
	SizeGB int
}

// IsKit reports whether c describes several modules.
func (c Capacity) IsKit() bool {
	return c.Count > 0
}

// TotalGB returns the total capacity described by c.
func (c Capacity) TotalGB() int {
	if c.Count > 0 {
		return c.Count * c.SizeGB
	}
	return c.SizeGB
}

// String renders c as it appears in shorthand notation: "16" or "2x8".
func (c Capacity) String() string {
	if c.Count > 0 {
		return strconv.Itoa(c.Count) + "x" + strconv.Itoa(c.SizeGB)
	}
	return strconv.Itoa(c.SizeGB)
}

// ParseCapacity scans text for numbers written immediately before the
// capacity marker and resolves them into a capacity token. It reports false
// when text holds no usable capacity.
//
// Only the first two candidates count. When they differ, the larger one is
// the total and the smaller one the module size, so "16GB (2 x 8GB)" and
// "(2 x 8GB) 16GB" both resolve to 2x8.
func ParseCapacity(text string) (Capacity, bool) {
	candidates := capacityCandidates(text, 2)
	switch len(candidates) {
	case 0:
		return Capacity{}, false
	case 1:
		return Capacity{SizeGB: candidates[0]}, true
	}

	a, b := candidates[0], candidates[1]
	if a == b {
		return Capacity{SizeGB: a}, true
	}
	total, size := max(a, b), min(a, b)
	return Capacity{Count: total / size, SizeGB: size}, true
}

// capacityCandidates returns up to limit numbers that directly precede the
// capacity marker, in the order their markers appear.
func capacityCandidates(text string, limit int) []int {
	var out []int
	for offset := 0; len(out) < limit; {
		i := strings.Index(text[offset:], CapacityMarker)
		if i < 0 {
			break
		}
		end := offset + i
		offset = end + len(CapacityMarker)

		if n, ok := numberBefore(text, end); ok {
			out = append(out, n)
		}
	}
	return out
}

// numberBefore reads the digit run that ends at end, skipping whitespace
// between the digits and end.
func numberBefore(text string, end int) (int, bool) {
	for end > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:end])
		if !unicode.IsSpace(r) {
			break
		}
		end -= size
	}

	start := end
	for start > 0 && isDigit(text[start-1]) {
		start--
	}
	if start == end {
		return 0, false
	}

	n, err := strconv.Atoi(text[start:end])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
