// Package bloom provides probabilistic visited-URL tracking using Bloom
// filters. The HTTP session uses it to guard its transcript-link and feed
// fallbacks against refetching the same URL.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Visited tracks URLs that have already been fetched.
type Visited struct {
	f *bloom.BloomFilter
}

// NewVisited creates a filter sized for n expected URLs with the given
// false positive rate.
func NewVisited(n uint, fpRate float64) *Visited {
	return &Visited{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Mark records a URL as visited.
func (v *Visited) Mark(url string) {
	v.f.AddString(url)
}

// Seen returns true if the URL might have been visited already.
// False positives are possible; false negatives are not.
func (v *Visited) Seen(url string) bool {
	return v.f.TestString(url)
}
