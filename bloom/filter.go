// Package bloom provides a probabilistic membership pre-check backed by a
// Bloom filter.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter remembers keys, typically normalized URLs. It never forgets a key
// but may report one it was never given. Not safe for concurrent use.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected keys at the given false
// positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{f: bloom.NewWithEstimates(n, fpRate)}
}

// Add records key.
func (f *Filter) Add(key string) {
	f.f.AddString(key)
}

// Test reports whether key may have been added.
func (f *Filter) Test(key string) bool {
	return f.f.TestString(key)
}
