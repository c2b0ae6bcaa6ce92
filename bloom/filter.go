// Package bloom flags listings probably seen earlier in a batch using
// Bloom filters. False positives are possible; false negatives are not.
package bloom

import (
	"strconv"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/carlot"
)

// Filter wraps a Bloom filter for listing deduplication.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Seen reports whether a vehicle with the same URL, or the same title and
// price, was probably seen before, and records v's keys either way.
// Vehicles without a URL or title have no keys and are never seen.
func (f *Filter) Seen(v *carlot.Vehicle) bool {
	seen := false
	for _, key := range Keys(v) {
		if f.f.TestOrAddString(key) {
			seen = true
		}
	}
	return seen
}

// EstimatedCount returns the approximate number of distinct keys recorded.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

// Keys returns the identity keys of v: its URL, and its title together with
// its price. Keys mirror the duplicate rule of carlot.VehicleService.AddVehicle.
func Keys(v *carlot.Vehicle) []string {
	var keys []string
	if v.URL != "" {
		keys = append(keys, "url\x00"+v.URL)
	}
	if v.Title != "" {
		price := "-"
		if v.Price != nil {
			price = strconv.Itoa(*v.Price)
		}
		keys = append(keys, "title\x00"+v.Title+"\x00"+price)
	}
	return keys
}
