// Package bloom deduplicates batch URLs with a Bloom filter.
package bloom

import (
	"net/url"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter remembers URLs that were already scheduled. The Bloom filter
// answers definite misses; its hits are confirmed against the exact set of
// keys, so a new URL is never reported as seen. It is safe for concurrent
// use.
type Filter struct {
	mu   sync.Mutex
	f    *bloom.BloomFilter
	keys map[string]struct{}
}

// NewFilter creates a new Bloom filter sized for n expected URLs
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f:    bloom.NewWithEstimates(n, fpRate),
		keys: make(map[string]struct{}),
	}
}

// Seen reports whether the URL was already recorded and records it.
// URLs that differ only in host case, a fragment or a trailing slash are
// the same page.
func (f *Filter) Seen(rawURL string) bool {
	key := Normalize(rawURL)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.f.TestOrAddString(key) {
		if _, ok := f.keys[key]; ok {
			return true
		}
	}
	f.keys[key] = struct{}{}
	return false
}

// Count returns the number of distinct URLs recorded.
func (f *Filter) Count() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(len(f.keys))
}

// Normalize returns the dedup key of a URL. Strings that do not parse as
// URLs are only trimmed.
func Normalize(rawURL string) string {
	s := strings.TrimSpace(rawURL)
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return s
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	if u.Path != "/" {
		u.Path = strings.TrimSuffix(u.Path, "/")
		u.RawPath = ""
	}
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String()
}
