package cache

import (
	"strings"
	"sync"
	"time"
)

// Freshness policies per call site. Every Set names one explicitly.
const (
	TTLSearch         = 180 * time.Second
	TTLSuggestions    = 120 * time.Second
	TTLAdvancedSearch = 300 * time.Second
	TTLCategory       = 10 * time.Minute
	TTLDetails        = 30 * time.Minute
	TTLGenres         = 24 * time.Hour
	TTLReviews        = 60 * time.Second
)

// Entry is a cached value with its freshness timestamp.
type Entry struct {
	Value    any
	StoredAt time.Time
	TTL      time.Duration
}

func (e Entry) validAt(now time.Time) bool {
	return now.Sub(e.StoredAt) < e.TTL
}

// Results stores completed results with a per-entry TTL.
// Expired entries are only removed when they are looked up.
type Results struct {
	mu      sync.Mutex
	entries map[string]Entry
	now     func() time.Time
}

// Option configures a Results cache.
type Option func(*Results)

// WithClock sets the time source (for testing).
func WithClock(now func() time.Time) Option {
	return func(r *Results) {
		r.now = now
	}
}

// NewResults creates an empty result cache.
func NewResults(opts ...Option) *Results {
	r := &Results{
		entries: make(map[string]Entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the raw entry for key, expired or not.
// Callers check IsValid before trusting it; Lookup does both.
func (r *Results) Get(key string) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[key]
	return e, ok
}

// Set stores value under key for ttl. A non-positive ttl stores nothing.
func (r *Results) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key] = Entry{Value: value, StoredAt: r.now(), TTL: ttl}
}

// IsValid reports whether key holds an unexpired entry.
// An expired entry is dropped.
func (r *Results) IsValid(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[key]
	if !ok {
		return false
	}
	if !e.validAt(r.now()) {
		delete(r.entries, key)
		return false
	}
	return true
}

// Delete removes key.
func (r *Results) Delete(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, key)
}

// DeletePrefix removes every key starting with prefix.
func (r *Results) DeletePrefix(prefix string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k := range r.entries {
		if strings.HasPrefix(k, prefix) {
			delete(r.entries, k)
		}
	}
}

// Clear removes all entries.
func (r *Results) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]Entry)
}

// Len returns the number of stored entries, including expired ones not yet looked up.
func (r *Results) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Lookup returns the value under key if it is valid and of type T.
func Lookup[T any](r *Results, key string) (T, bool) {
	var zero T
	if !r.IsValid(key) {
		return zero, false
	}
	e, ok := r.Get(key)
	if !ok {
		return zero, false
	}
	v, ok := e.Value.(T)
	if !ok {
		return zero, false
	}
	return v, true
}
