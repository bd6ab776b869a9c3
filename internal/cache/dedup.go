package cache

import (
	"sync"
	"time"
)

// DefaultDedupTTL bounds how long an in-flight request stays joinable.
const DefaultDedupTTL = 30 * time.Second

type inFlight struct {
	future *Future[any]
	timer  *time.Timer
}

// Dedup maps a request key to the future of the request currently in flight.
// It collapses concurrent identical requests; it is not a result cache.
type Dedup struct {
	mu      sync.Mutex
	entries map[string]*inFlight
}

// NewDedup creates an empty dedup cache.
func NewDedup() *Dedup {
	return &Dedup{entries: make(map[string]*inFlight)}
}

// Has reports whether a request for key is in flight.
func (d *Dedup) Has(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.entries[key]
	return ok
}

// Get returns the in-flight future for key.
func (d *Dedup) Get(key string) (*Future[any], bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ok := d.entries[key]
	if !ok {
		return nil, false
	}
	return e.future, true
}

// Set registers f under key and schedules its removal after ttl,
// whether or not f has resolved by then. A ttl <= 0 uses DefaultDedupTTL.
func (d *Dedup) Set(key string, f *Future[any], ttl time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.store(key, f, ttl)
}

// Join registers f under key unless another future is already in flight.
// It returns the future callers should wait on and whether it was an existing one.
func (d *Dedup) Join(key string, f *Future[any], ttl time.Duration) (*Future[any], bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if e, ok := d.entries[key]; ok {
		return e.future, true
	}
	d.store(key, f, ttl)
	return f, false
}

// Delete removes key, stopping its expiry timer first.
func (d *Dedup) Delete(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.remove(key)
}

// Release removes key only if it still maps to f.
// A slow request whose entry already expired and was replaced leaves the newer entry alone.
func (d *Dedup) Release(key string, f *Future[any]) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if e, ok := d.entries[key]; ok && e.future == f {
		d.remove(key)
	}
}

// Clear removes every entry and stops all timers.
func (d *Dedup) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for key := range d.entries {
		d.remove(key)
	}
}

// Len returns the number of in-flight entries.
func (d *Dedup) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}

// store must be called with d.mu held.
func (d *Dedup) store(key string, f *Future[any], ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultDedupTTL
	}
	d.remove(key)

	e := &inFlight{future: f}
	e.timer = time.AfterFunc(ttl, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if cur, ok := d.entries[key]; ok && cur == e {
			delete(d.entries, key)
		}
	})
	d.entries[key] = e
}

// remove must be called with d.mu held.
func (d *Dedup) remove(key string) {
	e, ok := d.entries[key]
	if !ok {
		return
	}
	e.timer.Stop()
	delete(d.entries, key)
}
