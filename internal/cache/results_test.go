package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestResults_ValidWithinTTL(t *testing.T) {
	clock := newFakeClock()
	r := NewResults(WithClock(clock.Now))

	r.Set("search:matrix:1", []int{603}, TTLSearch)
	assert.True(t, r.IsValid("search:matrix:1"), "valid at t0")

	clock.Advance(TTLSearch - time.Millisecond)
	assert.True(t, r.IsValid("search:matrix:1"), "valid just before t0+T")

	clock.Advance(time.Millisecond)
	assert.False(t, r.IsValid("search:matrix:1"), "invalid at t0+T")
}

func TestResults_ExpiredEntryDroppedOnLookup(t *testing.T) {
	clock := newFakeClock()
	r := NewResults(WithClock(clock.Now))

	r.Set("genres", "list", time.Minute)
	clock.Advance(2 * time.Minute)

	// Still present until something looks at it
	_, ok := r.Get("genres")
	assert.True(t, ok)
	assert.Equal(t, 1, r.Len())

	_, ok = Lookup[string](r, "genres")
	assert.False(t, ok, "expired entry must be a miss")
	assert.Equal(t, 0, r.Len(), "expired entry collected lazily")
}

func TestResults_Lookup(t *testing.T) {
	r := NewResults()
	r.Set("movie:550", "Fight Club", TTLDetails)

	got, ok := Lookup[string](r, "movie:550")
	require.True(t, ok)
	assert.Equal(t, "Fight Club", got)

	_, ok = Lookup[int](r, "movie:550")
	assert.False(t, ok, "type mismatch is a miss")

	_, ok = Lookup[string](r, "movie:551")
	assert.False(t, ok)
}

func TestResults_GetReturnsStoredAt(t *testing.T) {
	clock := newFakeClock()
	r := NewResults(WithClock(clock.Now))
	r.Set("k", 1, time.Minute)

	e, ok := r.Get("k")
	require.True(t, ok)
	assert.Equal(t, clock.Now(), e.StoredAt)
	assert.Equal(t, time.Minute, e.TTL)
}

func TestResults_NonPositiveTTLStoresNothing(t *testing.T) {
	r := NewResults()
	r.Set("k", 1, 0)
	r.Set("j", 1, -time.Second)
	assert.Equal(t, 0, r.Len())
	assert.False(t, r.IsValid("k"))
}

func TestResults_DeletePrefix(t *testing.T) {
	r := NewResults()
	r.Set("reviews:movie:1", 1, TTLReviews)
	r.Set("reviews:movie:2", 2, TTLReviews)
	r.Set("movie:1", 3, TTLDetails)

	r.DeletePrefix("reviews:")
	assert.False(t, r.IsValid("reviews:movie:1"))
	assert.False(t, r.IsValid("reviews:movie:2"))
	assert.True(t, r.IsValid("movie:1"))
}

func TestResults_DeleteAndClear(t *testing.T) {
	r := NewResults()
	r.Set("a", 1, time.Hour)
	r.Set("b", 2, time.Hour)

	r.Delete("a")
	assert.False(t, r.IsValid("a"))
	assert.True(t, r.IsValid("b"))

	r.Clear()
	assert.Equal(t, 0, r.Len())
}
