// Package events publishes store state changes so an embedding UI can re-read
// state it cares about instead of polling.
package events

import "time"

// Event types, one per store slice.
const (
	EventMoviesChanged     = "movies.changed"
	EventFavoritesChanged  = "favorites.changed"
	EventWatchedChanged    = "watched.changed"
	EventWatchlistsChanged = "watchlists.changed"
	EventReviewsChanged    = "reviews.changed"
	EventSearchChanged     = "search.changed"
	EventGenresChanged     = "genres.changed"
	EventProfileChanged    = "profile.changed"
)

// Event is what the Bus carries.
type Event interface {
	EventType() string
	EntityType() string // "movie", "watchlist", "review", "user", "query"
	EntityID() string
	OccurredAt() time.Time
}

// Phase is where a mutation is in its lifecycle.
type Phase string

const (
	PhaseLoaded     Phase = "loaded"
	PhaseOptimistic Phase = "optimistic"
	PhaseConfirmed  Phase = "confirmed"
	PhaseRolledBack Phase = "rolled_back"
	PhaseCleared    Phase = "cleared"
)

// Settled reports whether no further event is expected for the same change.
// An optimistic change is followed by PhaseConfirmed or PhaseRolledBack.
func (p Phase) Settled() bool {
	return p != PhaseOptimistic
}

// BaseEvent carries the fields shared by every event.
type BaseEvent struct {
	Type      string    `json:"type"`
	Entity    string    `json:"entity_type"`
	ID        string    `json:"entity_id"`
	Timestamp time.Time `json:"occurred_at"`
}

func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) EntityType() string    { return e.Entity }
func (e BaseEvent) EntityID() string      { return e.ID }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// StateChanged is emitted whenever a store's observable state changes.
type StateChanged struct {
	BaseEvent
	Phase Phase `json:"phase"`
}

// NewStateChanged builds a StateChanged event stamped with the current time.
func NewStateChanged(eventType, entityType, entityID string, phase Phase) *StateChanged {
	return NewStateChangedAt(eventType, entityType, entityID, phase, time.Now())
}

// NewStateChangedAt builds a StateChanged event stamped with at.
func NewStateChangedAt(eventType, entityType, entityID string, phase Phase, at time.Time) *StateChanged {
	return &StateChanged{
		BaseEvent: BaseEvent{Type: eventType, Entity: entityType, ID: entityID, Timestamp: at},
		Phase:     phase,
	}
}
