package apicall

import (
	"sync"

	"github.com/vmunix/marquee/internal/apperr"
)

// Tracker records per-field loading and error state for a store.
type Tracker interface {
	SetLoading(field string, loading bool)
	SetError(field string, err *apperr.Error)
}

// Status is the Tracker the stores embed. The zero value is ready to use.
type Status struct {
	mu      sync.RWMutex
	loading map[string]bool
	errs    map[string]*apperr.Error
}

func (s *Status) SetLoading(field string, loading bool) {
	if field == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading == nil {
		s.loading = make(map[string]bool)
	}
	s.loading[field] = loading
}

func (s *Status) SetError(field string, err *apperr.Error) {
	if field == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.errs == nil {
		s.errs = make(map[string]*apperr.Error)
	}
	if err == nil {
		delete(s.errs, field)
		return
	}
	s.errs[field] = err
}

// Loading reports whether field is loading.
func (s *Status) Loading(field string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading[field]
}

// Err returns the last error recorded for field.
func (s *Status) Err(field string) *apperr.Error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errs[field]
}

// Reset clears all loading and error state.
func (s *Status) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = nil
	s.errs = nil
}
