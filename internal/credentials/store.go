// Package credentials persists the backend auth token.
package credentials

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	bolt "go.etcd.io/bbolt"
)

var (
	bucketAuth = []byte("auth")
	keyToken   = []byte("token")
)

// Store holds one token string. An empty path keeps it in memory only.
type Store struct {
	db  *bolt.DB
	mu  sync.RWMutex
	mem string
	now func() time.Time
}

// Open opens the token database at path, creating it if needed.
// An empty path returns a memory-only store.
func Open(path string) (*Store, error) {
	s := &Store{now: time.Now}
	if path == "" {
		return s, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create credentials dir: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketAuth)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	s.db = db
	return s, nil
}

// Token returns the stored token, or "" if none.
func (s *Store) Token() (string, error) {
	if s.db == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return s.mem, nil
	}
	var token string
	err := s.db.View(func(tx *bolt.Tx) error {
		token = string(tx.Bucket(bucketAuth).Get(keyToken))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return token, nil
}

// SetToken replaces the stored token.
func (s *Store) SetToken(token string) error {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.mem = token
		return nil
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketAuth).Put(keyToken, []byte(token))
	})
	if err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// Clear removes the stored token.
func (s *Store) Clear() error {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.mem = ""
		return nil
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketAuth).Delete(keyToken)
	})
	if err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether a usable token is stored. A JWT that is
// malformed or whose exp claim has passed counts as signed out. Opaque tokens
// are trusted; the backend answers 401 when they are not valid.
func (s *Store) IsAuthenticated() bool {
	token, err := s.Token()
	if err != nil || token == "" {
		return false
	}
	if strings.Count(token, ".") != 2 {
		return true
	}
	// The client never holds the signing key, so only the claims are read.
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return s.now().Before(claims.ExpiresAt.Time)
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
