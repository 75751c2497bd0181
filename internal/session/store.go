package session

//go:generate $MOCKGEN -source=store.go -destination=mocks/store_mock.go

import (
	"context"
	"fmt"
	"sync"

	"github.com/oshokin/admin-client/internal/logger"
)

// Persister writes the session token to durable storage.
type Persister interface {
	// PersistToken stores token, an empty token removes the stored session.
	PersistToken(ctx context.Context, token string) error
}

// Loader reads the session token from durable storage.
type Loader interface {
	// LoadToken returns the stored token or an empty string if there is none.
	LoadToken(ctx context.Context) (string, error)
}

// Store holds the session token shared by every request of the process.
type Store struct {
	mu        sync.RWMutex
	token     string
	persister Persister
	loader    Loader
}

// NewStore creates and returns a new Store seeded with token.
func NewStore(token string, persister Persister, loader Loader) *Store {
	return &Store{
		token:     token,
		persister: persister,
		loader:    loader,
	}
}

// Token returns the current session token.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// SetToken replaces the session token in memory.
func (s *Store) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// ResetToken forgets the session token and persists the empty token.
// The in-memory token is cleared even when persisting fails.
func (s *Store) ResetToken(ctx context.Context) error {
	s.SetToken("")

	if err := s.persister.PersistToken(ctx, ""); err != nil {
		return fmt.Errorf("failed to persist session reset: %w", err)
	}

	logger.Info(ctx, "Session token has been reset")

	return nil
}

// Reload replaces the in-memory token with the persisted one.
func (s *Store) Reload(ctx context.Context) error {
	token, err := s.loader.LoadToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload session: %w", err)
	}

	s.SetToken(token)

	logger.Debugf(ctx, "Session reloaded, token present: %t", token != "")

	return nil
}
