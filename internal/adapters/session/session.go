// internal/adapters/session/session.go

// Package session holds the signed-in credential for the running client.
// It is injected into the API client as a ports.TokenProvider rather than
// read through ambient global state, so sign-in and sign-out stay explicit
// mutations with one owner.
package session

import (
	"context"
	"sync"

	"github.com/stockline/stockline-go/internal/core/ports"
)

// Store is an in-memory session holder.
type Store struct {
	mu     sync.RWMutex
	token  string
	userID string
}

// Statically assert that *Store implements the TokenProvider port.
var _ ports.TokenProvider = (*Store)(nil)

// NewStore creates an empty (signed-out) session store.
func NewStore() *Store {
	return &Store{}
}

// SignIn installs the credential for subsequent API calls.
func (s *Store) SignIn(token, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.userID = userID
}

// SignOut clears the session.
func (s *Store) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.userID = ""
}

// SignedIn reports whether a credential is present.
func (s *Store) SignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// UserID returns the signed-in user, or "" when signed out.
func (s *Store) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// Token implements ports.TokenProvider. A signed-out store yields an
// empty token and the request goes out unauthenticated.
func (s *Store) Token(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}
