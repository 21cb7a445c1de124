// Package session persists per-conversation dialogue state so the booking
// engine can run behind stateless HTTP handlers. Each chat session owns
// exactly one DialogueState; the chat surface serializes turns per session.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/chatforge/booking-engine/internal/booking"
)

// ErrSessionNotFound is returned when no state exists for a session
var ErrSessionNotFound = errors.New("session not found")

// Store loads and saves dialogue state by session ID.
type Store interface {
	Load(ctx context.Context, sessionID string) (*booking.DialogueState, error)
	Save(ctx context.Context, sessionID string, state *booking.DialogueState) error
	Delete(ctx context.Context, sessionID string) error
}

// InMemoryStore is a Store for tests and local runs.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]booking.DialogueState
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]booking.DialogueState)}
}

// Load returns the stored state for a session.
func (s *InMemoryStore) Load(ctx context.Context, sessionID string) (*booking.DialogueState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := state
	copied.Draft = booking.NewDraft()
	for f, v := range state.Draft {
		copied.Draft[f] = v
	}
	return &copied, nil
}

// Save stores the session's state.
func (s *InMemoryStore) Save(ctx context.Context, sessionID string, state *booking.DialogueState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = *state
	return nil
}

// Delete removes the session's state.
func (s *InMemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
