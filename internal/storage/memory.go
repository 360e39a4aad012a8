package storage

import (
	"context"
	"sync"
	"time"

	"github.com/seatwave/auth-front/internal/idp"
)

// Ensure MemoryStore implements the Store interface
var _ Store = (*MemoryStore)(nil)

type stateRecord struct {
	payload   map[string]string
	expiresAt time.Time
}

type sessionRecord struct {
	profile   idp.Profile
	expiresAt time.Time
}

// MemoryStore is a process-local Store backed by mutex-protected maps.
// Records do not survive a restart; the Reaper sweeps expired entries.
type MemoryStore struct {
	mu       sync.Mutex
	states   map[string]stateRecord
	sessions map[string]sessionRecord

	// now is injected for expiry tests
	now func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		states:   make(map[string]stateRecord),
		sessions: make(map[string]sessionRecord),
		now:      time.Now,
	}
}

// PutState stores a login state payload under a one-time token.
func (s *MemoryStore) PutState(_ context.Context, token string, payload map[string]string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[token] = stateRecord{
		payload:   payload,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

// PopState retrieves and deletes a state record. Lookup, expiry check, and
// deletion happen under one lock so two concurrent callbacks redeeming the
// same token cannot both succeed.
func (s *MemoryStore) PopState(_ context.Context, token string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.states[token]
	if !ok {
		return nil, ErrStateNotFound
	}
	delete(s.states, token)

	if !s.now().Before(record.expiresAt) {
		return nil, ErrStateNotFound
	}
	return record.payload, nil
}

// PutSession stores an authenticated user's profile under a session token.
func (s *MemoryStore) PutSession(_ context.Context, token string, profile idp.Profile, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = sessionRecord{
		profile:   profile,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

// GetSession retrieves a session's profile without consuming it.
func (s *MemoryStore) GetSession(_ context.Context, token string) (idp.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.sessions[token]
	if !ok || !s.now().Before(record.expiresAt) {
		return idp.Profile{}, ErrSessionNotFound
	}
	return record.profile, nil
}

// Sweep removes all records that have expired as of the given time and
// returns how many were deleted. The time is injected for testability.
func (s *MemoryStore) Sweep(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for token, record := range s.states {
		if !now.Before(record.expiresAt) {
			delete(s.states, token)
			deleted++
		}
	}
	for token, record := range s.sessions {
		if !now.Before(record.expiresAt) {
			delete(s.sessions, token)
			deleted++
		}
	}
	return deleted, nil
}
