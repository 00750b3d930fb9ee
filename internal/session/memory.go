package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	token     string
	flash     *Flash
	expiresAt time.Time
}

// memoryStore implements Store with an in-process map. It is the
// default backend and the one used in tests; sessions do not survive a
// portal restart.
type memoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	ttl     time.Duration
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore(ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &memoryStore{
		entries: make(map[string]*memoryEntry),
		ttl:     ttl,
	}
}

func (s *memoryStore) Token(ctx context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.live(sessionID)
	if entry == nil || entry.token == "" {
		return "", ErrNoSession
	}
	return entry.token, nil
}

func (s *memoryStore) SetToken(ctx context.Context, sessionID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.live(sessionID)
	if entry == nil {
		entry = &memoryEntry{}
		s.entries[sessionID] = entry
	}
	entry.token = token
	entry.expiresAt = time.Now().Add(s.ttl)
	return nil
}

func (s *memoryStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, sessionID)
	return nil
}

func (s *memoryStore) SetFlash(ctx context.Context, sessionID string, flash Flash) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.live(sessionID)
	if entry == nil {
		entry = &memoryEntry{expiresAt: time.Now().Add(s.ttl)}
		s.entries[sessionID] = entry
	}
	entry.flash = &flash
	return nil
}

func (s *memoryStore) PopFlash(ctx context.Context, sessionID string) (*Flash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.live(sessionID)
	if entry == nil || entry.flash == nil {
		return nil, nil
	}
	flash := entry.flash
	entry.flash = nil
	return flash, nil
}

func (s *memoryStore) Ping(ctx context.Context) error {
	return nil
}

func (s *memoryStore) Close() error {
	return nil
}

// live returns the entry for sessionID, dropping it when expired.
// Caller must hold s.mu.
func (s *memoryStore) live(sessionID string) *memoryEntry {
	entry, ok := s.entries[sessionID]
	if !ok {
		return nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, sessionID)
		return nil
	}
	return entry
}
