package store

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	record    *CloudRecord
	expiresAt time.Time
}

// MemoryStore is the ephemeral in-process tier. It backs development setups
// and the degraded mode when the durable backend is unreachable. Safe for
// concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, userID string, rec *CloudRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[userID] = memoryEntry{
		record:    rec,
		expiresAt: s.now().Add(UserDataTTL),
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, userID string) (*CloudRecord, error) {
	s.mu.RLock()
	entry, ok := s.entries[userID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if s.now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, userID)
		s.mu.Unlock()
		return nil, nil
	}
	return entry.record, nil
}

func (s *MemoryStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, userID)
	return nil
}
