package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrShareNotFound = errors.New("share link not found")
	ErrShareExpired  = errors.New("share link expired")
)

// ShareRecord is one time-limited encrypted blob, not tied to any user
// identity. The server cannot read it; it only tracks the expiry window.
type ShareRecord struct {
	EncryptedData string    `json:"encrypted_data"`
	IV            string    `json:"iv"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// ShareStore keeps share links in process memory with lazy expiry: every
// Create sweeps entries past their window, and a Get that lands on an
// expired entry removes it on the spot. No background timer runs.
type ShareStore struct {
	mu    sync.Mutex
	links map[string]ShareRecord
	ttl   time.Duration
	now   func() time.Time
}

func NewShareStore() *ShareStore {
	return &ShareStore{
		links: make(map[string]ShareRecord),
		ttl:   ShareTTL,
		now:   time.Now,
	}
}

// Create stores an encrypted blob under a fresh opaque ID and returns the
// ID with the stored record.
func (s *ShareStore) Create(encryptedData, iv string) (string, ShareRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, rec := range s.links {
		if rec.ExpiresAt.Before(now) {
			delete(s.links, id)
		}
	}

	shareID := uuid.NewString()
	rec := ShareRecord{
		EncryptedData: encryptedData,
		IV:            iv,
		CreatedAt:     now,
		ExpiresAt:     now.Add(s.ttl),
	}
	s.links[shareID] = rec
	return shareID, rec
}

// Get returns the record for shareID. The first access past the expiry
// window reports ErrShareExpired and removes the entry, so any later access
// reports ErrShareNotFound.
func (s *ShareStore) Get(shareID string) (*ShareRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.links[shareID]
	if !ok {
		return nil, ErrShareNotFound
	}
	if rec.ExpiresAt.Before(s.now()) {
		delete(s.links, shareID)
		return nil, ErrShareExpired
	}
	return &rec, nil
}
