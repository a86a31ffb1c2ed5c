// Package store persists small encrypted blobs keyed by an opaque
// client-derived identifier. The server never holds encryption keys, so
// every backend treats payloads as sealed boxes.
package store

import (
	"context"
	"strings"
	"time"

	"github.com/sayitbetter/backend/internal/core"
)

const (
	// UserIDPrefix and MinUserIDLength define the namespacing convention
	// for client-derived user identifiers.
	UserIDPrefix    = "user_"
	MinUserIDLength = 20

	// UserDataTTL bounds how long an untouched backup is retained.
	UserDataTTL = 90 * 24 * time.Hour

	// ShareTTL is the lifetime of a share link.
	ShareTTL = 24 * time.Hour
)

// BlobStore is the contract for user-scoped encrypted blob persistence.
// Get returns (nil, nil) when no record exists for the key. Put overwrites
// unconditionally, last write wins.
type BlobStore interface {
	Put(ctx context.Context, userID string, rec *CloudRecord) error
	Get(ctx context.Context, userID string) (*CloudRecord, error)
	Delete(ctx context.Context, userID string) error
}

// ValidateUserID enforces the user-key namespacing convention before any
// storage operation is attempted.
func ValidateUserID(userID string) error {
	if !strings.HasPrefix(userID, UserIDPrefix) || len(userID) < MinUserIDLength {
		return core.NewValidationError("invalid user ID format")
	}
	return nil
}
