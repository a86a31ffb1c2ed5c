package store

import (
	"context"

	"go.uber.org/zap"
)

// FallbackStore is the blob-store adapter the handlers talk to. It validates
// keys and payload shape, prefers the durable tier, and degrades to the
// ephemeral tier for the single call when the durable tier errors out. A
// down durable backend therefore never fails the caller; at worst a Get
// comes back absent.
type FallbackStore struct {
	primary  BlobStore // nil when no durable backend is configured
	fallback BlobStore
	logger   *zap.Logger
}

func NewFallbackStore(primary BlobStore, fallback BlobStore, logger *zap.Logger) *FallbackStore {
	return &FallbackStore{primary: primary, fallback: fallback, logger: logger}
}

// Tier names the storage tier currently serving requests.
func (s *FallbackStore) Tier() string {
	if s.primary != nil {
		return "redis"
	}
	return "memory"
}

func (s *FallbackStore) Put(ctx context.Context, userID string, rec *CloudRecord) error {
	if err := ValidateUserID(userID); err != nil {
		return err
	}
	if err := ValidateEncryptedData(rec.EncryptedData); err != nil {
		return err
	}

	if s.primary == nil {
		return s.fallback.Put(ctx, userID, rec)
	}
	if err := s.primary.Put(ctx, userID, rec); err != nil {
		s.logger.Warn("durable store unavailable, writing to ephemeral fallback",
			zap.String("op", "put"), zap.Error(err))
		return s.fallback.Put(ctx, userID, rec)
	}
	return nil
}

func (s *FallbackStore) Get(ctx context.Context, userID string) (*CloudRecord, error) {
	if err := ValidateUserID(userID); err != nil {
		return nil, err
	}

	if s.primary == nil {
		return s.fallback.Get(ctx, userID)
	}
	rec, err := s.primary.Get(ctx, userID)
	if err != nil {
		s.logger.Warn("durable store unavailable, reading from ephemeral fallback",
			zap.String("op", "get"), zap.Error(err))
		return s.fallback.Get(ctx, userID)
	}
	return rec, nil
}

func (s *FallbackStore) Delete(ctx context.Context, userID string) error {
	if err := ValidateUserID(userID); err != nil {
		return err
	}

	if s.primary == nil {
		return s.fallback.Delete(ctx, userID)
	}
	if err := s.primary.Delete(ctx, userID); err != nil {
		s.logger.Warn("durable store unavailable, deleting from ephemeral fallback",
			zap.String("op", "delete"), zap.Error(err))
		return s.fallback.Delete(ctx, userID)
	}
	return nil
}
