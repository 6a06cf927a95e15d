package storage

import (
	"context"
	"errors"
	"time"

	catalogapp "github.com/souqbun/backend/internal/application/catalog"
)

// StubObjectStorage is a development fallback used when no storage
// backend is configured. URLs point nowhere but keep the image flow
// exercisable.
type StubObjectStorage struct {
	BaseURL string
}

// Ensure StubObjectStorage implements the image service's storage port
var _ catalogapp.ObjectStorage = (*StubObjectStorage)(nil)

// NewStubObjectStorage creates a stub storage adapter
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{BaseURL: "https://storage.invalid"}
}

// GenerateUploadURL returns a fake presigned upload URL
func (s *StubObjectStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/upload/" + storageKey, expiresAt, nil
}

// GenerateDownloadURL returns a fake presigned download URL
func (s *StubObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/download/" + storageKey, expiresAt, nil
}

// ObjectExists always reports true so the attach flow works without a
// real backend
func (s *StubObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}
	return true, nil
}

// DeleteObject is a no-op
func (s *StubObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	return nil
}
