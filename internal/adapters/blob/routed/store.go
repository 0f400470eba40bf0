package routed

import (
	"context"
	"errors"
	"fmt"

	"github.com/avomont/lifeline/internal/domain"
	"github.com/avomont/lifeline/internal/ports"
)

// DefaultSizeThreshold is the largest payload the enclave backend accepts;
// anything bigger goes to the sealed general store.
const DefaultSizeThreshold = 1536

// Store routes blobs by size: payloads up to the threshold land in the
// enclave store, larger payloads in the sealed store. A Put always writes
// the new copy before touching the stale copy in the other backend.
type Store struct {
	enclave   ports.BlobStore
	sealed    ports.BlobStore
	threshold int
}

var _ ports.BlobStore = (*Store)(nil)

var (
	errNilEnclaveStore = errors.New("enclave blob store is nil")
	errNilSealedStore  = errors.New("sealed blob store is nil")
)

func NewStore(enclave ports.BlobStore, sealed ports.BlobStore, threshold int) (*Store, error) {
	if enclave == nil {
		return nil, errNilEnclaveStore
	}
	if sealed == nil {
		return nil, errNilSealedStore
	}
	if threshold <= 0 {
		threshold = DefaultSizeThreshold
	}

	return &Store{enclave: enclave, sealed: sealed, threshold: threshold}, nil
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if len(value) <= s.threshold {
		if err := s.enclave.Put(ctx, key, value); err != nil {
			return fmt.Errorf("enclave put %q: %w", key, err)
		}
		// A stale sealed copy is shadowed by the enclave copy on reads,
		// so its removal is best-effort.
		_ = s.sealed.Delete(ctx, key)
		return nil
	}

	if err := s.sealed.Put(ctx, key, value); err != nil {
		return fmt.Errorf("sealed put %q: %w", key, err)
	}
	// Reads prefer the enclave, so a stale enclave copy must not survive.
	if err := s.enclave.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete stale enclave copy of %q: %w", key, err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.enclave.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if shouldSkipFallback(err) {
		return "", err
	}

	fallbackValue, fallbackErr := s.sealed.Get(ctx, key)
	if fallbackErr == nil {
		return fallbackValue, nil
	}
	if errors.Is(err, domain.ErrBlobNotFound) && errors.Is(fallbackErr, domain.ErrBlobNotFound) {
		return "", fmt.Errorf("blob %q: %w", key, domain.ErrBlobNotFound)
	}

	return "", fmt.Errorf("enclave get failed: %w; sealed get failed: %w", err, fallbackErr)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	enclaveErr := s.enclave.Delete(ctx, key)
	if shouldSkipFallback(enclaveErr) {
		return enclaveErr
	}

	sealedErr := s.sealed.Delete(ctx, key)
	if enclaveErr == nil && sealedErr == nil {
		return nil
	}
	if enclaveErr != nil && sealedErr != nil {
		return fmt.Errorf("enclave delete failed: %w; sealed delete failed: %w", enclaveErr, sealedErr)
	}
	if enclaveErr != nil {
		return fmt.Errorf("enclave delete %q: %w", key, enclaveErr)
	}

	return fmt.Errorf("sealed delete %q: %w", key, sealedErr)
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
