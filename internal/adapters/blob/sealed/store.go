package sealed

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/avomont/lifeline/internal/domain"
	"github.com/avomont/lifeline/internal/ports"
)

const (
	dataKeyBytes  = 32
	dataKeyPrefix = "keys/"
)

// Store encrypts blobs with AES-256-GCM before handing them to the backend
// store. Each logical key gets its own random data key, generated on first
// use and kept in the enclave store under "keys/<key>"; the AES key is
// HKDF-SHA256-derived from that data key with the logical key as context.
type Store struct {
	backend ports.BlobStore
	keys    ports.BlobStore
}

var _ ports.BlobStore = (*Store)(nil)

var (
	errNilBackendStore = errors.New("backend blob store is nil")
	errNilKeyStore     = errors.New("data key store is nil")
)

func NewStore(backend ports.BlobStore, keys ports.BlobStore) (*Store, error) {
	if backend == nil {
		return nil, errNilBackendStore
	}
	if keys == nil {
		return nil, errNilKeyStore
	}

	return &Store{backend: backend, keys: keys}, nil
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	aead, err := s.aeadForKey(ctx, key, true)
	if err != nil {
		return err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("generate nonce: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, []byte(value), []byte(key))
	encoded := base64.StdEncoding.EncodeToString(sealed)

	if err := s.backend.Put(ctx, key, encoded); err != nil {
		return fmt.Errorf("write sealed blob %q: %w", key, err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	encoded, err := s.backend.Get(ctx, key)
	if err != nil {
		return "", err
	}

	aead, err := s.aeadForKey(ctx, key, false)
	if err != nil {
		return "", err
	}

	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode sealed blob %q: %w", key, err)
	}
	if len(sealed) < aead.NonceSize() {
		return "", fmt.Errorf("sealed blob %q is truncated", key)
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, []byte(key))
	if err != nil {
		return "", fmt.Errorf("open sealed blob %q: %w", key, err)
	}

	return string(plaintext), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.backend.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete sealed blob %q: %w", key, err)
	}
	if err := s.keys.Delete(ctx, dataKeyPrefix+key); err != nil {
		return fmt.Errorf("delete data key for %q: %w", key, err)
	}

	return nil
}

// aeadForKey loads (or, when create is set, mints) the per-key data key and
// derives the AES-GCM cipher from it.
func (s *Store) aeadForKey(ctx context.Context, key string, create bool) (cipher.AEAD, error) {
	dataKey, err := s.dataKey(ctx, key, create)
	if err != nil {
		return nil, err
	}

	derived := make([]byte, dataKeyBytes)
	kdf := hkdf.New(sha256.New, dataKey, nil, []byte("lifeline-sealed:"+key))
	if _, err := io.ReadFull(kdf, derived); err != nil {
		return nil, fmt.Errorf("derive sealing key for %q: %w", key, err)
	}

	block, err := aes.NewCipher(derived)
	if err != nil {
		return nil, fmt.Errorf("init cipher for %q: %w", key, err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init gcm for %q: %w", key, err)
	}

	return aead, nil
}

func (s *Store) dataKey(ctx context.Context, key string, create bool) ([]byte, error) {
	encoded, err := s.keys.Get(ctx, dataKeyPrefix+key)
	if err == nil {
		dataKey, decodeErr := base64.StdEncoding.DecodeString(encoded)
		if decodeErr != nil {
			return nil, fmt.Errorf("decode data key for %q: %w", key, decodeErr)
		}
		return dataKey, nil
	}
	if !errors.Is(err, domain.ErrBlobNotFound) {
		return nil, fmt.Errorf("load data key for %q: %w", key, err)
	}
	if !create {
		return nil, fmt.Errorf("data key for %q: %w", key, domain.ErrBlobNotFound)
	}

	dataKey := make([]byte, dataKeyBytes)
	if _, err := io.ReadFull(rand.Reader, dataKey); err != nil {
		return nil, fmt.Errorf("generate data key for %q: %w", key, err)
	}

	if err := s.keys.Put(ctx, dataKeyPrefix+key, base64.StdEncoding.EncodeToString(dataKey)); err != nil {
		return nil, fmt.Errorf("store data key for %q: %w", key, err)
	}

	return dataKey, nil
}
