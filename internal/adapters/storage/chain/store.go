package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/rumble-cli/internal/adapters/storage/file"
	passstore "github.com/bnema/rumble-cli/internal/adapters/storage/pass"
	"github.com/bnema/rumble-cli/internal/domain"
	"github.com/bnema/rumble-cli/internal/ports"
)

// Store writes to primary and falls back to fallback when primary fails. Deletes go to both
// so a value written during a primary outage cannot resurface later.
type Store struct {
	primary  ports.DurableStore
	fallback ports.DurableStore
}

var _ ports.DurableStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary durable store is nil")
	errNilFallbackStore = errors.New("fallback durable store is nil")
)

func NewStore(primary ports.DurableStore, fallback ports.DurableStore) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{primary: primary, fallback: fallback}, nil
}

func NewPassFirstWithFileFallback(passPrefix string, fileRoot string) (*Store, error) {
	return NewStore(passstore.NewStore(passPrefix), filestore.NewStore(fileRoot))
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.primary.Put(ctx, key, value)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Put(ctx, key, value)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend put failed: %w; fallback backend put failed: %w", err, fallbackErr)
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if shouldSkipFallback(err) {
		return "", err
	}

	fallbackValue, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr == nil {
		return fallbackValue, nil
	}
	if errors.Is(err, domain.ErrKeyNotFound) && errors.Is(fallbackErr, domain.ErrKeyNotFound) {
		return "", fmt.Errorf("key %q: %w", key, domain.ErrKeyNotFound)
	}

	return "", fmt.Errorf("primary backend get failed: %w; fallback backend get failed: %w", err, fallbackErr)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.primary.Delete(ctx, key)
	if shouldSkipFallback(err) {
		return err
	}
	if errors.Is(err, passstore.ErrUnavailable) {
		err = nil
	}

	fallbackErr := s.fallback.Delete(ctx, key)

	var failures []error
	if err != nil {
		failures = append(failures, fmt.Errorf("primary backend delete failed: %w", err))
	}
	if fallbackErr != nil {
		failures = append(failures, fmt.Errorf("fallback backend delete failed: %w", fallbackErr))
	}
	return errors.Join(failures...)
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
