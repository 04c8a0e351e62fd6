package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/rumble-cli/internal/domain"
	"github.com/bnema/rumble-cli/internal/ports"
)

const (
	rootDirMode  = 0o700
	keyFileMode  = 0o600
	tempKeyFiles = ".key-*.tmp"
)

// Store keeps each key in its own file below root.
type Store struct {
	root string
	mu   sync.RWMutex
}

var _ ports.DurableStore = (*Store)(nil)

func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathForKey(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.root, rootDirMode); err != nil {
		return fmt.Errorf("create durable store directory: %w", err)
	}

	temp, err := os.CreateTemp(s.root, tempKeyFiles)
	if err != nil {
		return fmt.Errorf("create temp file for %q: %w", key, err)
	}
	tempName := temp.Name()
	defer func() { _ = os.Remove(tempName) }()

	if _, err := temp.WriteString(value); err != nil {
		_ = temp.Close()
		return fmt.Errorf("write %q: %w", key, err)
	}
	if err := temp.Chmod(keyFileMode); err != nil {
		_ = temp.Close()
		return fmt.Errorf("chmod %q: %w", key, err)
	}
	if err := temp.Close(); err != nil {
		return fmt.Errorf("close %q: %w", key, err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace %q: %w", key, err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := s.pathForKey(key)
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("key %q: %w", key, domain.ErrKeyNotFound)
		}
		return "", fmt.Errorf("read %q: %w", key, err)
	}

	return string(data), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathForKey(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete %q: %w", key, err)
	}

	return nil
}

// Keys are flat names; separators and traversal are rejected.
func (s *Store) pathForKey(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", errors.New("durable key is empty")
	}
	if trimmed == "." || trimmed == ".." || strings.ContainsAny(trimmed, `/\`) || strings.HasPrefix(trimmed, ".") {
		return "", fmt.Errorf("invalid durable key %q", key)
	}

	return filepath.Join(s.root, trimmed), nil
}
