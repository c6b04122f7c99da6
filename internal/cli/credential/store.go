package credential

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/yndnr/spot-go/internal/telemetry/logger"
)

// Key is the storage key of the persisted token.
const Key = "spot-admin-token"

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

var (
	// ErrNotFound is returned by Load when no token is persisted.
	ErrNotFound = errors.New("credential: not found")
	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("credential: store closed")
)

// Store persists a single bearer token.
type Store interface {
	// Load returns the persisted token or ErrNotFound.
	Load(ctx context.Context) (string, error)
	// Save replaces the persisted token.
	Save(ctx context.Context, token string) error
	// Delete removes the persisted token. Deleting nothing is not an error.
	Delete(ctx context.Context) error
	// Close releases resources held by the store.
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend string
	Path    string
	// Secret, when set, encrypts the token at rest.
	Secret string
}

// Open creates the store described by opts.
func Open(opts Options, log logger.Logger) (Store, error) {
	if log == nil {
		log = logger.Default()
	}

	var (
		store Store
		err   error
	)
	switch strings.ToLower(opts.Backend) {
	case "", BackendFile:
		if opts.Path == "" {
			return nil, errors.New("credential: file backend requires a path")
		}
		store = NewFileStore(opts.Path)
	case BackendBadger:
		store, err = NewBadgerStore(opts.Path, log)
		if err != nil {
			return nil, err
		}
	case BackendMemory:
		store = NewMemoryStore()
	default:
		return nil, fmt.Errorf("credential: unknown backend %q", opts.Backend)
	}

	if opts.Secret == "" {
		return store, nil
	}
	sealed, err := Seal(store, opts.Secret)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return sealed, nil
}

// MemoryStore keeps the token in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	token  string
	saved  bool
	closed bool
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", ErrClosed
	}
	if !s.saved {
		return "", ErrNotFound
	}
	return s.token, nil
}

func (s *MemoryStore) Save(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.token, s.saved = token, true
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.token, s.saved = "", false
	return nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
