package credential

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/dgraph-io/badger/v3"

	"github.com/yndnr/spot-go/internal/telemetry/logger"
)

// BadgerStore keeps the token in an embedded Badger database.
type BadgerStore struct {
	db     *badger.DB
	closed atomic.Bool
}

// NewBadgerStore opens (or creates) a Badger database in dir.
// Badger's internal logging is routed through log at its own level.
func NewBadgerStore(dir string, log logger.Logger) (*BadgerStore, error) {
	if dir == "" {
		return nil, errors.New("credential: badger backend requires a path")
	}
	if log == nil {
		log = logger.Default()
	}

	opts := badger.DefaultOptions(dir).
		WithLogger(&badgerLogger{logger: logger.Slog(log).With("component", "badger")}).
		WithNumVersionsToKeep(1).
		WithSyncWrites(true)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("credential: open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Load(ctx context.Context) (string, error) {
	if s.closed.Load() {
		return "", ErrClosed
	}

	var token string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(Key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		value, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		token = string(value)
		return nil
	})
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", ErrNotFound
	}
	return token, nil
}

func (s *BadgerStore) Save(ctx context.Context, token string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(Key), []byte(token))
	})
}

func (s *BadgerStore) Delete(ctx context.Context) error {
	if s.closed.Load() {
		return ErrClosed
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(Key))
	})
}

func (s *BadgerStore) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	return s.db.Close()
}

// badgerLogger adapts slog.Logger to Badger's Logger interface.
// Badger is chatty at info, so info is demoted to debug.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
