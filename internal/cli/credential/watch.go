package credential

import (
	"os"
	"path/filepath"

	"github.com/yndnr/spot-go/internal/infra/confloader"
	"github.com/yndnr/spot-go/internal/telemetry/logger"
)

// Watch calls onChange whenever the file behind a FileStore is written or
// removed, for example by a login in another terminal. Wrapping stores
// such as SealedStore are unwrapped first. Stores that are not file
// backed cannot be watched and return a no-op stop function.
func Watch(store Store, log logger.Logger, onChange func()) (stop func() error, err error) {
	fs, ok := fileBacking(store)
	if !ok {
		return func() error { return nil }, nil
	}
	if log == nil {
		log = logger.Default()
	}

	if err := os.MkdirAll(filepath.Dir(fs.Path()), 0700); err != nil {
		return nil, err
	}

	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(logger.Slog(log)))
	if err != nil {
		return nil, err
	}
	if err := w.Watch(fs.Path()); err != nil {
		w.Stop()
		return nil, err
	}
	w.OnChange(func(string) { onChange() })
	w.StartAsync()

	return w.Stop, nil
}

// fileBacking finds the FileStore under any chain of wrapping stores.
func fileBacking(store Store) (*FileStore, bool) {
	for {
		switch s := store.(type) {
		case *FileStore:
			return s, true
		case interface{ Unwrap() Store }:
			store = s.Unwrap()
		default:
			return nil, false
		}
	}
}
