package tlsroots

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 300 * time.Millisecond

// Watcher serves a client key pair and swaps it when the files on disk
// change. A failed reload keeps the previous pair.
type Watcher struct {
	certFile string
	keyFile  string
	log      *slog.Logger
	debounce time.Duration

	cert atomic.Pointer[tls.Certificate]

	done     chan struct{}
	stopOnce sync.Once
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithLogger sets the logger for reload events.
func WithLogger(l *slog.Logger) WatcherOption {
	return func(w *Watcher) { w.log = l }
}

// WithDebounce sets how long the files must stay quiet before a reload.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debounce = d }
}

// NewWatcher loads the key pair and returns a Watcher serving it. Call
// Start or StartAsync to follow changes.
func NewWatcher(certFile, keyFile string, opts ...WatcherOption) (*Watcher, error) {
	w := &Watcher{
		certFile: certFile,
		keyFile:  keyFile,
		log:      slog.Default(),
		debounce: defaultDebounce,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := w.load(); err != nil {
		return nil, fmt.Errorf("tlsroots: load client certificate: %w", err)
	}
	return w, nil
}

// GetClientCertificate has the signature of tls.Config.GetClientCertificate.
func (w *Watcher) GetClientCertificate(*tls.CertificateRequestInfo) (*tls.Certificate, error) {
	return w.cert.Load(), nil
}

// Start blocks, following the certificate and key files until Stop.
//
// The parent directories are watched rather than the files, since tools
// that rotate certificates usually write a temp file and rename it.
// Events are coalesced: the pair is reloaded once the files have been
// quiet for the debounce period, so a cert written just before its key
// is never loaded on its own.
func (w *Watcher) Start() error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("tlsroots: create watcher: %w", err)
	}
	defer fw.Close()

	names := map[string]bool{
		filepath.Clean(w.certFile): true,
		filepath.Clean(w.keyFile):  true,
	}
	for _, dir := range uniqueDirs(w.certFile, w.keyFile) {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("tlsroots: watch %s: %w", dir, err)
		}
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !names[filepath.Clean(ev.Name)] || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			w.log.Debug("client certificate file changed", "file", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := w.load(); err != nil {
				w.log.Warn("client certificate reload failed, keeping previous",
					"cert_file", w.certFile, "error", err)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("client certificate watcher error", "error", err)
		}
	}
}

// StartAsync runs Start on its own goroutine.
func (w *Watcher) StartAsync() {
	go func() {
		if err := w.Start(); err != nil {
			w.log.Warn("client certificate watcher stopped", "error", err)
		}
	}()
}

// Stop ends Start. Extra calls do nothing.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.done) })
}

func (w *Watcher) load() error {
	pair, err := tls.LoadX509KeyPair(w.certFile, w.keyFile)
	if err != nil {
		return err
	}
	w.cert.Store(&pair)
	w.log.Debug("client certificate loaded", "cert_file", w.certFile)
	return nil
}

func uniqueDirs(paths ...string) []string {
	seen := make(map[string]bool, len(paths))
	var dirs []string
	for _, p := range paths {
		d := filepath.Dir(p)
		if !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}
	return dirs
}
