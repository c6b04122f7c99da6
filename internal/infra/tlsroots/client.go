package tlsroots

import (
	"crypto/tls"
	"errors"
	"log/slog"
)

// ClientOptions selects the TLS material for API requests.
type ClientOptions struct {
	// CAFile is a PEM bundle trusted in addition to the system roots.
	CAFile string
	// CertFile and KeyFile are a client certificate presented to servers
	// that ask for one. Both or neither must be set.
	CertFile string
	KeyFile  string
	// Logger receives reload events. Defaults to slog.Default().
	Logger *slog.Logger
}

// Enabled reports whether any TLS material is configured.
func (o ClientOptions) Enabled() bool {
	return o.CAFile != "" || o.CertFile != "" || o.KeyFile != ""
}

// ClientConfig builds the transport's tls.Config. It returns a nil config
// and a nil watcher when nothing is configured. A non-nil watcher keeps
// the client certificate current and must be stopped by the caller.
func ClientConfig(opts ClientOptions) (*tls.Config, *Watcher, error) {
	if !opts.Enabled() {
		return nil, nil, nil
	}
	if (opts.CertFile == "") != (opts.KeyFile == "") {
		return nil, nil, errors.New("tlsroots: cert_file and key_file must be set together")
	}

	pool := NewPool()
	if opts.CAFile != "" {
		if err := pool.AddCertFile(opts.CAFile); err != nil {
			return nil, nil, err
		}
	}
	cfg := pool.TLSConfig()

	if opts.CertFile == "" {
		return cfg, nil, nil
	}

	var wopts []WatcherOption
	if opts.Logger != nil {
		wopts = append(wopts, WithLogger(opts.Logger))
	}
	w, err := NewWatcher(opts.CertFile, opts.KeyFile, wopts...)
	if err != nil {
		return nil, nil, err
	}
	cfg.GetClientCertificate = w.GetClientCertificate
	w.StartAsync()
	return cfg, w, nil
}
