package command

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/spot-go/internal/cli/config"
	"github.com/yndnr/spot-go/internal/cli/connection"
	"github.com/yndnr/spot-go/internal/cli/credential"
	"github.com/yndnr/spot-go/internal/cli/output"
	"github.com/yndnr/spot-go/internal/cli/session"
	"github.com/yndnr/spot-go/internal/core/service"
	"github.com/yndnr/spot-go/internal/infra/buildinfo"
	"github.com/yndnr/spot-go/internal/infra/shutdown"
	"github.com/yndnr/spot-go/internal/infra/tlsroots"
	"github.com/yndnr/spot-go/internal/telemetry/logger"
	"github.com/yndnr/spot-go/internal/telemetry/metric"
)

const envKey = "spot.env"

// shutdownTimeout bounds the cleanup hooks run on exit.
const shutdownTimeout = 5 * time.Second

// Env is everything a command needs to reach the API. It is built once
// per process, on first use, so commands that only touch local config
// never open the credential store.
type Env struct {
	Config     *config.CLIConfig
	ConfigPath string
	Streams    Streams

	Log      logger.Logger
	Metrics  *metric.ClientMetrics
	Tokens   *connection.TokenStore
	Client   *connection.HTTPClient
	Services *service.Services
	Store    credential.Store
	Session  *session.Manager
	Shutdown *shutdown.Handler

	restoreOnce sync.Once
	restoreErr  error
}

// loadConfig reads the configuration with the global flags applied.
func loadConfig(c *cli.Context) (*config.CLIConfig, string, error) {
	path := c.String("config")
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path, flagOverrides(c))
	if err != nil {
		return nil, "", err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, "", fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, path, nil
}

// getEnv returns the process Env, building it on first call.
func getEnv(c *cli.Context) (*Env, error) {
	if env, ok := c.App.Metadata[envKey].(*Env); ok {
		return env, nil
	}

	cfg, path, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	env, err := newEnv(cfg, path, streamsOf(c.App))
	if err != nil {
		return nil, err
	}
	c.App.Metadata[envKey] = env
	return env, nil
}

// closeEnv runs the Env's cleanup hooks when one was built.
func closeEnv(c *cli.Context) error {
	env, ok := c.App.Metadata[envKey].(*Env)
	if !ok {
		return nil
	}
	delete(c.App.Metadata, envKey)
	return env.Close()
}

func streamsOf(app *cli.App) Streams {
	return Streams{In: app.Reader, Out: app.Writer, Err: app.ErrWriter}
}

// newEnv wires the transport, credential store and session manager.
func newEnv(cfg *config.CLIConfig, path string, s Streams) (_ *Env, err error) {
	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: s.Err})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	e := &Env{
		Config:     cfg,
		ConfigPath: path,
		Streams:    s,
		Log:        log,
		Metrics:    metric.NewClientMetrics(),
		Tokens:     connection.NewTokenStore(),
		Shutdown:   shutdown.NewHandler(shutdownTimeout),
	}
	e.Shutdown.OnShutdown(func(context.Context) error {
		return e.Metrics.WriteTextfile(cfg.Metrics.Textfile)
	})
	defer func() {
		if err != nil {
			e.Shutdown.Shutdown()
		}
	}()

	api := cfg.EffectiveAPI()
	tlsCfg, certWatcher, err := tlsroots.ClientConfig(tlsroots.ClientOptions{
		CAFile:   api.CAFile,
		CertFile: api.CertFile,
		KeyFile:  api.KeyFile,
		Logger:   logger.Slog(log),
	})
	if err != nil {
		return nil, err
	}
	if certWatcher != nil {
		e.Shutdown.OnShutdown(func(context.Context) error {
			certWatcher.Stop()
			return nil
		})
	}

	userAgent := api.UserAgent
	if userAgent == "" {
		userAgent = buildinfo.UserAgent()
	}
	e.Client, err = connection.NewHTTPClient(connection.Config{
		BaseURL:   api.URL,
		Timeout:   api.Timeout,
		UserAgent: userAgent,
		RateLimit: api.RateLimit,
		TLSConfig: tlsCfg,
	}, e.Tokens, connection.WithLogger(log), connection.WithMetrics(e.Metrics))
	if err != nil {
		return nil, err
	}
	e.Services = service.New(e.Client)

	e.Store, err = credential.Open(credential.Options{
		Backend: cfg.Credential.Backend,
		Path:    cfg.CredentialPath(),
		Secret:  cfg.Credential.Secret,
	}, log)
	if err != nil {
		return nil, err
	}
	e.Shutdown.OnShutdown(func(context.Context) error { return e.Store.Close() })

	e.Session = session.NewManager(e.Tokens, e.Services.Auth, e.Store,
		session.WithLogger(log),
		session.WithMetrics(e.Metrics),
		session.WithExpiryCheck(cfg.Session.CheckExpiry),
	)

	log.Debug("client ready",
		"api", e.Client.BaseURL(),
		"profile", cfg.CurrentProfile,
		"store_backend", cfg.Credential.Backend)
	return e, nil
}

// Close releases the store and writes the metrics textfile.
func (e *Env) Close() error {
	return e.Shutdown.Shutdown()
}

// Restore bootstraps the saved session once per process.
func (e *Env) Restore(ctx context.Context) error {
	e.restoreOnce.Do(func() {
		e.restoreErr = e.Session.Bootstrap(ctx)
	})
	return e.restoreErr
}

// RequireSession restores the saved session and fails unless it holds a
// signed-in user.
func (e *Env) RequireSession(ctx context.Context) error {
	if err := e.Restore(ctx); err != nil {
		return failed(err, "Unable to restore session")
	}
	if !e.Session.IsAuthenticated() {
		return &userError{
			msg: "not signed in: run 'spot-cli login' first",
			err: session.ErrNotAuthenticated,
		}
	}
	return nil
}

// ctx is the request context for one action.
func (e *Env) ctx(c *cli.Context) context.Context {
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithLogger(ctx, e.Log)
	if c.Command != nil {
		ctx = logger.WithCommand(ctx, c.Command.FullName())
	}
	return ctx
}

// Render writes data in the format chosen by --output or the config.
func (e *Env) Render(c *cli.Context, data any) error {
	return render(c, e.Config, e.Streams.Out, data)
}

func render(c *cli.Context, cfg *config.CLIConfig, w io.Writer, data any) error {
	name := cfg.Output
	if v := c.String("output"); v != "" {
		name = v
	}
	format, err := output.ParseFormat(name)
	if err != nil {
		return err
	}

	var f output.Formatter = output.NewFormatter(format, c.Bool("wide"))
	if tf, ok := f.(*output.TableFormatter); ok {
		tf.NoHeaders = c.Bool("no-headers")
	}
	return f.Format(w, data)
}

// Printf writes a human message to stdout.
func (e *Env) Printf(format string, args ...any) {
	fmt.Fprintf(e.Streams.Out, format, args...)
}

// spin starts a spinner on stderr for table output only, so JSON and
// YAML stay clean on stdout.
func (e *Env) spin(c *cli.Context, message string) *output.Spinner {
	s := output.NewSpinner(e.Streams.Err, message)
	if e.format(c) == output.FormatTable && isTerminal(e.Streams.Err) {
		s.Start()
	}
	return s
}

// format is the output format in effect, table when unparsable.
func (e *Env) format(c *cli.Context) output.Format {
	name := e.Config.Output
	if v := c.String("output"); v != "" {
		name = v
	}
	f, err := output.ParseFormat(name)
	if err != nil {
		return output.FormatTable
	}
	return f
}
