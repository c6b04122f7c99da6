package config

import (
	"os"
	"path/filepath"
	"time"
)

// DirName is the per-user state directory under $HOME.
const DirName = ".spot"

// CLIConfig is the configuration for spot-cli.
type CLIConfig struct {
	API        APIConfig        `koanf:"api" yaml:"api"`
	Credential CredentialConfig `koanf:"credential" yaml:"credential"`
	Session    SessionConfig    `koanf:"session" yaml:"session"`
	Log        LogConfig        `koanf:"log" yaml:"log"`
	Metrics    MetricsConfig    `koanf:"metrics" yaml:"metrics"`
	REPL       REPLConfig       `koanf:"repl" yaml:"repl"`

	// Output is the default output format: table, json or yaml.
	Output string `koanf:"output" yaml:"output" validate:"oneof=table json yaml"`

	// Profiles are saved API endpoints; CurrentProfile overrides API.URL.
	Profiles       map[string]ProfileConfig `koanf:"profiles" yaml:"profiles,omitempty" validate:"dive"`
	CurrentProfile string                   `koanf:"current_profile" yaml:"current_profile,omitempty"`
}

// APIConfig configures the HTTP transport.
type APIConfig struct {
	URL       string        `koanf:"url" yaml:"url" validate:"required,url"`
	Timeout   time.Duration `koanf:"timeout" yaml:"timeout" validate:"min=1ms"`
	RateLimit float64       `koanf:"rate_limit" yaml:"rate_limit" validate:"min=0"`
	CAFile    string        `koanf:"ca_file" yaml:"ca_file,omitempty"`
	// CertFile and KeyFile are an optional client certificate.
	CertFile  string        `koanf:"cert_file" yaml:"cert_file,omitempty"`
	KeyFile   string        `koanf:"key_file" yaml:"key_file,omitempty"`
	UserAgent string        `koanf:"user_agent" yaml:"user_agent,omitempty"`
}

// CredentialConfig selects where the bearer token is persisted.
type CredentialConfig struct {
	Backend string `koanf:"backend" yaml:"backend" validate:"oneof=file badger memory"`
	Path    string `koanf:"path" yaml:"path,omitempty"`
	// Secret encrypts the token at rest. Prefer SPOT_CREDENTIAL_SECRET
	// over writing it to the file.
	Secret string `koanf:"secret" yaml:"secret,omitempty"`
}

// SessionConfig tunes session restore.
type SessionConfig struct {
	// CheckExpiry skips the profile fetch for saved JWTs that have expired.
	CheckExpiry bool `koanf:"check_expiry" yaml:"check_expiry"`
}

// LogConfig configures diagnostics on stderr.
type LogConfig struct {
	Level  string `koanf:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" yaml:"format" validate:"oneof=text json"`
}

// MetricsConfig enables a Prometheus textfile written on exit.
type MetricsConfig struct {
	Textfile string `koanf:"textfile" yaml:"textfile,omitempty"`
}

// REPLConfig configures interactive mode.
type REPLConfig struct {
	History string `koanf:"history" yaml:"history,omitempty"`
}

// ProfileConfig is a saved API endpoint.
type ProfileConfig struct {
	URL    string `koanf:"url" yaml:"url" validate:"required,url"`
	CAFile string `koanf:"ca_file" yaml:"ca_file,omitempty"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		API: APIConfig{
			URL:     "http://localhost:5000/api",
			Timeout: 15 * time.Second,
		},
		Credential: CredentialConfig{Backend: "file"},
		Session:    SessionConfig{CheckExpiry: true},
		Log:        LogConfig{Level: "warn", Format: "text"},
		Output:     "table",
		Profiles:   make(map[string]ProfileConfig),
	}
}

// Dir returns ~/.spot.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, DirName)
}

// DefaultConfigPath returns the default CLI config file path.
func DefaultConfigPath() string {
	return filepath.Join(Dir(), "cli.yaml")
}

// CredentialPath returns the configured credential location, or the
// backend's default under Dir.
func (c *CLIConfig) CredentialPath() string {
	if c.Credential.Path != "" {
		return c.Credential.Path
	}
	if c.Credential.Backend == "badger" {
		return filepath.Join(Dir(), "credential.db")
	}
	return filepath.Join(Dir(), "credential")
}

// HistoryPath returns the REPL history file.
func (c *CLIConfig) HistoryPath() string {
	if c.REPL.History != "" {
		return c.REPL.History
	}
	return filepath.Join(Dir(), "history")
}

// EffectiveAPI returns the API settings with the current profile applied.
func (c *CLIConfig) EffectiveAPI() APIConfig {
	api := c.API
	if p, ok := c.Profiles[c.CurrentProfile]; ok && c.CurrentProfile != "" {
		api.URL = p.URL
		if p.CAFile != "" {
			api.CAFile = p.CAFile
		}
	}
	return api
}
