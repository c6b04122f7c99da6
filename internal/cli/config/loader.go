package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yndnr/spot-go/internal/core/domain"
	"github.com/yndnr/spot-go/internal/infra/confloader"
)

// Keys lists every scalar configuration key.
var Keys = []string{
	"api.url",
	"api.timeout",
	"api.rate_limit",
	"api.ca_file",
	"api.cert_file",
	"api.key_file",
	"api.user_agent",
	"credential.backend",
	"credential.path",
	"credential.secret",
	"session.check_expiry",
	"log.level",
	"log.format",
	"metrics.textfile",
	"repl.history",
	"output",
	"current_profile",
}

// DotEnvFile is read from the working directory when present.
const DotEnvFile = ".env"

// Load builds the configuration from defaults, the YAML file at path, a
// .env file, SPOT_* variables and finally overrides (command-line flags,
// keyed like "api.url"). A missing file is not an error.
func Load(path string, overrides map[string]any) (*CLIConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	l := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithDotEnv(DotEnvFile),
		confloader.WithKnownKeys(Keys...),
	)
	if err := l.LoadMap(defaultValues()); err != nil {
		return nil, err
	}

	cfg := &CLIConfig{}
	if err := l.Load(cfg); err != nil {
		return nil, err
	}

	if len(overrides) > 0 {
		if err := l.LoadMap(overrides); err != nil {
			return nil, err
		}
		if err := l.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("apply flags: %w", err)
		}
	}

	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]ProfileConfig)
	}
	return cfg, nil
}

func defaultValues() map[string]any {
	d := Default()
	return map[string]any{
		"api.url":              d.API.URL,
		"api.timeout":          d.API.Timeout.String(),
		"api.rate_limit":       d.API.RateLimit,
		"credential.backend":   d.Credential.Backend,
		"session.check_expiry": d.Session.CheckExpiry,
		"log.level":            d.Log.Level,
		"log.format":           d.Log.Format,
		"output":               d.Output,
	}
}

// Validate checks cfg for values the CLI cannot run with.
func Validate(cfg *CLIConfig) error {
	if err := domain.Validate(cfg); err != nil {
		return err
	}
	if cfg.CurrentProfile != "" {
		if _, ok := cfg.Profiles[cfg.CurrentProfile]; !ok {
			return domain.ErrValidation.WithDetails(fmt.Sprintf("current_profile %q is not a saved profile", cfg.CurrentProfile))
		}
	}
	return nil
}

// Save writes cfg as YAML readable only by the owner.
func Save(cfg *CLIConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
