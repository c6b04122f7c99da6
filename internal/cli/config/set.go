package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yndnr/spot-go/internal/core/domain"
)

// Set assigns the string value to key, parsing it for the key's type.
func Set(cfg *CLIConfig, key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "api.url":
		cfg.API.URL = value
	case "api.timeout":
		cfg.API.Timeout, err = time.ParseDuration(value)
	case "api.rate_limit":
		cfg.API.RateLimit, err = strconv.ParseFloat(value, 64)
	case "api.ca_file":
		cfg.API.CAFile = value
	case "api.cert_file":
		cfg.API.CertFile = value
	case "api.key_file":
		cfg.API.KeyFile = value
	case "api.user_agent":
		cfg.API.UserAgent = value
	case "credential.backend":
		cfg.Credential.Backend = value
	case "credential.path":
		cfg.Credential.Path = value
	case "credential.secret":
		cfg.Credential.Secret = value
	case "session.check_expiry":
		cfg.Session.CheckExpiry, err = strconv.ParseBool(value)
	case "log.level":
		cfg.Log.Level = value
	case "log.format":
		cfg.Log.Format = value
	case "metrics.textfile":
		cfg.Metrics.Textfile = value
	case "repl.history":
		cfg.REPL.History = value
	case "output":
		cfg.Output = value
	case "current_profile":
		cfg.CurrentProfile = value
	default:
		return domain.ErrValidation.WithDetails(fmt.Sprintf("unknown key %q", key))
	}
	if err != nil {
		return domain.ErrValidation.WithDetails(fmt.Sprintf("%s: %v", key, err)).WithCause(err)
	}
	return nil
}

// Get returns the value of key formatted as a string.
func Get(cfg *CLIConfig, key string) (string, error) {
	switch strings.ToLower(key) {
	case "api.url":
		return cfg.API.URL, nil
	case "api.timeout":
		return cfg.API.Timeout.String(), nil
	case "api.rate_limit":
		return strconv.FormatFloat(cfg.API.RateLimit, 'g', -1, 64), nil
	case "api.ca_file":
		return cfg.API.CAFile, nil
	case "api.cert_file":
		return cfg.API.CertFile, nil
	case "api.key_file":
		return cfg.API.KeyFile, nil
	case "api.user_agent":
		return cfg.API.UserAgent, nil
	case "credential.backend":
		return cfg.Credential.Backend, nil
	case "credential.path":
		return cfg.CredentialPath(), nil
	case "credential.secret":
		if cfg.Credential.Secret == "" {
			return "", nil
		}
		return "***", nil
	case "session.check_expiry":
		return strconv.FormatBool(cfg.Session.CheckExpiry), nil
	case "log.level":
		return cfg.Log.Level, nil
	case "log.format":
		return cfg.Log.Format, nil
	case "metrics.textfile":
		return cfg.Metrics.Textfile, nil
	case "repl.history":
		return cfg.HistoryPath(), nil
	case "output":
		return cfg.Output, nil
	case "current_profile":
		return cfg.CurrentProfile, nil
	default:
		return "", domain.ErrValidation.WithDetails(fmt.Sprintf("unknown key %q", key))
	}
}
