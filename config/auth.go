package config

import (
	"errors"
	"time"
)

const (
	defaultLookupTimeout = 10 * time.Second
	maxLookupTimeout     = time.Minute
)

// AuthConfig groups credential directory configuration.
type AuthConfig struct {
	// UsersFile is an optional YAML file listing directory users.
	// When empty, the built-in demo accounts are used.
	UsersFile string `env:"AUTH_USERS_FILE"`

	// DemoUsers allows falling back to the built-in demo accounts when no UsersFile is set.
	DemoUsers bool `env:"AUTH_DEMO_USERS" envDefault:"true"`

	// LookupTimeout bounds a single credential lookup.
	LookupTimeout time.Duration `env:"AUTH_LOOKUP_TIMEOUT" envDefault:"10s"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.LookupTimeout <= 0 {
		a.LookupTimeout = defaultLookupTimeout
	}
	if a.LookupTimeout > maxLookupTimeout {
		a.LookupTimeout = maxLookupTimeout
	}
}

// Validate ensures some user source is configured.
func (a *AuthConfig) Validate() error {
	if a.UsersFile == "" && !a.DemoUsers {
		return errors.New("AUTH_USERS_FILE is required when AUTH_DEMO_USERS=false")
	}
	return nil
}
