package config

import (
	"fmt"
	"strings"
	"time"
)

// SessionStoreKind selects the session storage backend.
type SessionStoreKind string

const (
	// SessionStoreMemory keeps sessions in process memory (single replica).
	SessionStoreMemory SessionStoreKind = "memory"
	// SessionStoreRedis keeps sessions in Redis (shared across replicas).
	SessionStoreRedis SessionStoreKind = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionStoreKind.
func (k *SessionStoreKind) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "memory", "redis":
		*k = SessionStoreKind(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionStoreKind: %q (valid options: memory, redis)", v)
	}
}

const (
	defaultSessionTTL    = 8 * time.Hour
	minSessionTTL        = time.Minute
	defaultSweepInterval = time.Minute
)

// SessionConfig contains session storage configuration.
type SessionConfig struct {
	// Store selects the backend.
	Store SessionStoreKind `env:"SESSION_STORE" envDefault:"memory"`

	// TTL is how long a session lives after it is created or authenticated.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"8h"`

	// KeyPrefix namespaces Redis keys.
	KeyPrefix string `env:"SESSION_KEY_PREFIX" envDefault:"session:"`

	// SweepInterval controls how often expired in-memory sessions are evicted.
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"1m"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.Store == "" {
		s.Store = SessionStoreMemory
	}
	if s.TTL <= 0 {
		s.TTL = defaultSessionTTL
	}
	if s.TTL < minSessionTTL {
		s.TTL = minSessionTTL
	}
	if s.KeyPrefix == "" {
		s.KeyPrefix = "session:"
	}
	if s.SweepInterval <= 0 {
		s.SweepInterval = defaultSweepInterval
	}
}
