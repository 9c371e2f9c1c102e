package config

import (
	"strings"
	"time"
)

// Session store backends.
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// SessionConfig controls how browser sessions are persisted.
type SessionConfig struct {
	// Store selects the session store backend: "memory" or "redis".
	Store string `env:"SESSION_STORE" envDefault:"memory"`

	// TTL is the session lifetime.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"8h"`

	// KeyPrefix namespaces session keys in shared stores.
	KeyPrefix string `env:"SESSION_KEY_PREFIX" envDefault:"portfolio:session:"`
}

// Sanitize normalizes session configuration values.
func (s *SessionConfig) Sanitize() {
	s.Store = strings.ToLower(strings.TrimSpace(s.Store))
	if s.Store != SessionStoreRedis {
		s.Store = SessionStoreMemory
	}
	if s.TTL <= 0 {
		s.TTL = 8 * time.Hour
	}
}

// RedisConfig contains Redis connection settings.
// All fields are prefixed with REDIS_ in the environment.
type RedisConfig struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// Sanitize normalizes Redis configuration values.
func (r *RedisConfig) Sanitize() {
	r.Addr = strings.TrimSpace(r.Addr)
	if r.DB < 0 {
		r.DB = 0
	}
}
