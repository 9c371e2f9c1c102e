package config

import (
	"strings"
	"time"
)

// BackendConfig contains connection settings for the portfolio backend API.
// All fields are prefixed with BACKEND_ in the environment.
type BackendConfig struct {
	// BaseURL is the root URL of the backend API.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:3000"`

	// Timeout bounds every outbound request to the backend.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`
}

// Sanitize normalizes backend configuration values.
func (b *BackendConfig) Sanitize() {
	b.BaseURL = strings.TrimRight(strings.TrimSpace(b.BaseURL), "/")
	if b.Timeout <= 0 {
		b.Timeout = 15 * time.Second
	}
}
