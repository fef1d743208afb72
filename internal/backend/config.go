package backend

import "time"

// Config holds the connection settings for the storefront backend API.
type Config struct {
	// BaseURL is the backend host, e.g. "https://api.voicecart.example".
	BaseURL string

	// Timeout bounds every request to the backend.
	Timeout time.Duration
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrInvalidConfig
	}
	return nil
}

func (c *Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return 30 * time.Second
	}
	return c.Timeout
}
