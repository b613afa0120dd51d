package config

import "time"

// APIConfig holds SpaceTraders API client configuration
type APIConfig struct {
	// Base URL for SpaceTraders API
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// Request timeout
	Timeout time.Duration `mapstructure:"timeout" validate:"positive_duration"`

	// Agent bearer token. Read from SPACE_TRADERS_TOKEN, SPACETRADERS_TOKEN
	// or ST_API_TOKEN; optional at load time so read-only commands still work.
	Token string `mapstructure:"token"`
}

// HasToken reports whether a bearer token was configured
func (c APIConfig) HasToken() bool {
	return c.Token != ""
}
