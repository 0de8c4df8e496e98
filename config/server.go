package config

// ServerConfig defines the HTTP listener serving the UI and the JSON API.
type ServerConfig struct {
	Address string `json:"address"`
	// RateLimit is the sustained number of API requests per second. Zero
	// disables limiting.
	RateLimit      float64 `json:"rate_limit" validate:"gte=0"`
	RateLimitBurst int     `json:"rate_limit_burst" validate:"gte=0"`
	// ReadTimeoutSeconds bounds reading a request, headers included.
	ReadTimeoutSeconds     int `json:"read_timeout_seconds" validate:"gte=0"`
	ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds" validate:"gte=0"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
	if c.RateLimit > 0 && c.RateLimitBurst == 0 {
		c.RateLimitBurst = int(c.RateLimit*2) + 1
	}
	if c.ReadTimeoutSeconds == 0 {
		c.ReadTimeoutSeconds = 10
	}
	if c.ShutdownTimeoutSeconds == 0 {
		c.ShutdownTimeoutSeconds = 5
	}
}
