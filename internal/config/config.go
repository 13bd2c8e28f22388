// Package config loads runtime settings for the Authify CLI.
package config

import "time"

// Config holds runtime settings for the Authify CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the backend REST API.
//   - RequestTimeout: per-request timeout for API calls.
//   - StateFile: where the client persists its cookie state; empty means
//     the conventional per-user location is used.
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
	StateFile          string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://localhost:8080/api/v1.0"
	c.RequestTimeout = 10 * time.Second
	c.StateFile = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
