// Package config handles configuration for the client component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the CardKeep client.
//
// Fields:
//   - ServerEndpointAddr: base URL of the CardKeep server.
//   - DatabaseFile: path of the local SQLite file holding reminders.
//   - RequestTimeout: per-request timeout for server calls.
type Config struct {
	ServerEndpointAddr string
	DatabaseFile       string
	RequestTimeout     time.Duration
}

// LoadDefaults populates Config with sensible development defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://localhost:8080"
	c.DatabaseFile = "cardkeep.db"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
