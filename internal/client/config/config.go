// Package config assembles runtime settings for the BarangayConnect client.
// Sources are applied in order: defaults, environment (including a local
// .env file), JSON config file, command-line flags. Later sources win.
package config

import "time"

// Config holds runtime settings for the client.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST service.
//   - BridgeAddr: address of the native HTTP bridge; empty selects the
//     in-process web client.
//   - DatabasePath: path of the local SQLite mirror.
//   - PingInterval: how often the client probes backend reachability.
//   - RequestTimeout: per-request deadline for the web transport.
type Config struct {
	APIBaseURL     string
	BridgeAddr     string
	DatabasePath   string
	PingInterval   time.Duration
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.BridgeAddr = ""
	c.DatabasePath = "barangayconnect.db"
	c.PingInterval = 3 * time.Second
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, a JSON file (if provided), and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
