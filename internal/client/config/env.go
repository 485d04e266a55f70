package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with environment variables. A .env file in the
// working directory is loaded first (best effort, already-set variables win).
//
// Recognized variables:
//
//	BC_API_URL          backend base URL
//	BC_BRIDGE_ADDR      native bridge address
//	BC_DATABASE_PATH    local database path
//	BC_PING_INTERVAL    reachability probe interval (e.g. "3s")
//	BC_REQUEST_TIMEOUT  per-request deadline (e.g. "15s")
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("BC_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("BC_BRIDGE_ADDR"); v != "" {
		cfg.BridgeAddr = v
	}
	if v := os.Getenv("BC_DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("BC_PING_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.PingInterval = d
		}
	}
	if v := os.Getenv("BC_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
}
