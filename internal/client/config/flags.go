package config

import (
	"flag"
	"os"
	"time"

	"barangayconnect/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the backend REST service
//	-b string   native bridge address (empty selects the web client)
//	-d string   local database path
//	-i int      reachability probe interval in seconds
//
// Args are filtered with flagx.FilterArgs so flags owned by other packages
// do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-b", "-d", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend REST service")
	fs.StringVar(&cfg.BridgeAddr, "b", cfg.BridgeAddr, "native bridge address")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	pingInterval := fs.Int("i", int(cfg.PingInterval.Seconds()), "reachability probe interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.PingInterval = time.Duration(*pingInterval) * time.Second
}
