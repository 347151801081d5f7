package config

import (
	"flag"
	"os"
	"time"

	"github.com/mpetrenko/linkfolio/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-t int      store timeout, seconds
//	-m int      max open DB connections
//	-o string   comma-separated CORS allowed origins
//	-l string   log level (debug, info, warn, error)
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with the -c/-config JSON flags.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t", "-m", "-o", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Addr, "a", config.Addr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")

	storeTimeout := fs.Int("t", int(config.StoreTimeout.Seconds()), "store timeout (in seconds)")

	fs.IntVar(&config.MaxDBConns, "m", config.MaxDBConns, "max open database connections")
	fs.StringVar(&config.CORSAllowedOrigins, "o", config.CORSAllowedOrigins, "CORS allowed origins (comma-separated)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.StoreTimeout = time.Duration(*storeTimeout) * time.Second
}
