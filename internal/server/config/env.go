package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from the environment. A .env file in the
// working directory is loaded first when present; real environment variables
// still win over .env entries (godotenv does not overwrite existing vars).
//
// Recognized variables: ADDRESS, DATABASE_DSN, STORE_TIMEOUT (Go duration
// string), MAX_DB_CONNS, CORS_ALLOWED_ORIGINS, LOG_LEVEL. Values that fail
// to parse are ignored so a typo cannot take the server down.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("ADDRESS"); v != "" {
		config.Addr = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("STORE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.StoreTimeout = d
		}
	}
	if v := os.Getenv("MAX_DB_CONNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.MaxDBConns = n
		}
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		config.CORSAllowedOrigins = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}
}
