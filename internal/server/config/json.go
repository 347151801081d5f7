package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/mpetrenko/linkfolio/internal/flagx"
	"github.com/mpetrenko/linkfolio/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "5s" and integer nanoseconds.
//
// Fields are pointers so a partial file only overlays the keys it actually
// contains; omitted keys keep their defaults. This struct is an intermediate
// DTO used only for reading JSON configuration files.
type JsonConfig struct {
	Addr               *string         `json:"address"`
	DatabaseDSN        *string         `json:"database_dsn"`
	StoreTimeout       *timex.Duration `json:"store_timeout"`
	MaxDBConns         *int            `json:"max_db_conns"`
	CORSAllowedOrigins *string         `json:"cors_allowed_origins"`
	LogLevel           *string         `json:"log_level"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path comes from the -c or -config command-line flags; when neither
// is set no JSON file is loaded. If the file cannot be read or contains
// invalid JSON, the function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.Addr != nil {
		config.Addr = *c.Addr
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.StoreTimeout != nil {
		config.StoreTimeout = time.Duration(c.StoreTimeout.Duration)
	}
	if c.MaxDBConns != nil {
		config.MaxDBConns = *c.MaxDBConns
	}
	if c.CORSAllowedOrigins != nil {
		config.CORSAllowedOrigins = *c.CORSAllowedOrigins
	}
	if c.LogLevel != nil {
		config.LogLevel = *c.LogLevel
	}
}
