package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/filmlog/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "1s" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. Zero values leave the current setting untouched.
type JsonConfig struct {
	EndpointAddrHTTP   string         `json:"endpoint_addr_http"`
	DatabaseDSN        string         `json:"database_dsn"`
	StorageMode        string         `json:"storage_mode"`
	SecretKey          string         `json:"secret_key"`
	SessionTTL         timex.Duration `json:"session_ttl"`
	BcryptCost         int            `json:"bcrypt_cost"`
	CORSAllowedOrigins []string       `json:"cors_allowed_origins"`
	LogLevel           string         `json:"log_level"`
	ReadTimeout        timex.Duration `json:"read_timeout"`
	WriteTimeout       timex.Duration `json:"write_timeout"`
	ShutdownTimeout    timex.Duration `json:"shutdown_timeout"`
}

// parseJSON overlays the JSON file at path (from -c / -config) onto config.
// An empty path loads nothing.
func parseJSON(config *Config, path string) error {

	// nothing to load
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return err
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.StorageMode, c.StorageMode)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogLevel, c.LogLevel)
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if len(c.CORSAllowedOrigins) > 0 {
		config.CORSAllowedOrigins = c.CORSAllowedOrigins
	}
	if c.SessionTTL.Duration != 0 {
		config.SessionTTL = c.SessionTTL.Duration
	}
	if c.ReadTimeout.Duration != 0 {
		config.ReadTimeout = c.ReadTimeout.Duration
	}
	if c.WriteTimeout.Duration != 0 {
		config.WriteTimeout = c.WriteTimeout.Duration
	}
	if c.ShutdownTimeout.Duration != 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
