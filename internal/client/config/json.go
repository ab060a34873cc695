package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/filmlog/internal/flagx"
	"github.com/dmitrijs2005/filmlog/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// RequestTimeout accepts "10s" as well as integer nanoseconds.
type JsonConfig struct {
	ServerURL      string         `json:"server_url"`
	Secret         string         `json:"secret"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

func configFile(args []string) string {
	return flagx.ConfigFileFlag(args)
}

// parseJSON overlays cfg with the non-empty values of the file at path.
func parseJSON(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.Secret != "" {
		cfg.Secret = jc.Secret
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}
