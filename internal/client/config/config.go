package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the filmlog CLI.
type Config struct {
	ServerURL      string
	Secret         string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.Secret = ""
	c.RequestTimeout = 10 * time.Second
}

// Load builds a Config from defaults, the JSON file named in args, and args
// themselves, in that order.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, configFile(args)); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
