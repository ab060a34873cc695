package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/filmlog/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string     base URL of the API
//	-s string     payload signing secret
//	-t duration   per-request timeout
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-t"})

	fs := flag.NewFlagSet("filmlog-client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the server")
	fs.StringVar(&cfg.Secret, "s", cfg.Secret, "secret used to sign request payloads")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")

	return fs.Parse(args)
}
