package config

import (
	"flag"
	"io"
	"strings"

	"github.com/dmitrijs2005/filmlog/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     HTTP bind address (e.g., ":8080")
//	-d string     PostgreSQL DSN
//	-m string     storage mode: postgres or memory
//	-s string     token signing secret
//	-t duration   session TTL (e.g., "24h")
//	-b int        bcrypt cost
//	-o string     comma-separated CORS origins
//	-l string     log level
//
// args is filtered with flagx.FilterArgs first, so flags owned by other
// loaders (-c, -config, -env) do not collide.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-m", "-s", "-t", "-b", "-o", "-l"})

	fs := flag.NewFlagSet("filmlog", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.StorageMode, "m", config.StorageMode, "storage mode (postgres|memory)")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.DurationVar(&config.SessionTTL, "t", config.SessionTTL, "session TTL")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	origins := fs.String("o", strings.Join(config.CORSAllowedOrigins, ","), "CORS allowed origins")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	config.CORSAllowedOrigins = splitList(*origins)
	config.StorageMode = strings.ToLower(config.StorageMode)
	return nil
}
