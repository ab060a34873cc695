package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "FILMLOG_"

// defaultEnvFile is read when present and no -env flag is given.
const defaultEnvFile = ".env"

// lookupEnv is a seam for tests.
var lookupEnv = os.LookupEnv

// parseEnv overlays values from a dotenv file and the process environment.
// Real environment variables win over the file. Keys:
//
//	FILMLOG_ADDRESS, FILMLOG_DATABASE_DSN, FILMLOG_STORAGE_MODE,
//	FILMLOG_SECRET_KEY, FILMLOG_SESSION_TTL, FILMLOG_BCRYPT_COST,
//	FILMLOG_CORS_ALLOWED_ORIGINS (comma separated), FILMLOG_LOG_LEVEL,
//	FILMLOG_READ_TIMEOUT, FILMLOG_WRITE_TIMEOUT, FILMLOG_SHUTDOWN_TIMEOUT
func parseEnv(cfg *Config, envFile string) error {
	vars, err := readEnvFile(envFile)
	if err != nil {
		return err
	}

	get := func(key string) (string, bool) {
		if v, ok := lookupEnv(envPrefix + key); ok {
			return v, true
		}
		v, ok := vars[envPrefix+key]
		return v, ok
	}

	if v, ok := get("ADDRESS"); ok {
		cfg.EndpointAddrHTTP = v
	}
	if v, ok := get("DATABASE_DSN"); ok {
		cfg.DatabaseDSN = v
	}
	if v, ok := get("STORAGE_MODE"); ok {
		cfg.StorageMode = strings.ToLower(v)
	}
	if v, ok := get("SECRET_KEY"); ok {
		cfg.SecretKey = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := get("CORS_ALLOWED_ORIGINS"); ok {
		cfg.CORSAllowedOrigins = splitList(v)
	}
	if v, ok := get("BCRYPT_COST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sBCRYPT_COST: %w", envPrefix, err)
		}
		cfg.BcryptCost = n
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"SESSION_TTL", &cfg.SessionTTL},
		{"READ_TIMEOUT", &cfg.ReadTimeout},
		{"WRITE_TIMEOUT", &cfg.WriteTimeout},
		{"SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		v, ok := get(d.key)
		if !ok {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, d.key, err)
		}
		*d.dst = parsed
	}
	return nil
}

// readEnvFile loads path, or the default .env if path is empty. A missing
// default file is not an error; a missing explicit one is.
func readEnvFile(path string) (map[string]string, error) {
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	return vars, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
