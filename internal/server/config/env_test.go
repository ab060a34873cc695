package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllKeys(t *testing.T) {
	stubEnv(t, map[string]string{
		"FILMLOG_ADDRESS":              ":9000",
		"FILMLOG_DATABASE_DSN":         "postgres://x",
		"FILMLOG_STORAGE_MODE":         "MEMORY",
		"FILMLOG_SECRET_KEY":           "s3cr3t",
		"FILMLOG_SESSION_TTL":          "90m",
		"FILMLOG_BCRYPT_COST":          "12",
		"FILMLOG_CORS_ALLOWED_ORIGINS": "http://a.io,,http://b.io ",
		"FILMLOG_LOG_LEVEL":            "warn",
		"FILMLOG_READ_TIMEOUT":         "1s",
		"FILMLOG_WRITE_TIMEOUT":        "2s",
		"FILMLOG_SHUTDOWN_TIMEOUT":     "3s",
	})

	var cfg Config
	require.NoError(t, parseEnv(&cfg, writeTempFile(t, "empty.env", "")))

	want := Config{
		EndpointAddrHTTP:   ":9000",
		DatabaseDSN:        "postgres://x",
		StorageMode:        StorageModeMemory,
		SecretKey:          "s3cr3t",
		SessionTTL:         90 * time.Minute,
		BcryptCost:         12,
		CORSAllowedOrigins: []string{"http://a.io", "http://b.io"},
		LogLevel:           "warn",
		ReadTimeout:        time.Second,
		WriteTimeout:       2 * time.Second,
		ShutdownTimeout:    3 * time.Second,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEnv_FileOnly(t *testing.T) {
	stubEnv(t, nil)
	path := writeTempFile(t, "app.env", "# comment\nFILMLOG_SECRET_KEY=\"quoted value\"\nOTHER=ignored\n")

	var cfg Config
	cfg.LoadDefaults()
	require.NoError(t, parseEnv(&cfg, path))

	assert.Equal(t, "quoted value", cfg.SecretKey)
	assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
}

func TestParseEnv_BadValues(t *testing.T) {
	for key, val := range map[string]string{
		"FILMLOG_BCRYPT_COST": "ten",
		"FILMLOG_SESSION_TTL": "a day",
	} {
		t.Run(key, func(t *testing.T) {
			stubEnv(t, map[string]string{key: val})
			var cfg Config
			err := parseEnv(&cfg, writeTempFile(t, "e.env", ""))
			assert.ErrorContains(t, err, key)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a , ,b"))
	assert.Nil(t, splitList(""))
}
