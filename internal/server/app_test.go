package server

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/filmlog/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.StorageMode = config.StorageModeMemory
	c.SecretKey = "app-test-secret"
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.BcryptCost = 4
	c.ShutdownTimeout = time.Second
	return c
}

func stubOpenDB(t *testing.T, fn func(string) (*sql.DB, error)) {
	t.Helper()
	orig := openDB
	openDB = fn
	t.Cleanup(func() { openDB = orig })
}

func TestNewApp_Memory(t *testing.T) {
	var logs bytes.Buffer
	app, err := NewApp(context.Background(), memoryConfig(), &logs)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, logs.String(), "in-memory storage")
	assert.NoError(t, app.Close())
}

func TestNewApp_BadLogLevel(t *testing.T) {
	c := memoryConfig()
	c.LogLevel = "loud"
	_, err := NewApp(context.Background(), c, &bytes.Buffer{})
	assert.ErrorContains(t, err, "logger init error")
}

func TestNewApp_EmptySecret(t *testing.T) {
	c := memoryConfig()
	c.SecretKey = ""
	_, err := NewApp(context.Background(), c, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestNewApp_PostgresOpenError(t *testing.T) {
	stubOpenDB(t, func(string) (*sql.DB, error) { return nil, errors.New("bad dsn") })

	c := memoryConfig()
	c.StorageMode = config.StorageModePostgres
	_, err := NewApp(context.Background(), c, &bytes.Buffer{})
	assert.ErrorContains(t, err, "db init error")
}

func TestNewApp_PostgresPingError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectClose()
	stubOpenDB(t, func(string) (*sql.DB, error) { return db, nil })

	c := memoryConfig()
	c.StorageMode = config.StorageModePostgres
	_, err = NewApp(context.Background(), c, &bytes.Buffer{})
	assert.ErrorContains(t, err, "db ping error")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), memoryConfig(), &bytes.Buffer{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}
