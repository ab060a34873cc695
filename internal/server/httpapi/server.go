package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/filmlog/internal/logging"
)

// Timeouts configure the underlying http.Server.
type Timeouts struct {
	ReadHeader time.Duration
	Read       time.Duration
	Write      time.Duration
	Shutdown   time.Duration
}

type Server struct {
	address  string
	handler  http.Handler
	logger   logging.Logger
	timeouts Timeouts

	// ready receives the bound address once listening; used by tests.
	ready chan string
}

func NewServer(address string, h http.Handler, l logging.Logger, t Timeouts) *Server {
	if t.ReadHeader <= 0 {
		t.ReadHeader = 10 * time.Second
	}
	if t.Shutdown <= 0 {
		t.Shutdown = 5 * time.Second
	}
	return &Server{
		address:  address,
		handler:  h,
		logger:   l.With("module", "http_server"),
		timeouts: t,
		ready:    make(chan string, 1),
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: s.timeouts.ReadHeader,
		ReadTimeout:       s.timeouts.Read,
		WriteTimeout:      s.timeouts.Write,
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeouts.Shutdown)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())
	s.ready <- listen.Addr().String()

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-stopped
}
