// Package app wires the room engine to its HTTP surface and runs the process.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	server "tilerooms/server"
	servernet "tilerooms/server/internal/net"
)

const defaultAddr = ":8000"

type Config struct {
	// Addr overrides the listen address; ROOM_ADDR wins over both.
	Addr   string
	Logger *log.Logger
}

// Run serves rooms until ctx is cancelled, then drains connections and
// returns.
func Run(ctx context.Context, cfg Config) error {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	addr := cfg.Addr
	if addr == "" {
		addr = defaultAddr
	}
	if env := os.Getenv("ROOM_ADDR"); env != "" {
		addr = env
	}

	hub := server.NewHub(logger)
	players := server.NewPlayerStore()
	handler := servernet.NewHTTPHandler(hub, players, servernet.HTTPHandlerConfig{
		Logger: logger,
	})

	srv := &http.Server{Addr: addr, Handler: handler}
	errCh := make(chan error, 1)
	go func() {
		logger.Printf("server listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
