package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lotogen/adapters/api"
	"lotogen/internal"
	"lotogen/internal/config"
	"lotogen/internal/container"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := container.New(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create container: %v", err)
	}
	if err := c.Connect(ctx); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer c.Close()
	if err := c.Services(); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	filterCfg := cfg.Filter
	handler := api.NewServer(api.Deps{
		Generation: c.Generation,
		Stats:      c.Stats,
		Defaults:   cfg.Generator,
		Filter:     &filterCfg,
		Persist:    c.Persistent(),
		Logger:     logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.APIPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("Starting API server on %s (persistence: %v)", srv.Addr, c.Persistent())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("Server failed:", err)
	}
}
