package main

import (
	"context"
	"log"

	"lotogen/internal"
	"lotogen/internal/config"
	"lotogen/internal/container"
	"lotogen/ui"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(cfg.Server.GinMode)
	logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))

	c, err := container.New(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create container: %v", err)
	}
	if err := c.Connect(context.Background()); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer c.Close()
	if err := c.Services(); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	generation := c.Generation
	if !c.Persistent() {
		generation = nil
	}
	server := ui.NewServer(c.Stats, generation, 0, logger)

	log.Printf("Starting Lotofácil reports on http://localhost:%s", cfg.Server.Port)
	log.Fatal(server.Start(":" + cfg.Server.Port))
}
