package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/GriffinCanCode/LuminOS/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/LuminOS/backend/internal/infrastructure/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Flags override environment variables
	flag.StringVar(&cfg.Server.Port, "port", cfg.Server.Port, "Server port")
	flag.StringVar(&cfg.Server.Host, "host", cfg.Server.Host, "Listen address")
	flag.StringVar(&cfg.Storage.Driver, "storage", cfg.Storage.Driver, "Record store driver (memory, sqlite, postgres)")
	flag.StringVar(&cfg.Storage.DSN, "storage-dsn", cfg.Storage.DSN, "Record store DSN")
	flag.StringVar(&cfg.KV.Driver, "kv", cfg.KV.Driver, "KV driver (memory, sqlite, consul)")
	flag.StringVar(&cfg.KV.DSN, "kv-dsn", cfg.KV.DSN, "KV DSN")
	flag.StringVar(&cfg.Apps.Dir, "apps", cfg.Apps.Dir, "Directory of extra app manifests")
	flag.BoolVar(&cfg.Logging.Development, "dev", cfg.Logging.Development, "Development logging")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.NewServer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Run()
	}()

	select {
	case <-ctx.Done():
		log.Println("Shutting down gracefully...")
	case err := <-errChan:
		if err != nil {
			log.Printf("Server error: %v", err)
		}
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		log.Printf("Error during shutdown: %v", err)
		os.Exit(1)
	}
}
