package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cargahoraria/internal/api"
	"cargahoraria/internal/config"
	"cargahoraria/internal/container"
	"cargahoraria/internal/logging"

	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", os.Getenv("CARGA_CONFIG"), "path to a YAML config file")
	flag.Parse()

	// Load environment variables from .env file
	envErr := godotenv.Load()

	appConfig, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New("api", logging.Options{
		Level:  appConfig.Logging.Level,
		Format: appConfig.Logging.Format,
	})
	if envErr != nil {
		logger.Debug().Msg("no .env file found, using system environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appContainer, err := container.New(ctx, appConfig, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create application container")
	}
	defer appContainer.Close()

	server := api.NewServer(appContainer.Schedules, logger)
	httpServer := &http.Server{
		Addr:              ":" + appConfig.Server.Port,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", httpServer.Addr).
			Str("workbook", appContainer.Schedules.Workbook()).
			Bool("store", appContainer.Store != nil).
			Msg("server starting")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal().Err(err).Msg("server failed")
		}
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
