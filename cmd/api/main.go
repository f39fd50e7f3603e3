package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ewilliams-labs/soundalike/internal/adapters/rest"
	"github.com/ewilliams-labs/soundalike/internal/catalog"
	"github.com/ewilliams-labs/soundalike/internal/config"
	"github.com/ewilliams-labs/soundalike/internal/core/services"
	"github.com/ewilliams-labs/soundalike/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	// 1. Configuration: fail early if anything required is missing
	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Driven adapter: the catalog
	cat, closeCatalog, err := catalog.Open(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open catalog")
	}
	defer func() {
		if err := closeCatalog(); err != nil {
			logging.Error().Err(err).Msg("failed to close catalog")
		}
	}()

	// 3. Core service and driving adapter
	svc := services.NewRecommender(cat, catalog.RecommenderOptions(cfg))
	handler := rest.NewHandler(svc)

	// 4. Start the server
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", cfg.Server.Addr).Str("driver", cfg.Catalog.Driver).Msg("soundalike api listening")
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logging.Error().Err(err).Msg("server failed")
			stop()
			os.Exit(1)
		}
	case <-ctx.Done():
		logging.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Error().Err(err).Msg("shutdown error")
		}
	}
}
