// Command backend runs the translation gateway.
//
//	@title			Polyglot Translation API
//	@version		1.0
//	@description	Machine translation gateway and inference service.
//	@BasePath		/
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"polyglot/backend/internal/config"
	"polyglot/backend/internal/db"
	"polyglot/backend/internal/handler"
	gh "polyglot/backend/internal/http"
	"polyglot/backend/internal/network"
	"polyglot/backend/internal/service"
	"polyglot/backend/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.LoadBackend()
	logger.Init(logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		logger.Error("load config", "module", "main", "action", "start", "result", "failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("backend stopped", "module", "main", "action", "run", "result", "failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Backend) error {
	if err := db.WaitForDatabase(ctx, cfg.DatabaseURL, db.WaitConfig{Attempts: cfg.DBRetries, Delay: cfg.DBRetryDelay}); err != nil {
		return err
	}

	translations, closeStore, err := openRepository(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer closeStore()

	clientFactory := network.NewClientFactory(network.StaticProxy(cfg.AIEndProxy))
	relay := service.NewRelayService(cfg.AIEndURL, clientFactory, translations)

	e := gh.NewBackendRouter(
		handler.NewTranslationHandler(relay),
		handler.NewHealthHandler(""),
		cfg.CORSOrigins,
		cfg.Swagger,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("backend listening", "module", "main", "action", "serve", "addr", cfg.Addr, "aiend_url", cfg.AIEndURL)
		if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("backend shutting down", "module", "main", "action", "shutdown")
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
