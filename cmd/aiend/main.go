// Command aiend loads the translation model and serves it over HTTP.
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
	"polyglot/backend/internal/handler"
	gh "polyglot/backend/internal/http"
	"polyglot/backend/internal/inference"
	"polyglot/backend/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.LoadAIEnd()
	logger.Init(logger.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("aiend stopped", "module", "main", "action", "run", "result", "failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.AIEnd) error {
	// the service never starts without a model
	engine, err := inference.Load(ctx, cfg.ModelPath)
	if err != nil {
		return err
	}

	e := gh.NewAIEndRouter(
		handler.NewInferenceHandler(engine),
		handler.NewHealthHandler(engine.Name()),
		cfg.CORSOrigins,
		cfg.Swagger,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("aiend listening", "module", "main", "action", "serve", "addr", cfg.Addr, "model", engine.Name())
		if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("aiend shutting down", "module", "main", "action", "shutdown")
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
