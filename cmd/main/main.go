package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"

	"psutier/internal/config"
	"psutier/internal/reftable"
	serverhttp "psutier/server/http"
)

func main() {
	cfg := config.Load()
	logger := config.SetupLogger(cfg)

	store, err := reftable.Open(afero.NewOsFs(), cfg.TablePath, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.TablePath).Msg("reference table")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watchDone := make(chan struct{})
	if cfg.TableWatch {
		go func() {
			defer close(watchDone)
			if err := reftable.Watch(ctx, store, cfg.ReloadDebounce); err != nil {
				logger.Error().Err(err).Msg("table watch")
			}
		}()
	} else {
		close(watchDone)
	}

	r := serverhttp.NewRouter(cfg, logger, store)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info().Str("addr", cfg.Addr()).Str("table", cfg.TablePath).Msg("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	<-ctx.Done()
	logger.Info().Msg("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	<-watchDone
	logger.Info().Msg("bye")
}
