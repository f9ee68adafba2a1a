package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"book-review/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// APIServer serves router until ctx is cancelled, then shuts down gracefully
// within config.ShutdownTimeout. A nil return means a clean stop.
func APIServer(ctx context.Context, router http.Handler, config utils.AppConfig, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", config.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server starting", zap.String("addr", srv.Addr))
		err := srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-gCtx.Done()

		if ctx.Err() != nil {
			logger.Info("HTTP server stopping. reason: requested to stop")
		} else {
			logger.Info("HTTP server stopping. reason: errored at running")
		}

		sCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		err := srv.Shutdown(sCtx)
		switch {
		case err == nil:
			logger.Info("HTTP server graceful shutdown succeeded")
		case errors.Is(err, context.DeadlineExceeded):
			logger.Warn("HTTP server graceful shutdown timed out")
		default:
			logger.Warn("HTTP server graceful shutdown failed", zap.Error(err))
		}
		if err != nil {
			logger.Warn("HTTP server going to force shutdown", zap.Error(srv.Close()))
		}
		return nil
	})

	return g.Wait()
}
