package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hpcops/slurmtopo/internal/generator"
)

// Serve runs the generator as a long-lived daemon.
//
// The daemon performs an initial generation run immediately, then
// regenerates on the configured interval. Prometheus metrics and a health
// endpoint are served on listenAddr. A failed run is logged and counted but
// does not stop the daemon; the previous artifacts stay in place.
func Serve(ctx context.Context, configPath, listenAddr string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	metrics := generator.NewMetrics(registry)

	gen, err := buildGenerator(ctx, log, cfg, metrics)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	server := &http.Server{
		Addr:              listenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("serving metrics", "addr", listenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	if err := gen.Run(ctx); err != nil {
		log.Error(err, "initial generation failed")
	}

	ticker := time.NewTicker(cfg.GenerateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("failed to shut down metrics server: %w", err)
			}
			return nil
		case err := <-errCh:
			return fmt.Errorf("metrics server failed: %w", err)
		case <-ticker.C:
			if err := gen.Run(ctx); err != nil {
				log.Error(err, "generation failed")
			}
		}
	}
}
