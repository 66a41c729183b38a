// Service gateway bridges dashboard operators, the remote feed service and
// the sensor reading store of a PiCar-X vehicle.
//
//	@title			PiCar-X Gateway API
//	@version		1.0
//	@description	Command and telemetry gateway for the PiCar-X dashboard.
//	@host			localhost:8080
//	@BasePath		/
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/picarx/gateway/internal/config"
	"github.com/picarx/gateway/internal/db"
	"github.com/picarx/gateway/internal/feed"
	"github.com/picarx/gateway/internal/gateway"
	"github.com/picarx/gateway/internal/history"
	"github.com/picarx/gateway/internal/models"

	_ "github.com/picarx/gateway/docs/swagger" // generated swagger docs
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}

	cfg, err := config.LoadGateway(envFile)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	connCtx, connCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer connCancel()

	pool, err := db.Connect(connCtx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if !cfg.Feed.HasCredentials() {
		slog.Warn("feed credentials not set; commands and live reads will fail")
	}

	feeds := feed.NewClient(cfg.Feed)
	var publisher feed.Publisher = feeds
	if cfg.Feed.Transport == config.TransportMQTT {
		mq := feed.NewMQTTPublisher(cfg.Feed)
		if err := mq.Connect(); err != nil {
			slog.Warn("feed broker not connected yet", "broker", cfg.Feed.Broker, "error", err)
		}
		defer mq.Close()
		publisher = mq
	}

	readings := history.NewService(history.NewStore(pool), cfg.QueryTimeout)
	handler := gateway.NewHandler(gateway.New(feeds, publisher, readings, cfg))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// Health probes.
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		gateway.WriteJSON(w, http.StatusOK, models.HealthResponse{Status: "ok", Service: "gateway"})
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Healthy(r.Context(), pool); err != nil {
			gateway.WriteJSON(w, http.StatusServiceUnavailable,
				models.HealthResponse{Status: "unavailable", Service: "gateway"})
			return
		}
		// deep=1 also probes the feed service
		if r.URL.Query().Get("deep") == "1" {
			if err := feeds.Healthy(r.Context()); err != nil {
				slog.Warn("feed service not ready", "error", err)
				gateway.WriteJSON(w, http.StatusServiceUnavailable,
					models.HealthResponse{Status: "feed unavailable", Service: "gateway"})
				return
			}
		}
		gateway.WriteJSON(w, http.StatusOK, models.HealthResponse{Status: "ready", Service: "gateway"})
	})

	// API routes.
	handler.Routes(r)

	// Swagger UI.
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	if err := serve(cfg.Base, r); err != nil {
		slog.Error("server error", "error", err)
	}
}

// serve runs the HTTP server until SIGINT or SIGTERM, then drains in-flight
// requests.
func serve(cfg config.Base, handler http.Handler) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("gateway listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", srv.Addr, err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
