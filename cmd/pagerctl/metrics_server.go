package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sony/gobreaker"
)

// HealthResponse represents a simple health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

// BreakerHealthResponse reports the circuit breaker guarding the endpoint.
type BreakerHealthResponse struct {
	Healthy bool   `json:"healthy"`
	Circuit string `json:"circuit,omitempty"`
	State   string `json:"state"`
}

type metricsServer struct {
	server *http.Server
}

// newMetricsServer exposes:
//   - GET /metrics - Prometheus metrics
//   - GET /health - liveness, always 200
//   - GET /health/breaker - 503 while the endpoint's circuit is open
func newMetricsServer(addr string, health healthFunc) *metricsServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/health/breaker", breakerHealthHandler(health))

	return &metricsServer{server: &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}}
}

// run serves until ctx is canceled, then shuts down within 5 seconds.
func (s *metricsServer) run(ctx context.Context, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics server starting", slog.String("addr", s.server.Addr))
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown error", slog.Any("error", err))
		return err
	}
	logger.Info("metrics server stopped")
	return nil
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(HealthResponse{Status: "healthy"})
}

func breakerHealthHandler(health healthFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, state := health()
		resp := BreakerHealthResponse{
			Healthy: state != gobreaker.StateOpen,
			Circuit: name,
			State:   state.String(),
		}

		statusCode := http.StatusOK
		if !resp.Healthy {
			statusCode = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
