package api

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/semaphore"

	"tilt_maze/pkg/config"
)

type ctxKey int

const requestIDKey ctxKey = iota

// RequestID returns the id the middleware attached to ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// NewServer creates an HTTP server with all routes and middleware.
func NewServer(cfg config.ServerConfig, handlers *Handlers, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()

	// Concurrency limiter.
	sem := semaphore.NewWeighted(int64(cfg.MaxConcurrent))
	wrap := func(route string, h http.HandlerFunc) http.HandlerFunc {
		return withMiddleware(route, h, sem, cfg, logger)
	}

	// Routes.
	mux.HandleFunc("POST /api/v1/solve", wrap("solve", handlers.HandleSolve))
	mux.HandleFunc("GET /api/v1/health", wrap("health", handlers.HandleHealth))
	mux.HandleFunc("GET /api/v1/stats", wrap("stats", handlers.HandleStats))
	mux.Handle("GET /metrics", promhttp.Handler())

	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}

// ListenAndServe starts the server and blocks until shutdown signal.
func ListenAndServe(srv *http.Server, logger *slog.Logger) error {
	// Graceful shutdown on SIGTERM/SIGINT.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(stop)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

// statusRecorder keeps the status code for the access log and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withMiddleware wraps a handler with a request id, security headers,
// concurrency limiting, recovery, a timeout and the access log.
func withMiddleware(route string, handler http.HandlerFunc, sem *semaphore.Weighted, cfg config.ServerConfig, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Request id, kept from the caller when it is a UUID.
		id := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		// Security headers.
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Cache-Control", "no-store")

		// CORS.
		if cfg.CORSOrigin != "" {
			w.Header().Set("Access-Control-Allow-Origin", cfg.CORSOrigin)
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			elapsed := time.Since(start)
			requestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
			requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
			logger.Info("request",
				"request_id", id,
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"elapsed", elapsed.Round(time.Microsecond))
		}()

		// Concurrency limiter.
		if !sem.TryAcquire(1) {
			rejectedBusy.Inc()
			w.Header().Set("Retry-After", "1")
			writeError(rec, http.StatusServiceUnavailable, "service_unavailable", "", "")
			return
		}
		defer sem.Release(1)

		// Recovery.
		defer func() {
			if p := recover(); p != nil {
				logger.Error("panic", "request_id", id, "panic", p)
				writeError(rec, http.StatusInternalServerError, "internal_error", "", "")
			}
		}()

		// Request timeout.
		ctx, cancel := context.WithTimeout(r.Context(), cfg.RequestTimeout)
		defer cancel()
		ctx = context.WithValue(ctx, requestIDKey, id)

		handler(rec, r.WithContext(ctx))
	}
}
