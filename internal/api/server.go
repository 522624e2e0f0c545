package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/abhisek/adaptive/internal/observability"
	"github.com/abhisek/adaptive/internal/tutor"
)

// Options configures a Server.
type Options struct {
	Service *tutor.Service
	Metrics *observability.Metrics

	// Gatherer backs /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger

	RequestTimeout time.Duration

	// RateLimit is requests per second across all clients; zero disables it.
	RateLimit float64
	RateBurst int
}

// Server wires the tutor service to a gin router.
type Server struct {
	svc     *tutor.Service
	metrics *observability.Metrics
	logger  *slog.Logger
	router  *gin.Engine
}

// NewServer builds the router and registers all routes.
func NewServer(opts Options) *Server {
	s := &Server{
		svc:     opts.Service,
		metrics: opts.Metrics,
		logger:  opts.Logger,
	}
	if s.svc == nil {
		s.svc = tutor.NewService(tutor.Options{})
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(s.logger, s.metrics))
	if opts.RateLimit > 0 {
		r.Use(rateLimit(rate.NewLimiter(rate.Limit(opts.RateLimit), opts.RateBurst)))
	}
	if opts.RequestTimeout > 0 {
		r.Use(requestTimeout(opts.RequestTimeout))
	}

	r.GET("/", s.handleRoot)
	r.GET("/health", s.handleHealth)
	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	r.POST("/adaptive/next", s.handleNext)

	v1 := r.Group("/v1")
	{
		children := v1.Group("/children/:childId")
		children.POST("/attempts", s.handleRecordAttempt)
		children.GET("/decisions", s.handleDecisions)
	}

	s.router = r
	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully within shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", addr, err)
	case <-ctx.Done():
	}

	s.logger.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
