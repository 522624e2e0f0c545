package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/adaptive/internal/adaptive"
	"github.com/abhisek/adaptive/internal/api"
	"github.com/abhisek/adaptive/internal/observability"
	"github.com/abhisek/adaptive/internal/tutor"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the decision engine HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}
		metricsAddr, _ := cmd.Flags().GetString("metrics-addr")

		logger := cfg.Log.NewLogger(os.Stderr)
		gin.SetMode(gin.ReleaseMode)

		engine, err := adaptive.NewEngine(cfg.Tuning)
		if err != nil {
			return err
		}
		cur, err := loadCurriculum(cfg)
		if err != nil {
			return err
		}

		s, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics := observability.NewMetrics(reg)

		svc := tutor.NewService(tutor.Options{
			Engine:     engine,
			Curriculum: cur,
			Attempts:   s.AttemptRepo(),
			Decisions:  s.DecisionRepo(),
			Metrics:    metrics,
			Logger:     logger,
			Window:     cfg.History.Window,
		})

		opts := api.Options{
			Service:        svc,
			Metrics:        metrics,
			Logger:         logger,
			RequestTimeout: cfg.Server.RequestTimeout,
			RateLimit:      cfg.Server.RateLimit,
			RateBurst:      cfg.Server.RateBurst,
		}
		if metricsAddr == "" {
			opts.Gatherer = reg
		}
		server := api.NewServer(opts)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return server.ListenAndServe(gctx, cfg.Server.Addr, cfg.Server.ShutdownTimeout)
		})
		if metricsAddr != "" {
			g.Go(func() error {
				return serveMetrics(gctx, metricsAddr, reg, cfg.Server.ShutdownTimeout)
			})
		}

		logger.Info("adaptive engine started",
			"addr", cfg.Server.Addr,
			"metrics_addr", metricsAddr,
			"window", cfg.History.Window,
			"subjects", cur.Subjects(),
		)
		if err := g.Wait(); err != nil {
			return err
		}
		logger.Info("adaptive engine stopped")
		return nil
	},
}

// serveMetrics exposes reg on a dedicated listener until ctx is done.
func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry, shutdownTimeout time.Duration) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return fmt.Errorf("metrics listener on %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides config and ADAPTIVE_ADDR)")
	serveCmd.Flags().String("metrics-addr", "", "Serve /metrics on a separate address instead of the API listener")
}
