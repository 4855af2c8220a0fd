package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/mikiasgoitom/better-form/compiler"
	"github.com/mikiasgoitom/better-form/middleware"
	"github.com/mikiasgoitom/better-form/server"
	"github.com/mikiasgoitom/better-form/watch"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the form's submission endpoint",
	Long: `Start an HTTP server that accepts submissions at the form's endpoint
and method, answering 200 with the validated record or 400 with the issues.
The configuration is watched and reloaded on change or on SIGHUP.

Routes:
  <method> <endpoint>   validate a submission
  GET /form/config      normalized configuration
  GET /form/schema      OpenAPI schema of the submission body
  GET /form/steps       step partition
  GET /metrics          Prometheus metrics
  GET /health           liveness

Examples:
  betterform serve -c signup.yaml --addr :8080`,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	h, err := watch.NewHolder(cfgFile, logger, compilerOptions()...)
	if err != nil {
		return reportError(w, err)
	}
	defer h.Stop()

	reg := prometheus.NewRegistry()
	metrics := middleware.NewMetrics(reg)
	metrics.ConfigFields.Set(float64(len(h.Get().Config().Fields)))
	h.OnChange(func(v *compiler.SubmissionValidator) {
		metrics.ConfigReloads.Inc()
		metrics.ConfigFields.Set(float64(len(v.Config().Fields)))
	})
	if err := h.WatchFile(); err != nil {
		return err
	}
	h.WatchSignals()

	srv := &http.Server{
		Addr:              serveAddr,
		Handler:           server.NewRouter(h, server.Config{Logger: logger, Metrics: metrics, Gatherer: reg}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", serveAddr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	cfg := h.Get().Config()
	fmt.Fprintf(w, "%s Serving %s %s on %s\n", checkMark, cfg.Method, server.EndpointPath(cfg.Endpoint), serveAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
