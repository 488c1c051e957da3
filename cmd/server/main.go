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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"medical-sentiment/internal/analysis"
	"medical-sentiment/internal/config"
	"medical-sentiment/internal/platform/logging"
	"medical-sentiment/internal/platform/telegram"
	"medical-sentiment/internal/report"
	"medical-sentiment/internal/speech"
)

var (
	configFile string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Serve the patient sentiment and intent analysis API",
	Long: `Starts the HTTP API. Settings come from config.yaml, a .env file and
MSA_* environment variables; PORT overrides the listen port.

Example:
  server --config /etc/msa/config.yaml`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		logger, err = logging.New(cfg.Log.Level, cfg.Log.Format)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServer,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", os.Getenv("MSA_CONFIG_FILE"), "path to config.yaml")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRouter(cfg *config.Config, logger *zap.Logger, registry *prometheus.Registry) http.Handler {
	// 1. Clients
	var tgClient report.TelegramClient
	if cfg.Telegram.Enabled() {
		tgClient = telegram.NewClient(cfg.Telegram.Token, cfg.Telegram.BaseURL)
	} else {
		logger.Warn("telegram is not configured, report sharing is disabled")
	}

	var sttClient analysis.Transcriber
	if cfg.Speech.URL != "" {
		sttClient = speech.NewWhisperClient(cfg.Speech.URL, cfg.Speech.Timeout)
	} else {
		logger.Info("speech service is not configured, audio analysis is disabled")
	}

	// 2. Services
	reportSvc := report.NewService(logger.Named("report"), cfg.Report.FontPaths, tgClient, cfg.Telegram.ChatID)
	analysisSvc := analysis.NewService(logger.Named("analysis"), analysis.NewMetrics(registry), sttClient, reportSvc)
	analysisHandler := analysis.NewHandler(analysisSvc, logger.Named("http"), analysis.Limits{
		Request: cfg.Server.MaxRequestSize,
		Audio:   cfg.Server.MaxAudioSize,
	})

	// 3. Router
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"POST", "GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	analysis.RegisterRoutes(r, analysisHandler)
	return r
}

func runServer(cmd *cobra.Command, args []string) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           newRouter(cfg, logger, registry),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
	return nil
}
