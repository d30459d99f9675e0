package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/config"
	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/platform/apiclient"
	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/platform/metrics"
	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/platform/middleware"
	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/state"
	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/viewer"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "patientor",
		Short:        "Patient records viewer",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("api-url", "", "Patient service base URL (overrides API_BASE_URL)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(pingCmd())
	rootCmd.AddCommand(patientsCmd())
	rootCmd.AddCommand(entriesCmd())
	return rootCmd
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the patient records viewer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd)
		},
	}
}

// loadConfig reads the configuration and applies the --api-url override.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if u, _ := cmd.Flags().GetString("api-url"); u != "" {
		cfg.APIBaseURL = strings.TrimRight(u, "/")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, w io.Writer) zerolog.Logger {
	lvl, err := cfg.Level()
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	if cfg.IsDev() {
		return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(lvl).With().Timestamp().Logger()
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

func runServer(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg, os.Stdout)

	collector := metrics.NewCollector()
	client, err := apiclient.New(cfg.APIBaseURL,
		apiclient.WithTimeout(cfg.APITimeout),
		apiclient.WithLogger(logger),
		apiclient.WithObserver(collector.ObserveUpstream),
	)
	if err != nil {
		return err
	}

	e, err := newServer(cfg, logger, client, collector)
	if err != nil {
		return err
	}

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("api", cfg.APIBaseURL).Msg("starting viewer")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

// newServer wires the store, the loader and the HTTP surface around svc and
// runs the initial load.
func newServer(cfg *config.Config, logger zerolog.Logger, svc viewer.PatientService, collector *metrics.Collector) (*echo.Echo, error) {
	store := state.NewStore(state.WithLogger(logger))
	store.Subscribe(func(a state.Action, _, next state.State) {
		collector.ObserveDispatch(string(a.Type()), len(next.Patients), len(next.DiagnosisList))
	})

	loader := viewer.NewLoader(svc, store, logger)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.APITimeout)
	loader.LoadInitial(ctx)
	cancel()

	renderer, err := viewer.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.HTTPErrorHandler = viewer.ErrorHandler(logger)

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(collector.Middleware())
	e.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	if cfg.RateLimitBurst > 0 {
		e.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimitRPS,
			BurstSize:         cfg.RateLimitBurst,
		}))
	}
	e.Use(middleware.Sanitize(logger))
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	e.Use(echomw.GzipWithConfig(echomw.GzipConfig{
		Skipper: func(c echo.Context) bool { return c.Path() == "/metrics" },
	}))

	e.StaticFS("/static", viewer.StaticFS())
	e.GET("/metrics", echo.WrapHandler(collector.Handler()))

	viewer.NewHandler(loader, store, logger,
		viewer.WithPageSize(cfg.PageSize),
		viewer.WithResetOnSubmit(cfg.ResetSelectorOnSubmit),
	).RegisterRoutes(e)

	return e, nil
}
