// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"runtime/debug"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/artswipe/internal/api"
	"github.com/tomtom215/artswipe/internal/config"
	"github.com/tomtom215/artswipe/internal/logging"
	"github.com/tomtom215/artswipe/internal/metrics"
	"github.com/tomtom215/artswipe/internal/supervisor"
	"github.com/tomtom215/artswipe/internal/supervisor/services"
)

func newServeCmd(opts *globalOptions) *cobra.Command {
	var statsInterval time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the recommendation HTTP API under a supervisor tree.

The catalogue is loaded and the persisted swipe ledger restored before the
API reports ready; until then swipes and recommendations return 503. With catalogue.watch enabled the features file is
reloaded on change and trained models are retrained against it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg, statsInterval)
		},
	}

	cmd.Flags().DurationVar(&statsInterval, "stats-interval", services.DefaultStatsInterval, "how often engine gauges are published")
	return cmd
}

// runServer blocks until ctx is canceled and the supervisor tree has stopped.
func runServer(ctx context.Context, cfg *config.Config, statsInterval time.Duration) error {
	logger := logging.Logger()
	startTime := time.Now()

	logger.Info().
		Str("version", version).
		Str("features", cfg.Catalogue.FeaturesPath).
		Str("persistence", cfg.Persistence.Backend).
		Msg("Starting ArtSwipe with supervisor tree")
	metrics.SetAppInfo(version, goVersion(), startTime)

	if cfg.ShouldWarnAboutCORS() {
		logger.Warn().Msg("CORS allows any origin (CORS_ORIGINS=*); set explicit origins in production")
	}
	if cfg.Server.RateLimit == 0 {
		logger.Warn().Msg("rate limiting is disabled (RATE_LIMIT=0)")
	}

	rt, err := newRuntime(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := rt.close(); err != nil {
			logger.Error().Err(err).Msg("Error closing ledger store")
		}
	}()

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.Timeout + 5*time.Second
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(logger), treeCfg)
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	catalogueSvc := services.NewCatalogueService(rt.engine, catalogueServiceConfig(cfg), logger)
	tree.AddDataService(catalogueSvc)
	tree.AddDataService(services.NewStatsService(rt.engine, statsInterval, startTime, logger))

	middlewareCfg := api.DefaultChiMiddlewareConfig()
	middlewareCfg.CORSAllowedOrigins = cfg.Server.CORSOrigins
	middlewareCfg.RateLimitRequests = cfg.Server.RateLimit

	handler := api.NewHandler(rt.engine, catalogueSvc, cfg.Recommend.MaxLimit)
	router := api.NewRouter(handler, middlewareCfg, logger)

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	server := &http.Server{
		Addr:              addr,
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, addr, cfg.Server.Timeout, logger))

	logger.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	serveErr := <-errCh
	if errors.Is(serveErr, context.Canceled) {
		serveErr = nil
	}
	if serveErr != nil {
		logger.Error().Err(serveErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport() //nolint:errcheck // report only
	if len(unstopped) > 0 {
		logger.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logger.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logger.Info().Msg("Application stopped gracefully")
	return serveErr
}

func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}
