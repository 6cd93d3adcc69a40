package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BubbleCoding/spellfinder/internal/config"
	"github.com/BubbleCoding/spellfinder/internal/db/sqlite"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/request"
	logpkg "github.com/BubbleCoding/spellfinder/internal/logger"
	"github.com/BubbleCoding/spellfinder/internal/metrics"
	facetrepo "github.com/BubbleCoding/spellfinder/internal/repository/facet"
	searchrepo "github.com/BubbleCoding/spellfinder/internal/repository/search"
	chiTransport "github.com/BubbleCoding/spellfinder/internal/transport/chi"
	facetuc "github.com/BubbleCoding/spellfinder/internal/usecase/facet"
	healthuc "github.com/BubbleCoding/spellfinder/internal/usecase/health"
	searchuc "github.com/BubbleCoding/spellfinder/internal/usecase/search"
	"github.com/BubbleCoding/spellfinder/internal/version"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP search API",
		Long: `Run the HTTP search API.

Endpoints:
  GET /api/spells   search (q, sort, page, per_page and one parameter per facet)
  GET /api/filters  facet option lists
  GET /health       database and schema checks
  GET /metrics      Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.HTTP.Port = port
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP port (overrides config)")

	return cmd
}

func runServe(ctx context.Context, cfg config.Config) error {
	env := config.GetEnv()

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting spellfinder API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_path", cfg.Database.Path),
	)

	store, err := sqlite.NewStore(ctx, sqlite.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		BusyTimeout:     cfg.Database.BusyTimeout(),
		EnrichBatchSize: cfg.Search.EnrichBatchSize,
	})
	if err != nil {
		return fmt.Errorf("create database store: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}
	logger.Info("Connected to database")

	// Search metrics are registered explicitly, HTTP metrics in init().
	metrics.RegisterSearchMetrics()

	searchSvc := searchuc.NewInstrumented(
		searchuc.New(searchrepo.New(store), searchuc.WithTimeout(cfg.Search.RequestTimeout())),
	)
	facetSvc := facetuc.New(facetrepo.New(store))
	healthSvc := healthuc.New(store, store)

	limits := request.Limits{
		DefaultPageSize: cfg.Search.DefaultPageSize,
		MaxPageSize:     cfg.Search.MaxPageSize,
	}
	server := chiTransport.NewServer(searchSvc, facetSvc, healthSvc, limits, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Router(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("Server stopped gracefully")
	return nil
}
