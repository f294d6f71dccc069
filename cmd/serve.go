package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"loan-calculator/config"
	httpLayer "loan-calculator/http"
	"loan-calculator/repository"
	"loan-calculator/service"
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("config", "c", "", "Path to a TOML config file")
	serveCmd.Flags().String("addr", "", "Listen address (host:port), overrides the config")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web form and JSON API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	addr, _ := cmd.Flags().GetString("addr")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		if err := cfg.SetAddr(addr); err != nil {
			return fmt.Errorf("--addr: %w", err)
		}
	}

	logger := config.NewLogger(cfg.Log, os.Stderr)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cache, err := newCache(ctx, cfg.Cache, logger)
	if err != nil {
		return err
	}
	if cache != nil {
		defer cache.Close()
	}

	loanService := service.NewLoanService(cache, cfg.Cache.TTL.Duration, logger)
	srv := httpLayer.NewServer(httpLayer.NewLoanHandler(loanService, logger), logger)

	if cfg.Metrics.Enabled {
		srv.EnableMetrics()
	}
	if cfg.RateLimit.Enabled {
		rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Refill.Duration)
		defer rateLimiter.Stop()
		srv.SetRateLimiter(rateLimiter)
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
		IdleTimeout:  cfg.Server.IdleTimeout.Duration,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", server.Addr, "cache", cfg.Cache.Backend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("start server: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}

// newCache builds the configured cache. An unreachable Redis is not fatal:
// the service falls back to the in-memory cache.
func newCache(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) (repository.CacheRepository, error) {
	switch cfg.Backend {
	case "none":
		return nil, nil
	case "redis":
		cache, err := repository.NewRedisCache(ctx, cfg.RedisAddr, cfg.KeyPrefix)
		if err != nil {
			logger.Warn("redis unavailable, using in-memory cache", "addr", cfg.RedisAddr, "error", err)
			return repository.NewMemoryCache(cfg.MaxEntries), nil
		}
		logger.Info("connected to redis", "addr", cfg.RedisAddr)
		return cache, nil
	case "memory":
		return repository.NewMemoryCache(cfg.MaxEntries), nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
}
