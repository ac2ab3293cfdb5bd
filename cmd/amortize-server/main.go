package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwvelando/amortize/internal/cache"
	"github.com/iwvelando/amortize/internal/logging"
	"github.com/iwvelando/amortize/internal/server"
	"github.com/iwvelando/amortize/pkg/constants"
	"go.uber.org/zap"
)

var version = "dev"

// newCache picks the schedule cache for cfg: Redis when an address is
// configured, an in-memory cache otherwise, or none when disabled.
func newCache(ctx context.Context, cfg server.CacheConfig, logger *zap.Logger) (cache.Cache, func()) {
	if cfg.Disabled {
		return nil, func() {}
	}
	if cfg.RedisAddress == "" {
		return cache.NewMemoryCache(cfg.MaxEntries), func() {}
	}

	redisCache := cache.NewRedisCache(cfg.RedisAddress)
	if err := redisCache.Ping(ctx); err != nil {
		logger.Warn("redis unreachable, falling back to in-memory cache",
			zap.String("op", "main"),
			zap.String("address", cfg.RedisAddress),
			zap.Error(err),
		)
		_ = redisCache.Close()
		return cache.NewMemoryCache(cfg.MaxEntries), func() {}
	}
	return redisCache, func() {
		_ = redisCache.Close()
	}
}

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	address := flag.String("address", "", "listen address override")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}
	if *address != "" {
		cfg.Address = *address
	}

	logger, err := logging.NewLogger(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduleCache, closeCache := newCache(ctx, cfg.Cache, logger)
	defer closeCache()

	handler := server.NewHandler(logger, server.Options{
		MaxUploadSize: cfg.UploadSizeBytes(),
		MaxPeriods:    cfg.MaxPeriods,
		Version:       version,
		Cache:         scheduleCache,
		CacheTTL:      cfg.Cache.TTL,
	})

	if err := server.Serve(ctx, cfg, handler, logger); err != nil {
		logger.Fatal("server failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
