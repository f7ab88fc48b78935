package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"deal-engine/config"
	httpLayer "deal-engine/http"
	"deal-engine/logger"
	"deal-engine/repository"
	"deal-engine/service"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "watch" {
		os.Exit(watchMain(os.Args[2:]))
	}

	cfg, err := config.Load()
	if err != nil {
		logger.NewStructured("error", "console").Error("failed to load config", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	var (
		cache       repository.CacheRepository
		comparisons repository.ComparisonRepository
	)
	if cfg.Redis.Enabled {
		client, err := repository.NewRedisClient(context.Background(), repository.RedisOptions{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.WithError(err).Error("failed to connect to redis", map[string]interface{}{"address": cfg.Redis.Address})
			os.Exit(1)
		}
		defer client.Close()

		cache = repository.NewRedisCache(client, config.GetDuration(cfg.Cache.TTL))
		comparisons = repository.NewRedisComparisonRepository(client, config.GetDuration(cfg.Cache.ComparisonTTL))
	} else {
		cache = repository.NewMemoryCache()
		comparisons = repository.NewComparisonRepositoryMemory()
	}

	engine := service.NewEngine(cfg.Assumptions)
	worksheetService := service.NewWorksheetService(engine, cache, log)
	comparisonService := service.NewComparisonService(comparisons, engine, log)

	validator, err := httpLayer.NewValidator()
	if err != nil {
		log.WithError(err).Error("failed to compile request schemas", nil)
		os.Exit(1)
	}

	worksheetHandler := httpLayer.NewWorksheetHandler(worksheetService, validator, log)
	comparisonHandler := httpLayer.NewComparisonHandler(comparisonService, validator, log)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, config.GetDuration(cfg.RateLimit.Window))
	defer rateLimiter.Stop()

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      httpLayer.NewRouter(worksheetHandler, comparisonHandler, rateLimiter, log),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
		IdleTimeout:  4 * config.GetDuration(cfg.Server.ReadTimeout),
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("deal engine listening", map[string]interface{}{
			"addr":  cfg.Server.Addr,
			"redis": cfg.Redis.Enabled,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.WithError(err).Error("error starting server", nil)
		return
	case <-quit:
		log.Info("shutting down server", nil)
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("error during server shutdown", nil)
	}

	log.Info("server exited", nil)
}
