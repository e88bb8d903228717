// Package main - Entry point for the Aevi fee model HTTP server
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"aevi-fee/adapters/cache"
	"aevi-fee/adapters/ratecard"
	"aevi-fee/api"
	"aevi-fee/core/engine"
	"aevi-fee/core/regional"
	"aevi-fee/internal/config"
	"aevi-fee/internal/logging"
)

var version = "0.1.0"

func main() {
	if err := run(); err != nil {
		logging.Error("server stopped", zap.Error(err))
		logging.Sync()
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", config.DefaultPath(), "config file")
	addr := flag.String("addr", "", "server address (overrides config)")
	flag.Parse()

	config.LoadEnv()
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		return err
	}
	defer logging.Sync()

	var card *regional.RateCard
	if cfg.Pricing.RateCardPath != "" {
		if card, err = ratecard.NewLoader().LoadFile(cfg.Pricing.RateCardPath); err != nil {
			return err
		}
	}
	eng := engine.New(card, logging.Logger)

	store, err := newCache(cfg.Cache)
	if err != nil {
		return err
	}
	defer store.Close()

	server := api.NewServer(eng, api.Options{
		Version:     version,
		Currency:    cfg.Pricing.DefaultCurrency,
		CORSOrigins: cfg.Server.CORSOrigins,
		Cache:       store,
		CacheTTL:    time.Duration(cfg.Cache.TTLSeconds) * time.Second,
		Logger:      logging.With(zap.String("component", "api")),
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Listen(cfg.Server.Addr)
	}()

	logging.Sugar.Infof("Aevi fee model server v%s listening on %s (rate card %s)",
		version, cfg.Server.Addr, eng.RateCard().Version())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case s := <-sig:
		logging.Info("shutting down", zap.String("signal", s.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

func newCache(cfg config.CacheConfig) (cache.Cache, error) {
	if !cfg.Enabled {
		return cache.Noop{}, nil
	}
	if cfg.RedisAddr == "" {
		logging.Info("using in-memory response cache")
		return cache.NewMemoryCache(), nil
	}

	rc := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		rc.Close()
		return nil, err
	}
	logging.Info("using redis response cache", zap.String("addr", cfg.RedisAddr))
	return rc, nil
}
