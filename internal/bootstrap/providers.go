package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"btcwidget-service/internal/application"
	"btcwidget-service/internal/config"
	"btcwidget-service/internal/domain"
	"btcwidget-service/internal/infrastructure/httpx"
	"btcwidget-service/internal/infrastructure/logx"
	"btcwidget-service/internal/infrastructure/provider"
	redisstore "btcwidget-service/internal/infrastructure/redis"
	"btcwidget-service/internal/infrastructure/worker"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func ProvideLogger() *zap.Logger { return logx.L() }

func ProvideConfig() config.Config { return config.Load() }

func ProvideQuoteFetcher(cfg config.Config) (application.QuoteFetcher, error) {
	switch cfg.Provider {
	case "blockchain":
		// Zero timeout keeps the transport default.
		return &provider.BlockchainProvider{
			URL:    cfg.QuoteURL,
			Client: &httpx.Client{HTTP: &http.Client{Timeout: cfg.RequestTimeout}},
		}, nil
	case "fake":
		return provider.NewFake(domain.PreviewQuote), nil
	default:
		return nil, fmt.Errorf("unsupported PROVIDER=%q", cfg.Provider)
	}
}

func ProvideRedisClient(cfg config.Config) (*redis.Client, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return client, func() { _ = client.Close() }, nil
}

func ProvideTimelineStore(cfg config.Config, log *zap.Logger) (application.TimelineStore, func(), error) {
	switch cfg.TimelineBackend {
	case "redis":
		client, cleanup, err := ProvideRedisClient(cfg)
		if err != nil {
			return nil, func() {}, err
		}
		store := redisstore.New(client, log)
		store.Key = config.DefaultTimelineKey
		store.Channel = config.DefaultUpdatesChannel
		return store, cleanup, nil
	case "memory":
		return application.NewMemoryTimeline(nil), func() {}, nil
	default:
		return nil, func() {}, fmt.Errorf("unsupported TIMELINE_BACKEND=%q", cfg.TimelineBackend)
	}
}

func ProvideWidgetService(cfg config.Config, f application.QuoteFetcher, store application.TimelineStore, log *zap.Logger) *application.WidgetService {
	return application.NewWidgetService(f, store,
		application.WithRefreshInterval(cfg.RefreshInterval),
		application.WithPlaceholder(cfg.Placeholder),
		application.WithLogger(log),
	)
}

func ProvideWorker(svc *application.WidgetService, log *zap.Logger) application.Worker {
	return &worker.Refresher{Svc: svc, Log: log}
}

// Components is everything both binaries share.
type Components struct {
	Config  config.Config
	Log     *zap.Logger
	Service *application.WidgetService
}

func buildComponents(_ context.Context) (Components, func(), error) {
	cfg := ProvideConfig()
	log := ProvideLogger()
	if cfg.ConfigFile != "" {
		if err := cfg.LoadFile(cfg.ConfigFile); err != nil {
			return Components{}, func() {}, err
		}
	}
	fetcher, err := ProvideQuoteFetcher(cfg)
	if err != nil {
		return Components{}, func() {}, err
	}
	store, cleanup, err := ProvideTimelineStore(cfg, log)
	if err != nil {
		return Components{}, func() {}, err
	}
	svc := ProvideWidgetService(cfg, fetcher, store, log)
	return Components{Config: cfg, Log: log, Service: svc}, cleanup, nil
}
