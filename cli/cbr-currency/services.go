package main

import (
	"context"
	"log/slog"
	"os"

	currency "github.com/malusev998/cbr-currency"
	"github.com/malusev998/cbr-currency/chart"
	"github.com/malusev998/cbr-currency/fetchers"
	"github.com/malusev998/cbr-currency/services"
	"github.com/malusev998/cbr-currency/storage"
)

func createStorage(ctx context.Context, config *Config) (currency.Storage, error) {
	provider, storageConfig, err := config.storageConfig()

	if err != nil {
		return nil, err
	}

	return storage.NewStorage(ctx, provider, storageConfig)
}

func createService(config *Config, st currency.Storage, logger *slog.Logger, show bool) *services.Service {
	var presenter chart.Presenter = chart.BrowserPresenter{}

	if !show {
		presenter = chart.NopPresenter{}
	}

	return services.New(services.Config{
		Fetcher: fetchers.NewCBRFetcher(fetchers.Config{
			URL:     config.Feed.URL,
			Timeout: config.Feed.Timeout,
			Logger:  logger,
		}),
		Storage:           st,
		MaxAge:            config.Cache.MaxAge,
		IgnoreFetchErrors: config.Chart.IgnoreFetchErrors,
		Presenter:         presenter,
		Logger:            logger,
	})
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo

	if debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
