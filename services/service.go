package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	currency "github.com/malusev998/cbr-currency"
	"github.com/malusev998/cbr-currency/chart"
)

type (
	Config struct {
		Fetcher currency.Fetcher
		// Storage is optional, without it every call goes to the network.
		Storage currency.Storage
		// MaxAge of a cached snapshot. Zero accepts a cache of any age.
		MaxAge time.Duration
		// IgnoreFetchErrors makes Visualize return silently when the feed
		// could not be fetched.
		IgnoreFetchErrors bool
		Presenter         chart.Presenter
		Logger            *slog.Logger
	}

	Service struct {
		fetcher           currency.Fetcher
		storage           currency.Storage
		maxAge            time.Duration
		ignoreFetchErrors bool
		presenter         chart.Presenter
		logger            *slog.Logger
		now               func() time.Time

		mu          sync.RWMutex
		lastUpdated time.Time
	}
)

var (
	_ currency.Service    = (*Service)(nil)
	_ currency.Conversion = (*Service)(nil)
)

func New(config Config) *Service {
	presenter := config.Presenter

	if presenter == nil {
		presenter = chart.BrowserPresenter{}
	}

	logger := config.Logger

	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		fetcher:           config.Fetcher,
		storage:           config.Storage,
		maxAge:            config.MaxAge,
		ignoreFetchErrors: config.IgnoreFetchErrors,
		presenter:         presenter,
		logger:            logger,
		now:               time.Now,
	}
}

// Currencies returns the cached snapshot when there is a usable one and
// fetches the feed otherwise. With save set, a fetched snapshot replaces the
// cached one.
func (s *Service) Currencies(ctx context.Context, save bool) ([]currency.Currency, error) {
	if cached, ok, err := s.cached(ctx); err != nil {
		return nil, err
	} else if ok {
		return cached, nil
	}

	currencies, err := s.fetcher.Fetch(ctx)

	if err != nil {
		return nil, err
	}

	if save && s.storage != nil {
		if err := s.storage.Store(ctx, currencies); err != nil {
			return nil, fmt.Errorf("failed to cache currencies in %s: %w", s.storage.GetStorageProviderName(), err)
		}

		s.logger.Debug("currencies cached",
			slog.String("storage", s.storage.GetStorageProviderName()),
			slog.Int("count", len(currencies)),
		)
	}

	s.mu.Lock()
	s.lastUpdated = s.now()
	s.mu.Unlock()

	return currencies, nil
}

func (s *Service) cached(ctx context.Context) ([]currency.Currency, bool, error) {
	if s.storage == nil {
		return nil, false, nil
	}

	snapshot, err := s.storage.Load(ctx)

	switch {
	case err == nil:
	case errors.Is(err, currency.ErrCacheMiss):
		return nil, false, nil
	case errors.Is(err, currency.ErrDecode):
		s.logger.Warn("cached currencies are unreadable, fetching again", slog.Any("error", err))
		return nil, false, nil
	default:
		return nil, false, err
	}

	if s.maxAge > 0 && s.now().Sub(snapshot.UpdatedAt) >= s.maxAge {
		s.logger.Debug("cached currencies are stale",
			slog.Time("updated_at", snapshot.UpdatedAt),
			slog.Duration("max_age", s.maxAge),
		)
		return nil, false, nil
	}

	return snapshot.Currencies, true, nil
}

// LastUpdated is the time of the last successful network fetch.
func (s *Service) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}
