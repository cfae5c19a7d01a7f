package services

import (
	"context"
	"errors"
	"log/slog"

	currency "github.com/malusev998/cbr-currency"
	"github.com/malusev998/cbr-currency/chart"
)

// Visualize plots the current snapshot, saves it when asked to and then
// always presents it.
func (s *Service) Visualize(ctx context.Context, opts currency.VisualizeOptions) error {
	currencies, err := s.Currencies(ctx, false)

	if err != nil {
		if s.ignoreFetchErrors && errors.Is(err, currency.ErrFetch) {
			s.logger.Warn("nothing to visualize", slog.Any("error", err))
			return nil
		}

		return err
	}

	p, err := chart.BarChart(currencies)

	if err != nil {
		return err
	}

	if opts.SaveToFile {
		path := opts.Path

		if path == "" {
			path = chart.DefaultPath
		}

		if err := chart.Save(p, path); err != nil {
			return err
		}

		s.logger.Info("chart saved", slog.String("path", path))
	}

	return s.presenter.Present(ctx, p)
}
