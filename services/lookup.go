package services

import (
	"context"
	"fmt"

	currency "github.com/malusev998/cbr-currency"
)

// Find matches identifier against codes and names, the first match wins.
func (s *Service) Find(ctx context.Context, identifier string) (currency.Currency, error) {
	currencies, err := s.Currencies(ctx, false)

	if err != nil {
		return currency.Currency{}, fmt.Errorf("%w: %w", currency.ErrNotFound, err)
	}

	return find(currencies, identifier)
}

func find(currencies []currency.Currency, identifier string) (currency.Currency, error) {
	for _, c := range currencies {
		if c.Matches(identifier) {
			return c, nil
		}
	}

	return currency.Currency{}, fmt.Errorf("%w: %s", currency.ErrNotFound, identifier)
}
