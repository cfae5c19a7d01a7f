package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	currency "github.com/malusev998/cbr-currency"
)

const conversionPlaces = 4

func (s *Service) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	currencies, err := s.Currencies(ctx, false)

	if err != nil {
		return decimal.Zero, err
	}

	fromRate, err := unitRate(currencies, from)

	if err != nil {
		return decimal.Zero, err
	}

	toRate, err := unitRate(currencies, to)

	if err != nil {
		return decimal.Zero, err
	}

	if toRate.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: %s has a zero rate", currency.ErrParse, to)
	}

	return convert(amount, fromRate, toRate), nil
}

func unitRate(currencies []currency.Currency, identifier string) (decimal.Decimal, error) {
	if identifier == currency.BaseCurrency {
		return decimal.NewFromInt(1), nil
	}

	c, err := find(currencies, identifier)

	if err != nil {
		return decimal.Zero, err
	}

	return c.UnitRate()
}

func convert(amount, fromRate, toRate decimal.Decimal) decimal.Decimal {
	return amount.Mul(fromRate).Div(toRate).Round(conversionPlaces)
}
