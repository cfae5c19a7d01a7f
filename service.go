package currency

import (
	"context"

	"github.com/shopspring/decimal"
)

type (
	VisualizeOptions struct {
		SaveToFile bool
		Path       string
	}

	Service interface {
		Currencies(ctx context.Context, save bool) ([]Currency, error)
		Find(ctx context.Context, identifier string) (Currency, error)
		Visualize(ctx context.Context, opts VisualizeOptions) error
	}

	Conversion interface {
		Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error)
	}
)
