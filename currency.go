package currency

import "context"

type (
	Fetcher interface {
		Fetch(ctx context.Context) ([]Currency, error)
	}
)
