package currency

import "errors"

var (
	ErrFetch     = errors.New("failed to fetch currencies")
	ErrParse     = errors.New("failed to parse currencies")
	ErrDecode    = errors.New("failed to decode cached currencies")
	ErrNotFound  = errors.New("currency is not found")
	ErrCacheMiss = errors.New("no cached currencies")
)
