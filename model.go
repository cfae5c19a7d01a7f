package currency

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BaseCurrency is the currency every Value is quoted in.
const BaseCurrency = "RUB"

type (
	// Currency is a single entry of the daily feed. Value and Nominal keep the
	// text exactly as published, the feed uses a comma as decimal separator.
	Currency struct {
		Name    string `json:"name"`
		Code    string `json:"code"`
		Value   string `json:"value"`
		Nominal string `json:"nominal"`
	}

	Snapshot struct {
		Currencies []Currency
		UpdatedAt  time.Time
	}
)

// Rate returns Value as a number, accepting both comma and dot separators.
func (c Currency) Rate() (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(c.Value), ",", ".")

	rate, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: value %q of %s is not numeric", ErrParse, c.Value, c.Code)
	}

	return rate, nil
}

func (c Currency) NominalUnits() (int64, error) {
	nominal, err := strconv.ParseInt(strings.TrimSpace(c.Nominal), 10, 64)
	if err != nil || nominal < 1 {
		return 0, fmt.Errorf("%w: nominal %q of %s is not a positive integer", ErrParse, c.Nominal, c.Code)
	}

	return nominal, nil
}

// UnitRate is the price of a single unit of the currency.
func (c Currency) UnitRate() (decimal.Decimal, error) {
	rate, err := c.Rate()
	if err != nil {
		return decimal.Zero, err
	}

	nominal, err := c.NominalUnits()
	if err != nil {
		return decimal.Zero, err
	}

	return rate.Div(decimal.NewFromInt(nominal)), nil
}

// Matches reports whether identifier is exactly the code or the name.
func (c Currency) Matches(identifier string) bool {
	return c.Code == identifier || c.Name == identifier
}
