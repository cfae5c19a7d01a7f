package currency_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	currency "github.com/malusev998/cbr-currency"
)

func TestCurrency_Rate(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)

	values := []struct {
		value    string
		expected string
		err      error
	}{
		{"75,4321", "75.4321", nil},
		{"90.50", "90.5", nil},
		{" 12,0 ", "12", nil},
		{"N/A", "0", currency.ErrParse},
		{"", "0", currency.ErrParse},
	}

	for _, value := range values {
		rate, err := currency.Currency{Code: "USD", Value: value.value}.Rate()

		if value.err != nil {
			asserts.True(errors.Is(err, value.err))
		} else {
			asserts.Nil(err)
		}

		asserts.True(decimal.RequireFromString(value.expected).Equal(rate), "%s != %s", value.expected, rate)
	}
}

func TestCurrency_Rate_Float(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)

	rate, err := currency.Currency{Value: "75,4321"}.Rate()

	asserts.Nil(err)
	asserts.Equal(75.4321, rate.InexactFloat64())
}

func TestCurrency_UnitRate(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)

	rate, err := currency.Currency{Code: "JPY", Value: "61,2345", Nominal: "100"}.UnitRate()
	asserts.Nil(err)
	asserts.True(decimal.RequireFromString("0.612345").Equal(rate))

	_, err = currency.Currency{Code: "JPY", Value: "61,2345", Nominal: "0"}.UnitRate()
	asserts.True(errors.Is(err, currency.ErrParse))

	_, err = currency.Currency{Code: "JPY", Value: "61,2345", Nominal: "ten"}.UnitRate()
	asserts.True(errors.Is(err, currency.ErrParse))
}

func TestCurrency_Matches(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)
	usd := currency.Currency{Name: "US Dollar", Code: "USD", Value: "90,50", Nominal: "1"}

	asserts.True(usd.Matches("USD"))
	asserts.True(usd.Matches("US Dollar"))
	asserts.False(usd.Matches("usd"))
	asserts.False(usd.Matches("Dollar"))
}
