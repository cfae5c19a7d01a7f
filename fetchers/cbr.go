package fetchers

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/net/html/charset"

	currency "github.com/malusev998/cbr-currency"
)

// CBRFetcher reads the daily rates published by the Central Bank of Russia.
type CBRFetcher struct {
	URL    string
	Client *http.Client
	Logger *slog.Logger
}

func (f CBRFetcher) Fetch(ctx context.Context) ([]currency.Currency, error) {
	url := f.URL

	if url == "" {
		url = CBRURL
	}

	client := f.Client

	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	logger := f.Logger

	if logger == nil {
		logger = slog.Default()
	}

	req, err := getData(ctx, url)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", currency.ErrFetch, err)
	}

	res, err := client.Do(req)

	if err != nil {
		return nil, fmt.Errorf("%w: %w", currency.ErrFetch, err)
	}

	defer res.Body.Close()

	if err := handleHTTPStatusCodeError(res); err != nil {
		return nil, fmt.Errorf("%w: %w", currency.ErrFetch, err)
	}

	decoder := xml.NewDecoder(res.Body)
	decoder.CharsetReader = charset.NewReaderLabel

	var data valCurs

	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %v", currency.ErrParse, err)
	}

	currencies, err := data.toCurrencies()

	if err != nil {
		return nil, err
	}

	logger.Debug("fetched currencies",
		slog.String("url", url),
		slog.String("date", data.Date),
		slog.Int("count", len(currencies)),
	)

	return currencies, nil
}

func (v valCurs) toCurrencies() ([]currency.Currency, error) {
	currencies := make([]currency.Currency, 0, len(v.Valutes))

	for i, val := range v.Valutes {
		fields := []struct {
			tag   string
			value *string
		}{
			{"Name", val.Name},
			{"CharCode", val.CharCode},
			{"Value", val.Value},
			{"Nominal", val.Nominal},
		}

		for _, field := range fields {
			if field.value == nil {
				return nil, fmt.Errorf("%w: Valute #%d (%s) has no <%s>", currency.ErrParse, i+1, val.ID, field.tag)
			}
		}

		currencies = append(currencies, currency.Currency{
			Name:    strings.TrimSpace(*val.Name),
			Code:    strings.TrimSpace(*val.CharCode),
			Value:   strings.TrimSpace(*val.Value),
			Nominal: strings.TrimSpace(*val.Nominal),
		})
	}

	return currencies, nil
}
