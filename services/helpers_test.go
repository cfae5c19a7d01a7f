package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/mock"
	"gonum.org/v1/plot"

	currency "github.com/malusev998/cbr-currency"
	"github.com/malusev998/cbr-currency/fetchers"
	"github.com/malusev998/cbr-currency/storage"
)

type (
	feedHandler struct {
		status int
		body   string
		hits   *atomic.Int32
	}

	mockPresenter struct {
		mock.Mock
	}

	mockStorage struct {
		mock.Mock
	}
)

func (h feedHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	h.hits.Add(1)
	writer.Header().Set("Content-Type", "application/xml")
	writer.WriteHeader(h.status)
	_, _ = writer.Write([]byte(h.body))
}

func (m *mockPresenter) Present(ctx context.Context, p *plot.Plot) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockStorage) Load(ctx context.Context) (currency.Snapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(currency.Snapshot), args.Error(1)
}

func (m *mockStorage) Store(ctx context.Context, currencies []currency.Currency) error {
	args := m.Called(ctx, currencies)
	return args.Error(0)
}

func (m *mockStorage) Migrate(context.Context) error {
	return nil
}

func (m *mockStorage) Drop(context.Context) error {
	return nil
}

func (m *mockStorage) Close() error {
	return nil
}

func (m *mockStorage) GetStorageProviderName() string {
	return "mockStorage"
}

type valute struct {
	Name, Code, Value, Nominal string
}

func feed(valutes ...valute) string {
	var builder strings.Builder

	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?><ValCurs Date="17.10.2026" name="Foreign Currency Market">`)

	for i, v := range valutes {
		builder.WriteString(fmt.Sprintf(
			`<Valute ID="R%05d"><NumCode>%03d</NumCode><CharCode>%s</CharCode><Nominal>%s</Nominal><Name>%s</Name><Value>%s</Value></Valute>`,
			i, i, v.Code, v.Nominal, v.Name, v.Value,
		))
	}

	builder.WriteString("</ValCurs>")

	return builder.String()
}

var dailyFeed = feed(
	valute{"US Dollar", "USD", "90,50", "1"},
	valute{"Euro", "EUR", "98,1234", "1"},
	valute{"Japanese Yen", "JPY", "61,2345", "100"},
	valute{"Dollar", "XUS", "1,0", "1"},
)

type fixture struct {
	hits      *atomic.Int32
	cachePath string
	presenter *mockPresenter
	service   *Service
}

func newFixture(t *testing.T, status int, body string, config Config) fixture {
	hits := &atomic.Int32{}
	server := httptest.NewServer(feedHandler{status: status, body: body, hits: hits})
	t.Cleanup(server.Close)

	cachePath := filepath.Join(t.TempDir(), "currencies.json")
	presenter := &mockPresenter{}

	config.Fetcher = fetchers.NewCBRFetcher(fetchers.Config{URL: server.URL})

	if config.Storage == nil {
		config.Storage = storage.NewFileStorage(cachePath)
	}

	config.Presenter = presenter

	return fixture{
		hits:      hits,
		cachePath: cachePath,
		presenter: presenter,
		service:   New(config),
	}
}
