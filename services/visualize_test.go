package services

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	currency "github.com/malusev998/cbr-currency"
)

func TestService_Visualize(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Saves_Then_Presents", func(t *testing.T) {
		asserts := require.New(t)
		f := newFixture(t, http.StatusOK, dailyFeed, Config{})
		path := filepath.Join(t.TempDir(), "currency_plot.png")
		f.presenter.On("Present", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			asserts.FileExists(path)
		}).Return(nil).Once()

		err := f.service.Visualize(ctx, currency.VisualizeOptions{SaveToFile: true, Path: path})

		asserts.Nil(err)
		data, err := os.ReadFile(path)
		asserts.Nil(err)
		asserts.True(bytes.HasPrefix(data, []byte("\x89PNG")))
		f.presenter.AssertExpectations(t)
	})

	t.Run("Presents_Without_Saving", func(t *testing.T) {
		asserts := require.New(t)
		f := newFixture(t, http.StatusOK, dailyFeed, Config{})
		path := filepath.Join(t.TempDir(), "currency_plot.png")
		f.presenter.On("Present", mock.Anything, mock.Anything).Return(nil).Once()

		err := f.service.Visualize(ctx, currency.VisualizeOptions{SaveToFile: false, Path: path})

		asserts.Nil(err)
		asserts.NoFileExists(path)
		f.presenter.AssertExpectations(t)
	})

	t.Run("Non_Numeric_Value", func(t *testing.T) {
		asserts := require.New(t)
		body := feed(valute{"US Dollar", "USD", "90,50", "1"}, valute{"Unknown", "XXX", "N/A", "1"})
		f := newFixture(t, http.StatusOK, body, Config{})

		err := f.service.Visualize(ctx, currency.VisualizeOptions{})

		asserts.True(errors.Is(err, currency.ErrParse))
		f.presenter.AssertNotCalled(t, "Present", mock.Anything, mock.Anything)
	})

	t.Run("Failed_Fetch_Is_Returned", func(t *testing.T) {
		asserts := require.New(t)
		f := newFixture(t, http.StatusBadGateway, "", Config{})

		err := f.service.Visualize(ctx, currency.VisualizeOptions{})

		asserts.True(errors.Is(err, currency.ErrFetch))
		f.presenter.AssertNotCalled(t, "Present", mock.Anything, mock.Anything)
	})

	t.Run("Failed_Fetch_Is_Ignored", func(t *testing.T) {
		asserts := require.New(t)
		f := newFixture(t, http.StatusBadGateway, "", Config{IgnoreFetchErrors: true})
		path := filepath.Join(t.TempDir(), "currency_plot.png")

		err := f.service.Visualize(ctx, currency.VisualizeOptions{SaveToFile: true, Path: path})

		asserts.Nil(err)
		asserts.NoFileExists(path)
		f.presenter.AssertNotCalled(t, "Present", mock.Anything, mock.Anything)
	})

	t.Run("Parse_Errors_Are_Not_Ignored", func(t *testing.T) {
		asserts := require.New(t)
		f := newFixture(t, http.StatusOK, "<html></html>", Config{IgnoreFetchErrors: true})

		err := f.service.Visualize(ctx, currency.VisualizeOptions{})

		asserts.True(errors.Is(err, currency.ErrParse))
	})

	t.Run("Presenter_Error", func(t *testing.T) {
		asserts := require.New(t)
		f := newFixture(t, http.StatusOK, dailyFeed, Config{})
		f.presenter.On("Present", mock.Anything, mock.Anything).Return(errors.New("no display"))

		err := f.service.Visualize(ctx, currency.VisualizeOptions{})

		asserts.EqualError(err, "no display")
	})
}
