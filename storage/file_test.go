package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bxcodec/faker/v3"
	"github.com/stretchr/testify/require"

	currency "github.com/malusev998/cbr-currency"
	"github.com/malusev998/cbr-currency/storage"
)

func fakeCurrencies(n int) []currency.Currency {
	currencies := make([]currency.Currency, 0, n)

	for i := 0; i < n; i++ {
		currencies = append(currencies, currency.Currency{
			Name:    faker.Word(),
			Code:    faker.Currency(),
			Value:   faker.Word(),
			Nominal: faker.Word(),
		})
	}

	return currencies
}

func TestFileStorage_RoundTrip(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)
	ctx := context.Background()
	st := storage.NewFileStorage(filepath.Join(t.TempDir(), "currencies.json"))

	currencies := append(fakeCurrencies(20), currency.Currency{
		Name:    "Японских иен",
		Code:    "JPY",
		Value:   "61,2345",
		Nominal: "100",
	})

	asserts.Nil(st.Store(ctx, currencies))

	snapshot, err := st.Load(ctx)

	asserts.Nil(err)
	asserts.Equal(currencies, snapshot.Currencies)
	asserts.WithinDuration(time.Now(), snapshot.UpdatedAt, time.Minute)
}

func TestFileStorage_Format(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)
	path := filepath.Join(t.TempDir(), "currencies.json")
	st := storage.NewFileStorage(path)

	asserts.Nil(st.Store(context.Background(), []currency.Currency{
		{Name: "Доллар США", Code: "USD", Value: "90,50", Nominal: "1"},
		{Name: "A&B <test>", Code: "XTS", Value: "1.0", Nominal: "10"},
	}))

	data, err := os.ReadFile(path)
	asserts.Nil(err)

	expected := `[
  {
    "name": "Доллар США",
    "code": "USD",
    "value": "90,50",
    "nominal": "1"
  },
  {
    "name": "A&B <test>",
    "code": "XTS",
    "value": "1.0",
    "nominal": "10"
  }
]`

	asserts.Equal(expected, string(data))
}

func TestFileStorage_Load(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Missing file", func(t *testing.T) {
		asserts := require.New(t)
		st := storage.NewFileStorage(filepath.Join(t.TempDir(), "missing.json"))

		_, err := st.Load(ctx)

		asserts.True(errors.Is(err, currency.ErrCacheMiss))
	})

	t.Run("Empty file", func(t *testing.T) {
		asserts := require.New(t)
		path := filepath.Join(t.TempDir(), "empty.json")
		asserts.Nil(os.WriteFile(path, nil, 0o644))

		_, err := storage.NewFileStorage(path).Load(ctx)

		asserts.True(errors.Is(err, currency.ErrCacheMiss))
	})

	t.Run("Corrupt file", func(t *testing.T) {
		asserts := require.New(t)

		for _, content := range []string{"{not json", `{"name": "USD"}`, "null", `[{"name": 1}]`} {
			path := filepath.Join(t.TempDir(), "corrupt.json")
			asserts.Nil(os.WriteFile(path, []byte(content), 0o644))

			_, err := storage.NewFileStorage(path).Load(ctx)

			asserts.True(errors.Is(err, currency.ErrDecode), content)
		}
	})

	t.Run("Empty array is a snapshot", func(t *testing.T) {
		asserts := require.New(t)
		st := storage.NewFileStorage(filepath.Join(t.TempDir(), "currencies.json"))
		asserts.Nil(st.Store(ctx, nil))

		snapshot, err := st.Load(ctx)

		asserts.Nil(err)
		asserts.Empty(snapshot.Currencies)
	})
}

func TestFileStorage_MigrateAndDrop(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "dir", "currencies.json")
	st := storage.NewFileStorage(path)

	asserts.Nil(st.Migrate(ctx))
	asserts.Nil(st.Store(ctx, fakeCurrencies(3)))
	asserts.FileExists(path)
	asserts.Nil(st.Drop(ctx))
	asserts.NoFileExists(path)
	asserts.Nil(st.Drop(ctx))
	asserts.Nil(st.Close())
	asserts.Equal("file", st.GetStorageProviderName())
}

func TestNewFileStorage_DefaultPath(t *testing.T) {
	t.Parallel()
	require.Equal(t, storage.DefaultFilePath, storage.NewFileStorage("").Path)
}
