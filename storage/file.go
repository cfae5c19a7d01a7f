package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	currency "github.com/malusev998/cbr-currency"
)

// FileStorage keeps the snapshot as an indented JSON array on disk.
type FileStorage struct {
	Path string
}

func NewFileStorage(path string) FileStorage {
	if path == "" {
		path = DefaultFilePath
	}

	return FileStorage{Path: path}
}

func (f FileStorage) Load(_ context.Context) (currency.Snapshot, error) {
	info, err := os.Stat(f.Path)

	if errors.Is(err, fs.ErrNotExist) {
		return currency.Snapshot{}, currency.ErrCacheMiss
	}

	if err != nil {
		return currency.Snapshot{}, err
	}

	if info.IsDir() || info.Size() == 0 {
		return currency.Snapshot{}, currency.ErrCacheMiss
	}

	data, err := os.ReadFile(f.Path)

	if err != nil {
		return currency.Snapshot{}, err
	}

	var currencies []currency.Currency

	if err := json.Unmarshal(data, &currencies); err != nil {
		return currency.Snapshot{}, fmt.Errorf("%w: %s: %v", currency.ErrDecode, f.Path, err)
	}

	if currencies == nil {
		return currency.Snapshot{}, fmt.Errorf("%w: %s holds no array", currency.ErrDecode, f.Path)
	}

	return currency.Snapshot{
		Currencies: currencies,
		UpdatedAt:  info.ModTime(),
	}, nil
}

func (f FileStorage) Store(_ context.Context, currencies []currency.Currency) error {
	if currencies == nil {
		currencies = []currency.Currency{}
	}

	data, err := Encode(currencies)

	if err != nil {
		return err
	}

	return os.WriteFile(f.Path, data, 0o644)
}

func (f FileStorage) Migrate(_ context.Context) error {
	dir := filepath.Dir(f.Path)

	if dir == "." {
		return nil
	}

	return os.MkdirAll(dir, 0o755)
}

func (f FileStorage) Drop(_ context.Context) error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

func (f FileStorage) Close() error {
	return nil
}

func (f FileStorage) GetStorageProviderName() string {
	return string(File)
}

// Encode renders currencies the way they are cached: two-space indentation,
// non-ASCII text kept as is.
func Encode(currencies []currency.Currency) ([]byte, error) {
	var buffer bytes.Buffer

	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(currencies); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buffer.Bytes(), "\n"), nil
}
