package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	currency "github.com/malusev998/cbr-currency"
)

type (
	Provider   string
	BaseConfig struct {
		Migrate bool
	}
	FileConfig struct {
		Path string
	}
	MySQLConfig struct {
		BaseConfig
		ConnectionString string
		TableName        string
		IDGenerator      IDGenerator
	}
	PostgresConfig struct {
		BaseConfig
		ConnectionString string
		TableName        string
		IDGenerator      IDGenerator
	}
	MongoDBConfig struct {
		BaseConfig
		ConnectionString string
		Database         string
		Collection       string
	}
)

const (
	File     Provider = "file"
	MySQL    Provider = "mysql"
	Postgres Provider = "postgres"
	MongoDB  Provider = "mongodb"

	DefaultFilePath  = "currencies.json"
	DefaultTableName = "currencies"
)

var (
	ErrStorageNotFound = errors.New("storage is not found")
)

func ConvertToProviderFromString(str string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "file", "":
		return File, nil
	case "mysql":
		return MySQL, nil
	case "postgres", "postgresql":
		return Postgres, nil
	case "mongodb", "mongo":
		return MongoDB, nil
	}

	return "", fmt.Errorf("value %s is not valid Provider", str)
}

func NewStorage(ctx context.Context, provider Provider, config interface{}) (currency.Storage, error) {
	switch provider {
	case File:
		c, _ := config.(FileConfig)
		return NewFileStorage(c.Path), nil
	case MySQL:
		c, ok := config.(MySQLConfig)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects MySQLConfig", ErrStorageNotFound, provider)
		}
		return NewMySQLStorage(ctx, c)
	case Postgres:
		c, ok := config.(PostgresConfig)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects PostgresConfig", ErrStorageNotFound, provider)
		}
		return NewPostgresStorage(ctx, c)
	case MongoDB:
		c, ok := config.(MongoDBConfig)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects MongoDBConfig", ErrStorageNotFound, provider)
		}
		return NewMongoStorage(ctx, c)
	}

	return nil, ErrStorageNotFound
}

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func tableName(name string) (string, error) {
	if name == "" {
		return DefaultTableName, nil
	}

	if !tableNamePattern.MatchString(name) {
		return "", fmt.Errorf("table name %q is not a valid identifier", name)
	}

	return name, nil
}
