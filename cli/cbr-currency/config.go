package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/malusev998/cbr-currency/chart"
	"github.com/malusev998/cbr-currency/cli/cmd"
	"github.com/malusev998/cbr-currency/fetchers"
	"github.com/malusev998/cbr-currency/storage"
)

const envPrefix = "CBR_CURRENCY"

type (
	FeedConfig struct {
		URL     string        `mapstructure:"url" validate:"required,url"`
		Timeout time.Duration `mapstructure:"timeout" validate:"min=0"`
	}

	CacheConfig struct {
		Storage string        `mapstructure:"storage" validate:"oneof=file mysql postgres postgresql mongodb mongo"`
		Path    string        `mapstructure:"path"`
		MaxAge  time.Duration `mapstructure:"max_age" validate:"min=0"`
		Migrate bool          `mapstructure:"migrate"`
	}

	MySQLConfig struct {
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Addr     string `mapstructure:"addr"`
		DB       string `mapstructure:"db"`
		Table    string `mapstructure:"table"`
	}

	PostgresConfig struct {
		DSN   string `mapstructure:"dsn"`
		Table string `mapstructure:"table"`
	}

	MongoConfig struct {
		URI        string `mapstructure:"uri"`
		Database   string `mapstructure:"database"`
		Collection string `mapstructure:"collection"`
	}

	DatabasesConfig struct {
		MySQL    MySQLConfig    `mapstructure:"mysql"`
		Postgres PostgresConfig `mapstructure:"postgres"`
		Mongo    MongoConfig    `mapstructure:"mongo"`
	}

	ChartConfig struct {
		Output            string `mapstructure:"output" validate:"required"`
		IgnoreFetchErrors bool   `mapstructure:"ignore_fetch_errors"`
	}

	ServerConfig struct {
		Addr string `mapstructure:"addr" validate:"required"`
	}

	Config struct {
		Feed      FeedConfig      `mapstructure:"feed"`
		Cache     CacheConfig     `mapstructure:"cache"`
		Databases DatabasesConfig `mapstructure:"databases"`
		Chart     ChartConfig     `mapstructure:"chart"`
		Server    ServerConfig    `mapstructure:"server"`
	}
)

// newViper reads config.yml from the working directory when present. Every
// key has a default so that CBR_CURRENCY_* variables are seen by Unmarshal.
func newViper() *viper.Viper {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("feed.url", fetchers.CBRURL)
	v.SetDefault("feed.timeout", fetchers.DefaultTimeout)
	v.SetDefault("cache.storage", string(storage.File))
	v.SetDefault("cache.path", storage.DefaultFilePath)
	v.SetDefault("cache.max_age", time.Duration(0))
	v.SetDefault("cache.migrate", true)
	v.SetDefault("databases.mysql.user", "")
	v.SetDefault("databases.mysql.password", "")
	v.SetDefault("databases.mysql.addr", "localhost:3306")
	v.SetDefault("databases.mysql.db", "currencydb")
	v.SetDefault("databases.mysql.table", storage.DefaultTableName)
	v.SetDefault("databases.postgres.dsn", "")
	v.SetDefault("databases.postgres.table", storage.DefaultTableName)
	v.SetDefault("databases.mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("databases.mongo.database", "currencydb")
	v.SetDefault("databases.mongo.collection", storage.DefaultTableName)
	v.SetDefault("chart.output", chart.DefaultPath)
	v.SetDefault("chart.ignore_fetch_errors", false)
	v.SetDefault("server.addr", cmd.DefaultAddr)

	return v
}

func getConfig(v *viper.Viper) (*Config, error) {
	config := &Config{}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error while decoding config: %w", err)
	}

	config.Cache.Storage = strings.ToLower(strings.TrimSpace(config.Cache.Storage))

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func (c *Config) storageConfig() (storage.Provider, interface{}, error) {
	provider, err := storage.ConvertToProviderFromString(c.Cache.Storage)

	if err != nil {
		return "", nil, err
	}

	base := storage.BaseConfig{Migrate: c.Cache.Migrate}

	switch provider {
	case storage.MySQL:
		mysqlConfig := c.Databases.MySQL

		return provider, storage.MySQLConfig{
			BaseConfig:       base,
			ConnectionString: storage.MySQLConnectionString(mysqlConfig.User, mysqlConfig.Password, mysqlConfig.Addr, mysqlConfig.DB),
			TableName:        mysqlConfig.Table,
		}, nil
	case storage.Postgres:
		return provider, storage.PostgresConfig{
			BaseConfig:       base,
			ConnectionString: c.Databases.Postgres.DSN,
			TableName:        c.Databases.Postgres.Table,
		}, nil
	case storage.MongoDB:
		return provider, storage.MongoDBConfig{
			BaseConfig:       base,
			ConnectionString: c.Databases.Mongo.URI,
			Database:         c.Databases.Mongo.Database,
			Collection:       c.Databases.Mongo.Collection,
		}, nil
	}

	return provider, storage.FileConfig{Path: c.Cache.Path}, nil
}
