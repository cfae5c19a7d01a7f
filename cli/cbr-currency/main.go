package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	currency "github.com/malusev998/cbr-currency"
	"github.com/malusev998/cbr-currency/cli/cmd"
)

func run(ctx context.Context) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error while loading .env: %w", err)
	}

	v := newViper()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError

		if !errors.As(err, &notFound) {
			return fmt.Errorf("error while reading in the config file: %w", err)
		}
	}

	config, err := getConfig(v)

	if err != nil {
		return err
	}

	var st currency.Storage

	defer func() {
		if st == nil {
			return
		}

		if err := st.Close(); err != nil {
			slog.Error("failed to close storage", slog.String("storage", st.GetStorageProviderName()), slog.Any("error", err))
		}
	}()

	return cmd.Execute(&cmd.Config{
		Ctx:        ctx,
		OutputPath: config.Chart.Output,
		Addr:       config.Server.Addr,
		NewService: func(opts cmd.Options) (cmd.Service, error) {
			logger := newLogger(opts.Debug)
			slog.SetDefault(logger)

			created, err := createStorage(ctx, config)

			if err != nil {
				return nil, err
			}

			st = created

			return createService(config, st, logger, opts.Show), nil
		},
	})
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := run(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
