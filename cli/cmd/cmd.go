package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	currency "github.com/malusev998/cbr-currency"
	"github.com/malusev998/cbr-currency/chart"
)

type (
	Service interface {
		currency.Service
		currency.Conversion
	}

	Options struct {
		Debug bool
		Show  bool
	}

	Config struct {
		Ctx context.Context
		// NewService is called once the persistent flags are parsed.
		NewService func(opts Options) (Service, error)
		OutputPath string
		Addr       string

		service Service
		debug   bool
		show    bool
	}
)

var ErrNoService = errors.New("no service configured")

func newRootCmd(config *Config) *cobra.Command {
	if config.OutputPath == "" {
		config.OutputPath = chart.DefaultPath
	}

	rootCmd := &cobra.Command{
		Use:           "cbr-currency",
		Short:         "Daily exchange rates of the Central Bank of Russia",
		Version:       "v2.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if config.NewService == nil {
				return ErrNoService
			}

			service, err := config.NewService(Options{Debug: config.debug, Show: config.show})

			if err != nil {
				return err
			}

			config.service = service

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.service.Currencies(cmd.Context(), true); err != nil {
				return err
			}

			return config.service.Visualize(cmd.Context(), currency.VisualizeOptions{
				SaveToFile: true,
				Path:       config.OutputPath,
			})
		},
	}

	rootCmd.PersistentFlags().BoolVar(&config.debug, "debug", false, "Debug flag")
	rootCmd.PersistentFlags().BoolVar(&config.show, "show", true, "Open the rendered chart in the image viewer")

	rootCmd.AddCommand(
		fetch(config),
		find(config),
		visualize(config),
		convert(config),
		serve(config),
	)

	return rootCmd
}

func Execute(config *Config) error {
	ctx := config.Ctx

	if ctx == nil {
		ctx = context.Background()
	}

	return newRootCmd(config).ExecuteContext(ctx)
}
