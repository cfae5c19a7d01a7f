package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func convert(config *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <amount> <from> <to>",
		Short: "Convert an amount between two currencies through the ruble",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[0])

			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}

			result, err := config.service.Convert(cmd.Context(), amount, args[1], args[2])

			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s %s\n", amount, args[1], result, args[2])

			return err
		},
	}
}
