package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func find(config *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "find <code|name>",
		Short: "Look up one currency by its code or full name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.service.Find(cmd.Context(), args[0])

			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s): %s RUB\n", c.Nominal, c.Code, c.Name, c.Value)

			return err
		},
	}
}
