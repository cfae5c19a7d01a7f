package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func fetch(config *Config) *cobra.Command {
	var save bool

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Print today's exchange rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			currencies, err := config.service.Currencies(cmd.Context(), save)

			if err != nil {
				return err
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "CODE\tNOMINAL\tVALUE\tNAME")

			for _, c := range currencies {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", c.Code, c.Nominal, c.Value, c.Name)
			}

			return writer.Flush()
		},
	}

	fetchCmd.Flags().BoolVar(&save, "save", false, "Replace the cached snapshot with the fetched one")

	return fetchCmd
}
