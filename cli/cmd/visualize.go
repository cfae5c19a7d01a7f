package cmd

import (
	"github.com/spf13/cobra"

	currency "github.com/malusev998/cbr-currency"
)

func visualize(config *Config) *cobra.Command {
	var (
		save   bool
		output string
	)

	visualizeCmd := &cobra.Command{
		Use:   "visualize",
		Short: "Draw a bar chart of the current rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.service.Visualize(cmd.Context(), currency.VisualizeOptions{
				SaveToFile: save,
				Path:       output,
			})
		},
	}

	visualizeCmd.Flags().BoolVar(&save, "save", false, "Write the chart to --output")
	visualizeCmd.Flags().StringVarP(&output, "output", "o", config.OutputPath, "Image path, the extension selects the format")

	return visualizeCmd
}
