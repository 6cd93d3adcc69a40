package cmd

import (
	"github.com/spf13/cobra"

	chiTransport "github.com/BubbleCoding/spellfinder/internal/transport/chi"
)

func newFiltersCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "List the option values of every facet as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			ctx, client, err := openClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			f, err := client.Filters(ctx)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), chiTransport.NewFiltersResponse(f))
		},
	}
}
