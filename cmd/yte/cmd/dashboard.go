package cmd

import (
	"github.com/spf13/cobra"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the aggregated marketplace overview",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := newClient().GetDashboard(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}
			return printDashboard(&resp.Dashboard)
		},
	}
}
