package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

func quotaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quota",
		Short: "Show eBay API quota usage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := newClient().GetQuota(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			tw := newTabWriter(os.Stdout)
			tw.writef("Daily Limit:\t%d\n", resp.DailyLimit)
			tw.writef("Used:\t%d\n", resp.DailyUsed)
			tw.writef("Remaining:\t%d\n", resp.Remaining)
			tw.writef("Resets:\t%s\n", resp.ResetAt.Format("2006-01-02 15:04:05 MST"))
			return tw.finish()
		},
	}
}
