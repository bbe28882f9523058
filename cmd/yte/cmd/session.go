package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func sessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Show eBay user session status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := newClient().GetSession(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if !resp.Authenticated {
				fmt.Println("Not authenticated. Visit /auth/ebay/login to connect an eBay account.")
				return nil
			}

			fmt.Println("Authenticated.")
			if resp.ExpiresAt != nil {
				fmt.Println("Token expires:", resp.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
			}
			return nil
		},
	}
}
