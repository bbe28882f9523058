package cmd

import (
	"github.com/spf13/cobra"
)

func itemCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "item <id>",
		Short: "Look up a single marketplace item",
		Example: `  yte item "v1|110554093852|0"
  yte item 12345 --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().GetItem(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}
			return printItemDetail(&resp.Item, resp.DataSource)
		},
	}
}
