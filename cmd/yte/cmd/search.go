package cmd

import (
	"github.com/spf13/cobra"

	apiclient "github.com/yahuti/trade-engine/internal/api/client"
)

func searchCmd() *cobra.Command {
	params := &apiclient.SearchParams{}

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search a marketplace for listings",
		Example: `  yte search "playstation 5"
  yte search "steam gift card" --vendor g2a --limit 25
  yte search "iphone 15 pro" --min-price 500 --max-price 900 --sort price`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params.Query = args[0]

			resp, err := newClient().Search(cmd.Context(), params)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}
			return printItemsTable(resp.Items, resp.Total, resp.DataSource)
		},
	}

	cmd.Flags().StringVar(&params.Vendor, "vendor", "ebay", "marketplace vendor (ebay, g2a)")
	cmd.Flags().StringVar(&params.Category, "category", "", "vendor category id")
	cmd.Flags().Float64Var(&params.MinPrice, "min-price", 0, "minimum price filter")
	cmd.Flags().Float64Var(&params.MaxPrice, "max-price", 0, "maximum price filter")
	cmd.Flags().StringVar(&params.Sort, "sort", "", "sort order (price, -price)")
	cmd.Flags().IntVar(&params.Limit, "limit", 10, "maximum number of results")

	return cmd
}
