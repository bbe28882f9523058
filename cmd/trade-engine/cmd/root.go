// Package cmd implements the CLI commands for the trade-engine server.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "trade-engine",
	Short: "Marketplace arbitrage dashboard backend",
	Long:  "An API service that aggregates eBay and G2A marketplace data into a trading dashboard, manages eBay user OAuth sessions, and degrades to clearly tagged simulated data when vendors are unavailable.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.AddCommand(versionCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
