// Package main is the entry point for the trade-engine server.
package main

import (
	"os"

	"github.com/yahuti/trade-engine/cmd/trade-engine/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
