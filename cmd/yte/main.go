// yte is the command-line client for the Yahuti Trade Engine API.
package main

import "github.com/yahuti/trade-engine/cmd/yte/cmd"

func main() {
	cmd.Execute()
}
