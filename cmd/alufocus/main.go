// Command alufocus is the aluminium production cost and CO₂ decision-support CLI.
package main

import (
	"os"

	"github.com/smelterlab/alufocus/internal/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := cli.NewRootCmd(version).Execute(); err != nil {
		os.Exit(1)
	}
}
