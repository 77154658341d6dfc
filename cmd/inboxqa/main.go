package main

import (
	"os"

	"github.com/kazlabs/inboxqa-cli/internal/adapters/driving/cli"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
