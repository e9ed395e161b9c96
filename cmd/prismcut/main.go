package main

import (
	"os"

	"github.com/piwi3910/PrismCut/internal/cli"
)

// Injected at build time via -ldflags.
var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	cli.SetVersion(version, commit, date)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
