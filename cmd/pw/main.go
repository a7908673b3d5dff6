package main

import (
	"os"

	"github.com/nvallen/paywise-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
