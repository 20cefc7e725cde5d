package main

import (
	"os"

	"MarketScope/cmd/marketscope/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
