package main

import (
	"os"

	"github.com/shopspring/decimal"

	"github.com/uillasnr/mobilefinance/internal/commands"
)

func main() {
	// Chart consumers expect numbers, not quoted decimals.
	decimal.MarshalJSONWithoutQuotes = true

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
