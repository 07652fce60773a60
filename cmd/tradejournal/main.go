package main

import (
	"os"

	"github.com/franklinfx2/master-trader-sub000/cmd/tradejournal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
