// Package main is the entry point for the sales-report CLI.
package main

import (
	"os"

	"github.com/mtanaka-dev/sales-analytics/cmd/sales-report/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
