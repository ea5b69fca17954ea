// Package main provides the granite-ide CLI.
package main

import (
	"os"

	"github.com/robwalker-codes/granite-db/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
