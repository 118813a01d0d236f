// Package main provides the leapstep CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/leapstep/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
