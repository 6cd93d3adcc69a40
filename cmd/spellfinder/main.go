// Package main provides the entry point for the spellfinder CLI.
package main

import (
	"os"

	"github.com/BubbleCoding/spellfinder/cmd/spellfinder/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
