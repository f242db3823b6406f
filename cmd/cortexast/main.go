// Package main provides the entry point for the cortexast CLI.
package main

import (
	"os"

	"github.com/cortexast/cortexast/cmd/cortexast/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
