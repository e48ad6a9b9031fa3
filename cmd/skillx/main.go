// Package main is the entry point for the skillx CLI.
package main

import (
	"os"

	"github.com/f3rmion/skillx/cmd/skillx/cmd"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env from the working directory if present
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
