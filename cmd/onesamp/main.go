package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/onesamp/onesamp/cmd/onesamp/cmd"
	"github.com/onesamp/onesamp/pkg/arguments"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		arguments.Report(os.Stderr, err)
		os.Exit(1)
	}
}
