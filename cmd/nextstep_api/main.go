// Package main provides the entry point for the NextStep HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nextstep_api",
	Short: "NextStep HTTP API Server",
	Long:  "NextStep serves the swipe-based job discovery platform: the job feed, application tracking, profiles and messaging via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
