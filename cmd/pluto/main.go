// Package main provides the entry point for the Pluto candidate evaluation CLI and server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pluto",
	Short: "Candidate scoring and briefing pipeline",
	Long:  "Pluto extracts structured facts from candidate resumes, scores them deterministically against job requirements, and generates narrative interviewer briefings.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
