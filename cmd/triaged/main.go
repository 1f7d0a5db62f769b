// Package main implements the triaged CLI.
//
// triaged interprets free-text symptom descriptions and produces a
// safety-triage verdict with follow-up questions. The serve command
// runs the HTTP ops server; analyze runs a single pipeline pass and
// prints the result as JSON.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// configPath is the optional YAML config file.
	configPath string
	// version information (set via ldflags during build)
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "triaged",
	Short: "Symptom interpretation and safety-triage daemon",
	Long: `triaged extracts intent and symptoms from free-text health questions,
computes a conservative triage level, and selects clarifying follow-up
questions. It never diagnoses; it only decides how urgently a real
clinician should be involved.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
}
