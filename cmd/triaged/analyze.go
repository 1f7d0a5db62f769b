package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/triaged/internal/calibrate"
	"github.com/fyrsmithlabs/triaged/internal/config"
	"github.com/fyrsmithlabs/triaged/internal/detectors"
	"github.com/fyrsmithlabs/triaged/internal/extraction"
	"github.com/fyrsmithlabs/triaged/internal/followup"
	"github.com/fyrsmithlabs/triaged/internal/logging"
	"github.com/fyrsmithlabs/triaged/internal/pipeline"
	"github.com/fyrsmithlabs/triaged/internal/textscan"
	"github.com/fyrsmithlabs/triaged/internal/triage"
)

var (
	analyzeAge int
	analyzeSex string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Run one pipeline pass and print the result as JSON",
	Long: `Run the interpretation and triage pipeline once, without a server.

Examples:
  triaged analyze "I've had a headache for 3 days"
  triaged analyze --age 72 "chest pain and trouble breathing"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVar(&analyzeAge, "age", 0, "patient age for demographic calibration")
	analyzeCmd.Flags().StringVar(&analyzeSex, "sex", "", "patient sex (male/female/other)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	pipe := pipeline.NewPipeline(
		extraction.NewExtractor(extraction.WithNegationOptions(
			textscan.WithNegationWindowWords(cfg.Pipeline.NegationWindowWords),
			textscan.WithNegationWindowChars(cfg.Pipeline.NegationWindowChars),
		)),
		triage.NewEngine(),
		calibrate.NewCalibrator(),
		followup.NewSelector(),
		logging.NewNop(),
		pipeline.WithDetectors(detectors.All()...),
	)

	var hint *pipeline.Demographics
	if analyzeAge > 0 || analyzeSex != "" {
		hint = &pipeline.Demographics{Sex: pipeline.Sex(analyzeSex)}
		if analyzeAge > 0 {
			age := analyzeAge
			hint.Age = &age
		}
	}

	result := pipe.Run(cmd.Context(), strings.Join(args, " "), hint)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
