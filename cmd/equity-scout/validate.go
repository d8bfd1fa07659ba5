package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/equity-scout/internal/fetch"
	"github.com/pdiddy/equity-scout/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Score a document snapshot for credibility",
	Long: `Validate scores a document snapshot written by the fetch subcommand and
prints the validation report as JSON: per-document credibility scores, the
trusted-source count, and the aggregated confidence. Scoring is fully
deterministic and performs no network access.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().String("snapshot", "data/documents.yaml", "path to the document snapshot")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	snapshot, _ := cmd.Flags().GetString("snapshot")

	docs, err := fetch.ReadSnapshot(snapshot)
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}

	sink, flush := eventSink()
	defer flush()

	report := validate.ValidateDocuments(docs, pipelineConfig().Validation, sink)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
