package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/equity-scout/internal/intent"
	"github.com/pdiddy/equity-scout/internal/llm"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze \"question\"",
	Short: "Interpret a research question without running the pipeline",
	Long: `Analyze runs only the query interpretation stage and prints the structured
research intent as JSON: company, ticker, research type, key topics, time
frame, and the search queries discovery would use.`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a research question to analyze")
	}
	query := strings.Join(args, " ")

	sink, flush := eventSink()
	defer flush()

	cfg := pipelineConfig()
	completer, err := llm.NewCompleter(cfg.Interpreter)
	if err != nil {
		return err
	}

	researchIntent := intent.NewAnalyzer(completer, sink).Analyze(cmd.Context(), query)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(researchIntent)
}
