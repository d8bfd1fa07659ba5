package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/equity-scout/internal/pipeline"
	"github.com/pdiddy/equity-scout/pkg/types"
)

var researchCmd = &cobra.Command{
	Use:   "research \"question\"",
	Short: "Run the full research pipeline for a question",
	Long: `Research interprets a free-text question about a public company, discovers
and fetches web sources, scores their credibility, and synthesizes a cited
research report. With --url the discovery stage is skipped and the given
URLs are fetched directly.`,
	RunE: runResearch,
}

func init() {
	researchCmd.Flags().StringArray("url", nil, "source URL to fetch directly, bypassing discovery (repeatable)")
	researchCmd.Flags().Bool("json", false, "print the report as JSON instead of Markdown")
	researchCmd.Flags().String("output", "", "write the report to a file instead of stdout")

	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a research question, e.g. equity-scout research \"How did Apple's last quarter go?\"")
	}
	query := strings.Join(args, " ")

	urls, _ := cmd.Flags().GetStringArray("url")
	asJSON, _ := cmd.Flags().GetBool("json")

	sink, flush := eventSink()
	defer flush()

	runner, err := pipeline.NewRunner(pipelineConfig(), sink)
	if err != nil {
		return err
	}

	report, stats := runner.Run(cmd.Context(), query, urls)
	fmt.Fprintf(cmd.ErrOrStderr(), "Run: %d source(s) discovered, %d loaded, %d skipped in %s\n",
		stats.SourcesDiscovered, stats.DocumentsLoaded, stats.DocumentsSkipped,
		stats.Elapsed.Round(time.Millisecond))

	out, closeOut, err := openOutput(cmd)
	if err != nil {
		return fmt.Errorf("opening report output: %w", err)
	}
	defer closeOut()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	_, err = fmt.Fprint(out, renderMarkdown(report))
	return err
}

// renderMarkdown formats a report for terminal or file display.
func renderMarkdown(report types.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", report.Title)
	fmt.Fprintf(&b, "**Generated:** %s  \n", report.GeneratedAt)
	fmt.Fprintf(&b, "**Company:** %s (%s)  \n", report.Company, report.Ticker)
	fmt.Fprintf(&b, "**Research type:** %s  \n", report.ResearchType)
	fmt.Fprintf(&b, "**Confidence:** %.1f%%  \n", report.ConfidenceScore)
	fmt.Fprintf(&b, "**Analysis depth:** %s\n\n", report.Metadata.AnalysisDepth)

	b.WriteString("---\n\n")
	b.WriteString(report.Content)
	b.WriteString("\n")

	if len(report.Sources) > 0 {
		b.WriteString("\n## Sources\n\n")
		for _, s := range report.Sources {
			fmt.Fprintf(&b, "%d. %s — %s", s.Index, s.Title, s.URL)
			if s.CredibilityScore != nil {
				fmt.Fprintf(&b, " (credibility %d/100", *s.CredibilityScore)
				if s.IsTrusted != nil && *s.IsTrusted {
					b.WriteString(", trusted")
				}
				b.WriteString(")")
			}
			b.WriteString("\n")
		}
	}

	if len(report.ValidationNotes) > 0 {
		b.WriteString("\n## Validation Notes\n\n")
		for _, note := range report.ValidationNotes {
			fmt.Fprintf(&b, "- %s\n", note)
		}
	}

	return b.String()
}
