// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package synthesize produces the terminal Report of a research run:
// retrieval-augmented narrative generation plus citation assembly. Failure
// never escapes this package; synthesis errors become a fixed error report
// so the caller always receives a well-formed artifact.
package synthesize

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/equity-scout/internal/events"
	"github.com/pdiddy/equity-scout/internal/index"
	"github.com/pdiddy/equity-scout/internal/llm"
	"github.com/pdiddy/equity-scout/pkg/types"
)

const moduleName = "synthesis"

// contextCharsPerChunk bounds how much of each retrieved chunk enters the
// completion prompt, capping input size regardless of corpus size.
const contextCharsPerChunk = 400

// Depth classification thresholds over total document characters.
const (
	deepThreshold     = 10000
	moderateThreshold = 5000
)

// Generator synthesizes research reports.
type Generator struct {
	completer llm.Completer
	cfg       types.SynthesisConfig
	sink      events.Sink
}

// NewGenerator returns a Generator using the given completion backend.
func NewGenerator(completer llm.Completer, cfg types.SynthesisConfig, sink events.Sink) *Generator {
	if cfg.TopK <= 0 {
		cfg.TopK = 5
	}
	return &Generator{completer: completer, cfg: cfg, sink: sink}
}

// Generate produces the final report. Empty documents short-circuit to the
// no-data report without invoking the completion or retrieval capabilities.
// Any internal error yields the fixed error report, never a returned fault.
func (g *Generator) Generate(ctx context.Context, intent types.ResearchIntent, documents []types.FetchedDocument, validation types.ValidationReport, userQuestion string) types.Report {
	events.Emit(g.sink, moduleName, "generating report", events.StatusInfo,
		fmt.Sprintf("processing %d documents", len(documents)))

	if len(documents) == 0 {
		return noDataReport()
	}

	report, err := g.generate(ctx, intent, documents, validation, userQuestion)
	if err != nil {
		events.Emit(g.sink, moduleName, "report generation failed", events.StatusError,
			events.Truncate(err.Error(), 80))
		return errorReport(err)
	}

	events.Emit(g.sink, moduleName, "report generated successfully", events.StatusSuccess,
		fmt.Sprintf("confidence: %.1f%% | sources: %d", report.ConfidenceScore, len(report.Sources)))
	return report
}

func (g *Generator) generate(ctx context.Context, intent types.ResearchIntent, documents []types.FetchedDocument, validation types.ValidationReport, userQuestion string) (types.Report, error) {
	idx, err := index.Open(g.cfg.IndexPath)
	if err != nil {
		return types.Report{}, fmt.Errorf("opening similarity index: %w", err)
	}
	defer idx.Close()

	chunks := index.Split(documents, g.cfg.ChunkSize, g.cfg.ChunkOverlap)
	if err := idx.Build(ctx, chunks); err != nil {
		return types.Report{}, fmt.Errorf("building similarity index: %w", err)
	}

	relevant, err := idx.Nearest(ctx, userQuestion, g.cfg.TopK)
	if err != nil {
		return types.Report{}, fmt.Errorf("retrieving context: %w", err)
	}

	prompt, err := renderReportPrompt(intent, formatContext(relevant), userQuestion)
	if err != nil {
		return types.Report{}, fmt.Errorf("rendering report prompt: %w", err)
	}

	content, err := g.completer.Complete(ctx, reportInstruction, prompt)
	if err != nil {
		return types.Report{}, fmt.Errorf("generating report content: %w", err)
	}

	sources := AssembleCitations(documents, validation)

	sourcesAnalyzed := make([]string, 0, len(documents))
	for _, doc := range documents {
		sourcesAnalyzed = append(sourcesAnalyzed, doc.Source)
	}

	return types.Report{
		Title:           fmt.Sprintf("Equity Research Report: %s", intent.CompanyName),
		GeneratedAt:     time.Now().Format("2006-01-02 15:04:05"),
		Company:         intent.CompanyName,
		Ticker:          intent.Ticker,
		ResearchType:    intent.ResearchIntent,
		Content:         content,
		ConfidenceScore: validation.OverallConfidence,
		Sources:         sources,
		ValidationNotes: validation.ValidationNotes,
		Metadata: types.ReportMetadata{
			TotalSources:    len(documents),
			TrustedSources:  validation.TrustedSources,
			AnalysisDepth:   classifyDepth(documents),
			SourcesAnalyzed: sourcesAnalyzed,
		},
	}, nil
}

// formatContext renders retrieved chunks into the bounded context block:
// the first 400 characters of each chunk, source-tagged, delimited.
func formatContext(chunks []index.Chunk) string {
	parts := make([]string, 0, len(chunks))
	for i, c := range chunks {
		content := c.Content
		if len(content) > contextCharsPerChunk {
			content = content[:contextCharsPerChunk]
		}
		parts = append(parts, fmt.Sprintf("[Source %d: %s]\n%s\n", i+1, c.Source, content))
	}
	return strings.Join(parts, "\n---\n")
}

// AssembleCitations converts documents to display citations: stable input
// order, deduplicated by exact source string (first occurrence wins),
// annotated with credibility when validation covered the source.
func AssembleCitations(documents []types.FetchedDocument, validation types.ValidationReport) []types.SourceCitation {
	scoresBySource := make(map[string]types.DocumentScore, len(validation.DocumentScores))
	for _, s := range validation.DocumentScores {
		if _, ok := scoresBySource[s.Source]; !ok {
			scoresBySource[s.Source] = s
		}
	}

	seen := make(map[string]bool, len(documents))
	var citations []types.SourceCitation
	for _, doc := range documents {
		if seen[doc.Source] {
			continue
		}
		seen[doc.Source] = true

		citation := types.SourceCitation{
			URL:   doc.Source,
			Title: displayTitle(doc.Source),
			Index: len(citations) + 1,
		}
		if score, ok := scoresBySource[doc.Source]; ok {
			credibility := score.CredibilityScore
			trusted := score.IsTrusted
			citation.CredibilityScore = &credibility
			citation.IsTrusted = &trusted
		}
		citations = append(citations, citation)
	}
	return citations
}

// displayTitle derives a citation label from the URL hostname.
func displayTitle(source string) string {
	parsed, err := url.Parse(source)
	if err != nil {
		return source
	}
	host := parsed.Host
	if host == "" {
		host = strings.SplitN(parsed.Path, "/", 2)[0]
	}
	if host == "" {
		return source
	}
	return fmt.Sprintf("Source from %s", host)
}

// classifyDepth buckets the full document set by total content volume.
func classifyDepth(documents []types.FetchedDocument) string {
	total := 0
	for _, doc := range documents {
		total += len(doc.Content)
	}
	switch {
	case total > deepThreshold:
		return "Deep"
	case total > moderateThreshold:
		return "Moderate"
	default:
		return "Surface"
	}
}

// noDataReport is the fixed report for a run that recovered no documents.
func noDataReport() types.Report {
	return types.Report{
		Title:           "Research Report - No Data Available",
		GeneratedAt:     time.Now().Format("2006-01-02 15:04:05"),
		Company:         "Unknown",
		Ticker:          "N/A",
		ResearchType:    "Failed",
		Content:         noDataContent,
		ConfidenceScore: 0,
		Sources:         []types.SourceCitation{},
		ValidationNotes: []string{"No sources available for analysis"},
		Metadata: types.ReportMetadata{
			TotalSources:   0,
			TrustedSources: 0,
			AnalysisDepth:  "None",
		},
	}
}

// errorReport is the fixed report for a synthesis failure.
func errorReport(genErr error) types.Report {
	content := fmt.Sprintf(`# Report Generation Error

An error occurred during report generation:

Error: %v

Please try again or contact support if the issue persists.`, genErr)

	return types.Report{
		Title:           "Research Report - Error",
		GeneratedAt:     time.Now().Format("2006-01-02 15:04:05"),
		Company:         "Unknown",
		Ticker:          "N/A",
		ResearchType:    "Error",
		Content:         content,
		ConfidenceScore: 0,
		Sources:         []types.SourceCitation{},
		ValidationNotes: []string{"Report generation failed"},
		Metadata: types.ReportMetadata{
			TotalSources:   0,
			TrustedSources: 0,
			AnalysisDepth:  "None",
		},
	}
}
