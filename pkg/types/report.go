// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SourceCitation is a display-ready reference to one source document.
// Citations are deduplicated by URL; the first occurrence wins and ordering
// follows document input order, not credibility.
type SourceCitation struct {
	// URL is the source location.
	URL string `json:"url" yaml:"url"`

	// Title is a display label derived from the URL hostname.
	Title string `json:"title" yaml:"title"`

	// Index is the 1-based citation number in first-seen order.
	Index int `json:"index" yaml:"index"`

	// CredibilityScore is the document's score when validation covered it.
	CredibilityScore *int `json:"credibility_score,omitempty" yaml:"credibility_score,omitempty"`

	// IsTrusted is set alongside CredibilityScore.
	IsTrusted *bool `json:"is_trusted,omitempty" yaml:"is_trusted,omitempty"`
}

// ReportMetadata carries run-level counts attached to a report.
// TotalSources counts every document the synthesizer considered;
// TrustedSources is the trusted-domain subset. The two are distinct.
type ReportMetadata struct {
	TotalSources    int      `json:"total_sources" yaml:"total_sources"`
	TrustedSources  int      `json:"trusted_sources" yaml:"trusted_sources"`
	AnalysisDepth   string   `json:"analysis_depth" yaml:"analysis_depth"`
	SourcesAnalyzed []string `json:"sources_analyzed,omitempty" yaml:"sources_analyzed,omitempty"`
}

// Report is the terminal artifact of a pipeline run. Every run produces a
// well-formed Report: degraded runs carry confidence 0 and an explanatory
// content body instead of an error.
type Report struct {
	// Title is the report headline.
	Title string `json:"title" yaml:"title"`

	// GeneratedAt is the generation timestamp, "2006-01-02 15:04:05".
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`

	// Company and Ticker identify the researched company.
	Company string `json:"company" yaml:"company"`
	Ticker  string `json:"ticker" yaml:"ticker"`

	// ResearchType echoes the intent tag from query interpretation.
	ResearchType string `json:"research_type" yaml:"research_type"`

	// Content is the synthesized narrative.
	Content string `json:"content" yaml:"content"`

	// ConfidenceScore is copied verbatim from the validation report.
	ConfidenceScore float64 `json:"confidence_score" yaml:"confidence_score"`

	// Sources lists deduplicated citations in first-seen order.
	Sources []SourceCitation `json:"sources" yaml:"sources"`

	// ValidationNotes is copied from the validation report.
	ValidationNotes []string `json:"validation_notes" yaml:"validation_notes"`

	// Metadata carries source counts and the depth classification.
	Metadata ReportMetadata `json:"metadata" yaml:"metadata"`
}
