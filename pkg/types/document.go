// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// FetchedDocument is the extracted text of one successfully loaded URL.
// Documents whose extracted content fell below the usefulness threshold are
// never materialized as FetchedDocuments.
type FetchedDocument struct {
	// Source is the URL the content was fetched from.
	Source string `json:"source" yaml:"source"`

	// Content is the extracted plain text.
	Content string `json:"content" yaml:"content"`

	// ContentLength is len(Content), recorded at fetch time.
	ContentLength int `json:"content_length" yaml:"content_length"`
}

// DocumentScore is the credibility assessment of a single document.
type DocumentScore struct {
	// Source is the document URL the score applies to.
	Source string `json:"source" yaml:"source"`

	// CredibilityScore is a heuristic trust estimate in [0,100].
	CredibilityScore int `json:"credibility_score" yaml:"credibility_score"`

	// Reason describes how the score was derived.
	Reason string `json:"reason" yaml:"reason"`

	// IsTrusted reports whether the source hostname matched the
	// trusted-domain list.
	IsTrusted bool `json:"is_trusted" yaml:"is_trusted"`
}

// ValidationReport aggregates per-document scores into a run-level
// confidence estimate. Created once per pipeline run; read-only after.
type ValidationReport struct {
	// OverallConfidence blends mean document credibility with the
	// trusted-source ratio, in [0,100], rounded to two decimals.
	OverallConfidence float64 `json:"overall_confidence" yaml:"overall_confidence"`

	// DocumentScores holds one score per retained document, in input order.
	DocumentScores []DocumentScore `json:"document_scores" yaml:"document_scores"`

	// TrustedSources counts documents from trusted domains.
	TrustedSources int `json:"trusted_sources" yaml:"trusted_sources"`

	// ValidationNotes holds qualitative observations. Never empty.
	ValidationNotes []string `json:"validation_notes" yaml:"validation_notes"`
}
