// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared records that flow between pipeline stages.
// Each stage consumes the previous stage's record and produces its own; no
// record is mutated after the stage that created it returns.
package types

// ResearchIntent is the structured interpretation of a free-text research
// query. The query interpreter always returns a fully populated intent:
// fields the model could not supply are filled with deterministic defaults.
type ResearchIntent struct {
	// CompanyName is the primary company being researched.
	CompanyName string `json:"company_name" yaml:"company_name"`

	// Ticker is the stock ticker if one was mentioned, otherwise empty.
	Ticker string `json:"ticker" yaml:"ticker"`

	// ResearchIntent is a coarse tag for the type of research
	// (e.g. "earnings_analysis", "general_research").
	ResearchIntent string `json:"research_intent" yaml:"research_intent"`

	// KeyTopics lists the topics to investigate, in priority order.
	KeyTopics []string `json:"key_topics" yaml:"key_topics"`

	// TimeFrame is the period of interest (e.g. "recent", "quarterly").
	TimeFrame string `json:"time_frame" yaml:"time_frame"`

	// SearchQueries holds 1-7 search phrases for source discovery.
	SearchQueries []string `json:"search_queries" yaml:"search_queries"`
}
