// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIConfig holds shared settings for stages that call a completion API.
type AIConfig struct {
	// Provider selects the completion backend: "claude" or "gemini".
	Provider string `json:"provider" yaml:"provider"`

	// Model is the model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the completion API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Temperature controls sampling randomness.
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// MaxTokens caps completion output length.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`
}

// DiscoveryConfig holds settings for the source discovery stage.
type DiscoveryConfig struct {
	HTTPConfig `yaml:",inline"`

	// SerperAPIKey enables the web search provider when non-empty.
	SerperAPIKey string `json:"serper_api_key,omitempty" yaml:"serper_api_key,omitempty"`

	// MaxSources caps the final candidate list (default 5).
	MaxSources int `json:"max_sources" yaml:"max_sources"`

	// MaxQueries caps the enhanced query set per run (default 7).
	MaxQueries int `json:"max_queries" yaml:"max_queries"`

	// ResultsPerQuery is the number of organic results kept per query (default 3).
	ResultsPerQuery int `json:"results_per_query" yaml:"results_per_query"`

	// QueryDelay is the polite delay between consecutive searches (default 500ms).
	QueryDelay time.Duration `json:"query_delay" yaml:"query_delay"`

	// TrustedDomains lists reputable financial-publisher domains.
	// Empty means DefaultTrustedDomains.
	TrustedDomains []string `json:"trusted_domains,omitempty" yaml:"trusted_domains,omitempty"`
}

// FetchConfig holds settings for the document fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MinContentLength is the usefulness threshold below which an
	// extracted document is discarded (default 100).
	MinContentLength int `json:"min_content_length" yaml:"min_content_length"`

	// FetchDelay is the polite delay between consecutive fetches (default 1s).
	FetchDelay time.Duration `json:"fetch_delay" yaml:"fetch_delay"`
}

// ValidationConfig holds settings for credibility scoring.
type ValidationConfig struct {
	// TrustedDomains lists reputable financial-publisher domains.
	// Empty means DefaultTrustedDomains.
	TrustedDomains []string `json:"trusted_domains,omitempty" yaml:"trusted_domains,omitempty"`

	// MinConfidence is the low-score note threshold as a fraction (default 0.6).
	MinConfidence float64 `json:"min_confidence" yaml:"min_confidence"`

	// HighConfidence is the high-quality threshold as a fraction (default 0.8).
	HighConfidence float64 `json:"high_confidence" yaml:"high_confidence"`
}

// SynthesisConfig holds settings for report generation.
type SynthesisConfig struct {
	AIConfig `yaml:",inline"`

	// ChunkSize is the target chunk length for the similarity index (default 1000).
	ChunkSize int `json:"chunk_size" yaml:"chunk_size"`

	// ChunkOverlap is the overlap between consecutive chunks (default 200).
	ChunkOverlap int `json:"chunk_overlap" yaml:"chunk_overlap"`

	// TopK is the number of chunks retrieved for context (default 5).
	TopK int `json:"top_k" yaml:"top_k"`

	// IndexPath is the on-disk similarity index snapshot. Empty means
	// in-memory only.
	IndexPath string `json:"index_path,omitempty" yaml:"index_path,omitempty"`
}

// PipelineConfig groups all stage configurations for a research run.
type PipelineConfig struct {
	Interpreter AIConfig         `json:"interpreter" yaml:"interpreter"`
	Discovery   DiscoveryConfig  `json:"discovery" yaml:"discovery"`
	Fetch       FetchConfig      `json:"fetch" yaml:"fetch"`
	Validation  ValidationConfig `json:"validation" yaml:"validation"`
	Synthesis   SynthesisConfig  `json:"synthesis" yaml:"synthesis"`

	// StageTimeout bounds each network stage (default 30s).
	StageTimeout time.Duration `json:"stage_timeout" yaml:"stage_timeout"`
}

// DefaultTrustedDomains lists the financial publishers treated as trusted
// for both discovery ordering and credibility scoring.
var DefaultTrustedDomains = []string{
	"reuters.com",
	"bloomberg.com",
	"wsj.com",
	"ft.com",
	"marketwatch.com",
	"cnbc.com",
	"fool.com",
	"seekingalpha.com",
	"yahoo.com/finance",
	"benzinga.com",
	"investing.com",
	"barrons.com",
	"forbes.com/investing",
	"morningstar.com",
}

// DefaultPipelineConfig returns the configuration used when no config file
// or flags override it.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Interpreter: AIConfig{
			Provider:    "claude",
			Model:       "claude-sonnet-4-5-20250929",
			Temperature: 0.3,
			MaxTokens:   1000,
		},
		Discovery: DiscoveryConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   10 * time.Second,
				UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
			},
			MaxSources:      5,
			MaxQueries:      7,
			ResultsPerQuery: 3,
			QueryDelay:      500 * time.Millisecond,
		},
		Fetch: FetchConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   10 * time.Second,
				UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
			},
			MinContentLength: 100,
			FetchDelay:       time.Second,
		},
		Validation: ValidationConfig{
			MinConfidence:  0.6,
			HighConfidence: 0.8,
		},
		Synthesis: SynthesisConfig{
			AIConfig: AIConfig{
				Provider:    "claude",
				Model:       "claude-sonnet-4-5-20250929",
				Temperature: 0.4,
				MaxTokens:   1000,
			},
			ChunkSize:    1000,
			ChunkOverlap: 200,
			TopK:         5,
			IndexPath:    "data/vector_store.db",
		},
		StageTimeout: 30 * time.Second,
	}
}
