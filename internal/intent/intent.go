// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package intent turns a free-text research question into a structured
// ResearchIntent. The interpreter never fails: when the completion
// capability is unavailable or returns unparseable output, a local heuristic
// parser fully replaces it, and a defaults pass guarantees every field of
// the returned intent is populated.
package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/pdiddy/equity-scout/internal/events"
	"github.com/pdiddy/equity-scout/internal/llm"
	"github.com/pdiddy/equity-scout/pkg/types"
)

const moduleName = "query-interpreter"

// maxSearchQueries caps the search phrases carried into discovery.
const maxSearchQueries = 7

// analysisInstruction is the system prompt for query interpretation. It
// fixes the output fields and includes one worked example so the model
// returns a JSON object the strict parser can locate.
const analysisInstruction = `You are an expert financial analyst specializing in equity research.
Analyze the user's research query and extract structured information.

Return a JSON object with:
- company_name: Primary company being researched
- ticker: Stock ticker if mentioned
- research_intent: Type of research (news, valuation, competition, earnings, outlook, etc.)
- key_topics: List of important topics to investigate
- time_frame: Time period of interest (recent, quarterly, annual, etc.)
- search_queries: 3-5 specific search queries to find relevant information

Example output:
{
    "company_name": "Tesla",
    "ticker": "TSLA",
    "research_intent": "earnings_analysis",
    "key_topics": ["Q4 earnings", "delivery numbers", "profit margins"],
    "time_frame": "recent",
    "search_queries": [
        "Tesla Q4 2024 earnings report",
        "TSLA delivery numbers 2024",
        "Tesla profit margin analysis"
    ]
}`

// Analyzer interprets research queries.
type Analyzer struct {
	completer llm.Completer
	sink      events.Sink
}

// NewAnalyzer returns an Analyzer using the given completion backend.
// A nil completer forces the heuristic path.
func NewAnalyzer(completer llm.Completer, sink events.Sink) *Analyzer {
	return &Analyzer{completer: completer, sink: sink}
}

// Analyze interprets query into a fully populated ResearchIntent. It tries
// the completion capability first; on any failure the heuristic parser
// replaces it entirely. There is no partial merge: either the model's JSON
// parses cleanly or it is discarded.
func (a *Analyzer) Analyze(ctx context.Context, query string) types.ResearchIntent {
	events.Emit(a.sink, moduleName, "analyzing research query", events.StatusInfo, events.Truncate(query, 100))

	intent, ok := a.completionParse(ctx, query)
	if !ok {
		events.Emit(a.sink, moduleName, "analysis fell back to heuristics", events.StatusWarning, "")
		intent = heuristicParse(query)
	}

	intent = applyDefaults(intent)

	events.Emit(a.sink, moduleName, "query analysis complete", events.StatusSuccess, intent.CompanyName)
	return intent
}

// completionParse asks the model for a structured interpretation and parses
// the first balanced JSON object span out of its response.
func (a *Analyzer) completionParse(ctx context.Context, query string) (types.ResearchIntent, bool) {
	if a.completer == nil {
		return types.ResearchIntent{}, false
	}

	response, err := a.completer.Complete(ctx, analysisInstruction, query)
	if err != nil {
		events.Emit(a.sink, moduleName, "completion call failed", events.StatusWarning, events.Truncate(err.Error(), 80))
		return types.ResearchIntent{}, false
	}

	span, ok := extractJSONObject(response)
	if !ok {
		return types.ResearchIntent{}, false
	}

	var intent types.ResearchIntent
	if err := json.Unmarshal([]byte(span), &intent); err != nil {
		return types.ResearchIntent{}, false
	}
	return intent, true
}

// extractJSONObject returns the first balanced {...} span in s. Braces
// inside JSON strings are ignored. Returns false when no balanced span
// exists.
func extractJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// heuristicParse derives an intent from the raw query without any
// capability call: capitalized tokens longer than two characters are
// company-name candidates, and the first two are joined.
func heuristicParse(query string) types.ResearchIntent {
	var candidates []string
	for _, word := range strings.Fields(query) {
		runes := []rune(word)
		if len(runes) > 2 && unicode.IsUpper(runes[0]) {
			candidates = append(candidates, strings.TrimFunc(word, unicode.IsPunct))
		}
	}

	company := "Unknown Company"
	if len(candidates) > 0 {
		if len(candidates) > 2 {
			candidates = candidates[:2]
		}
		company = strings.Join(candidates, " ")
	}

	return types.ResearchIntent{
		CompanyName:    company,
		ResearchIntent: "general_research",
		KeyTopics:      []string{"latest news", "financial performance"},
		TimeFrame:      "recent",
		SearchQueries:  genericQueries(company),
	}
}

// applyDefaults fills every absent or falsy field with its deterministic
// default and regenerates search queries when the list came back empty.
func applyDefaults(intent types.ResearchIntent) types.ResearchIntent {
	if intent.CompanyName == "" {
		intent.CompanyName = "Unknown"
	}
	if intent.ResearchIntent == "" {
		intent.ResearchIntent = "general_research"
	}
	if intent.KeyTopics == nil {
		intent.KeyTopics = []string{}
	}
	if intent.TimeFrame == "" {
		intent.TimeFrame = "recent"
	}
	if len(intent.SearchQueries) == 0 {
		intent.SearchQueries = genericQueries(intent.CompanyName)
	}
	if len(intent.SearchQueries) > maxSearchQueries {
		intent.SearchQueries = intent.SearchQueries[:maxSearchQueries]
	}
	return intent
}

// genericQueries builds the three fallback search phrases for a company.
func genericQueries(company string) []string {
	return []string{
		fmt.Sprintf("%s latest news", company),
		fmt.Sprintf("%s stock analysis", company),
		fmt.Sprintf("%s earnings", company),
	}
}
