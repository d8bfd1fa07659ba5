// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package intent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pdiddy/equity-scout/internal/events"
)

// --- mock completer ---

type mockCompleter struct {
	response string
	err      error
}

func (m *mockCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	return m.response, m.err
}

// --- extractJSONObject ---

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, true},
		{"object inside prose", `Sure! Here it is: {"a":1} Hope that helps.`, `{"a":1}`, true},
		{"nested object", `{"a":{"b":2}}`, `{"a":{"b":2}}`, true},
		{"brace inside string", `{"a":"}{"}`, `{"a":"}{"}`, true},
		{"escaped quote inside string", `{"a":"say \"}{\" loudly"}`, `{"a":"say \"}{\" loudly"}`, true},
		{"no object", "no json here", "", false},
		{"unbalanced", `{"a":1`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSONObject(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("extractJSONObject(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

// --- Analyze ---

func TestAnalyzeParsesCompletionJSON(t *testing.T) {
	completer := &mockCompleter{response: `Here is the analysis:
{
  "company_name": "Tesla",
  "ticker": "TSLA",
  "research_intent": "earnings_analysis",
  "key_topics": ["Q4 earnings"],
  "time_frame": "quarterly",
  "search_queries": ["Tesla Q4 earnings report"]
}`}

	a := NewAnalyzer(completer, events.NopSink{})
	got := a.Analyze(context.Background(), "How did Tesla do last quarter?")

	if got.CompanyName != "Tesla" || got.Ticker != "TSLA" {
		t.Errorf("company/ticker = %q/%q", got.CompanyName, got.Ticker)
	}
	if got.ResearchIntent != "earnings_analysis" {
		t.Errorf("research_intent = %q", got.ResearchIntent)
	}
	if len(got.SearchQueries) != 1 || got.SearchQueries[0] != "Tesla Q4 earnings report" {
		t.Errorf("search_queries = %v", got.SearchQueries)
	}
}

func TestAnalyzeFallsBackOnCompletionError(t *testing.T) {
	a := NewAnalyzer(&mockCompleter{err: errors.New("timeout")}, events.NopSink{})
	got := a.Analyze(context.Background(), "what is the outlook for Apple Inc this year?")

	if got.CompanyName != "Apple Inc" {
		t.Errorf("company = %q, want heuristic extraction of Apple Inc", got.CompanyName)
	}
	if len(got.SearchQueries) != 3 {
		t.Fatalf("search_queries = %v, want 3 generic phrases", got.SearchQueries)
	}
	if got.SearchQueries[0] != "Apple Inc latest news" {
		t.Errorf("first query = %q", got.SearchQueries[0])
	}
	if got.SearchQueries[2] != "Apple Inc earnings" {
		t.Errorf("third query = %q", got.SearchQueries[2])
	}
}

func TestAnalyzeFallsBackOnMalformedJSON(t *testing.T) {
	// A balanced span that is not valid JSON must discard the completion
	// entirely, not partially merge it.
	a := NewAnalyzer(&mockCompleter{response: `{company: Tesla}`}, events.NopSink{})
	got := a.Analyze(context.Background(), "tell me about Microsoft earnings")

	if got.CompanyName != "Microsoft" {
		t.Errorf("company = %q, want heuristic result", got.CompanyName)
	}
}

func TestAnalyzeNilCompleter(t *testing.T) {
	a := NewAnalyzer(nil, events.NopSink{})
	got := a.Analyze(context.Background(), "latest news on Nvidia Corporation chips")

	if got.CompanyName != "Nvidia Corporation" {
		t.Errorf("company = %q", got.CompanyName)
	}
}

func TestAnalyzeNeverReturnsEmptyQueries(t *testing.T) {
	cases := []struct {
		name      string
		completer *mockCompleter
	}{
		{"completion omits queries", &mockCompleter{response: `{"company_name": "Shell"}`}},
		{"completion fails", &mockCompleter{err: errors.New("quota")}},
		{"completion returns prose", &mockCompleter{response: "I cannot help with that."}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := NewAnalyzer(tc.completer, events.NopSink{})
			got := a.Analyze(context.Background(), "research question")
			if len(got.SearchQueries) == 0 {
				t.Error("search_queries is empty")
			}
			if len(got.SearchQueries) > maxSearchQueries {
				t.Errorf("search_queries = %d entries, cap is %d", len(got.SearchQueries), maxSearchQueries)
			}
		})
	}
}

func TestAnalyzeFullyPopulated(t *testing.T) {
	a := NewAnalyzer(&mockCompleter{response: `{"company_name": "Shell"}`}, events.NopSink{})
	got := a.Analyze(context.Background(), "Shell dividends")

	if got.CompanyName != "Shell" {
		t.Errorf("company = %q", got.CompanyName)
	}
	if got.ResearchIntent != "general_research" {
		t.Errorf("research_intent = %q, want default", got.ResearchIntent)
	}
	if got.TimeFrame != "recent" {
		t.Errorf("time_frame = %q, want default", got.TimeFrame)
	}
	if got.KeyTopics == nil {
		t.Error("key_topics is nil, want empty slice")
	}
	for _, q := range got.SearchQueries {
		if !strings.Contains(q, "Shell") {
			t.Errorf("regenerated query %q should use resolved company name", q)
		}
	}
}

func TestHeuristicParseNoCapitalizedTokens(t *testing.T) {
	got := heuristicParse("what should i buy right now?")
	if got.CompanyName != "Unknown Company" {
		t.Errorf("company = %q, want Unknown Company", got.CompanyName)
	}
	if len(got.SearchQueries) != 3 {
		t.Errorf("search_queries = %v", got.SearchQueries)
	}
}

func TestAnalyzeCapsQueries(t *testing.T) {
	a := NewAnalyzer(&mockCompleter{response: `{
  "company_name": "Tesla",
  "search_queries": ["q1","q2","q3","q4","q5","q6","q7","q8","q9"]
}`}, events.NopSink{})
	got := a.Analyze(context.Background(), "Tesla")
	if len(got.SearchQueries) != maxSearchQueries {
		t.Errorf("len(search_queries) = %d, want %d", len(got.SearchQueries), maxSearchQueries)
	}
}
