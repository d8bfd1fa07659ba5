// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/pdiddy/equity-scout/internal/events"
	"github.com/pdiddy/equity-scout/pkg/types"
)

// --- mock provider ---

type mockProvider struct {
	// byQuery maps a query substring to the results returned for it.
	byQuery map[string][]Result
	// failAll makes every query fail.
	failAll bool
	calls   []string
}

func (m *mockProvider) Search(_ context.Context, query string) ([]Result, error) {
	m.calls = append(m.calls, query)
	if m.failAll {
		return nil, errors.New("provider outage")
	}
	for sub, results := range m.byQuery {
		if len(sub) <= len(query) && query[:len(sub)] == sub {
			return results, nil
		}
	}
	return nil, nil
}

func testCfg() types.DiscoveryConfig {
	return types.DiscoveryConfig{
		MaxSources:      5,
		MaxQueries:      7,
		ResultsPerQuery: 3,
		QueryDelay:      0,
	}
}

func urlsOf(n int, host string) []Result {
	var out []Result
	for i := 0; i < n; i++ {
		out = append(out, Result{URL: fmt.Sprintf("https://%s/article-%d", host, i)})
	}
	return out
}

// --- fallback path ---

func TestDiscoverFallbackWithoutProvider(t *testing.T) {
	d := NewDiscoverer(nil, testCfg(), events.NopSink{})
	got := d.Discover(context.Background(), []string{"q"}, "Tesla")

	if len(got) != 5 {
		t.Fatalf("len = %d, want 5 fallback sources", len(got))
	}
	if got[0] != "https://www.cnbc.com/finance/" {
		t.Errorf("got[0] = %q", got[0])
	}
}

func TestDiscoverFallbackRespectsCap(t *testing.T) {
	cfg := testCfg()
	cfg.MaxSources = 2
	d := NewDiscoverer(nil, cfg, events.NopSink{})
	got := d.Discover(context.Background(), nil, "Tesla")
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

// --- provider path ---

func TestDiscoverEnhancedQuerySet(t *testing.T) {
	p := &mockProvider{}
	d := NewDiscoverer(p, testCfg(), events.NopSink{})
	d.Discover(context.Background(), []string{"a", "b", "c", "d", "e", "f"}, "Tesla")

	if len(p.calls) != 7 {
		t.Fatalf("queries issued = %d, want 7", len(p.calls))
	}
	if p.calls[0] != "Tesla stock analysis financial news" {
		t.Errorf("first query = %q", p.calls[0])
	}
	if p.calls[1] != "Tesla earnings report" {
		t.Errorf("second query = %q", p.calls[1])
	}
	if p.calls[2] != "Tesla investor relations" {
		t.Errorf("third query = %q", p.calls[2])
	}
	// Only four caller queries survive the cap.
	if p.calls[6] != "d" {
		t.Errorf("last query = %q, want d", p.calls[6])
	}
}

func TestDiscoverKeepsTopThreePerQuery(t *testing.T) {
	p := &mockProvider{byQuery: map[string][]Result{
		"Tesla stock": urlsOf(5, "example.com"),
	}}
	cfg := testCfg()
	cfg.MaxSources = 10
	d := NewDiscoverer(p, cfg, events.NopSink{})
	got := d.Discover(context.Background(), nil, "Tesla")

	if len(got) != 3 {
		t.Errorf("len = %d, want top 3 of 5 results", len(got))
	}
}

func TestDiscoverQueryFailureIsLocal(t *testing.T) {
	// One provider that fails every query still yields an empty, valid result.
	p := &mockProvider{failAll: true}
	d := NewDiscoverer(p, testCfg(), events.NopSink{})
	got := d.Discover(context.Background(), []string{"a"}, "Tesla")

	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
	if len(p.calls) != 4 {
		t.Errorf("queries issued = %d, want all 4 despite failures", len(p.calls))
	}
}

// --- filtering ---

func TestFilterDropsExcludedDomains(t *testing.T) {
	d := NewDiscoverer(nil, testCfg(), events.NopSink{})
	got := d.filterAndPrioritize([]string{
		"https://www.youtube.com/watch?v=abc",
		"https://twitter.com/someone/status/1",
		"https://www.reuters.com/business/tesla",
		"https://reddit.com/r/stocks",
	})

	if len(got) != 1 || got[0] != "https://www.reuters.com/business/tesla" {
		t.Errorf("got = %v", got)
	}
}

func TestFilterTrustedFirstStableOrder(t *testing.T) {
	d := NewDiscoverer(nil, testCfg(), events.NopSink{})
	got := d.filterAndPrioritize([]string{
		"https://blog.example.com/a",
		"https://www.bloomberg.com/news/1",
		"https://other.example.com/b",
		"https://www.reuters.com/business/2",
	})

	want := []string{
		"https://www.bloomberg.com/news/1",
		"https://www.reuters.com/business/2",
		"https://blog.example.com/a",
		"https://other.example.com/b",
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDiscoverInvariants(t *testing.T) {
	// Duplicates, denylisted URLs, and more than MaxSources results in one run.
	p := &mockProvider{byQuery: map[string][]Result{
		"Tesla stock": {
			{URL: "https://www.reuters.com/a"},
			{URL: "https://www.reuters.com/a"},
			{URL: "https://youtube.com/v"},
		},
		"Tesla earnings": urlsOf(3, "one.example.com"),
		"Tesla investor": urlsOf(3, "two.example.com"),
	}}
	d := NewDiscoverer(p, testCfg(), events.NopSink{})
	got := d.Discover(context.Background(), nil, "Tesla")

	if len(got) > 5 {
		t.Errorf("len = %d, exceeds MaxSources", len(got))
	}
	seen := make(map[string]bool)
	for _, u := range got {
		if seen[u] {
			t.Errorf("duplicate URL %q", u)
		}
		seen[u] = true
		for _, ex := range excludedDomains {
			if IsTrusted(u, []string{ex}) {
				t.Errorf("denylisted URL %q survived", u)
			}
		}
	}
	// The one trusted URL must lead.
	if got[0] != "https://www.reuters.com/a" {
		t.Errorf("got[0] = %q, want trusted URL first", got[0])
	}
}

func TestIsTrusted(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://www.reuters.com/business", true},
		{"https://WWW.BLOOMBERG.COM/news", true},
		{"https://example.com/reuters-fan-page", false},
		{"https://blog.example.com", false},
	}
	for _, tt := range tests {
		if got := IsTrusted(tt.url, nil); got != tt.want {
			t.Errorf("IsTrusted(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}
