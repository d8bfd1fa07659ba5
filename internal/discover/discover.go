// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover turns search phrases into a ranked, deduplicated list of
// candidate document URLs. With a search provider configured it fans queries
// out one at a time; without one it falls back to a static list of financial
// news homepages and performs no network I/O at all.
package discover

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/equity-scout/internal/events"
	"github.com/pdiddy/equity-scout/internal/httputil"
	"github.com/pdiddy/equity-scout/pkg/types"
)

const moduleName = "discovery"

// Result is one organic search hit from a provider.
type Result struct {
	URL   string
	Title string
}

// Provider searches the web for one query. Implementations return whatever
// results they can; an error fails only that query, never the run.
type Provider interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

// excludedDomains are non-article platforms dropped unconditionally.
var excludedDomains = []string{
	"youtube.com",
	"twitter.com",
	"facebook.com",
	"instagram.com",
	"reddit.com",
	"pinterest.com",
}

// fallbackSources are general financial-news homepages used when no search
// provider is configured.
var fallbackSources = []string{
	"https://www.cnbc.com/finance/",
	"https://www.marketwatch.com/",
	"https://finance.yahoo.com/",
	"https://www.reuters.com/business/",
	"https://www.bloomberg.com/",
}

// Discoverer finds candidate source URLs for a research run.
type Discoverer struct {
	provider Provider
	cfg      types.DiscoveryConfig
	sink     events.Sink
}

// NewDiscoverer returns a Discoverer. A nil provider selects the static
// fallback path.
func NewDiscoverer(provider Provider, cfg types.DiscoveryConfig, sink events.Sink) *Discoverer {
	if cfg.MaxSources <= 0 {
		cfg.MaxSources = 5
	}
	if cfg.MaxQueries <= 0 {
		cfg.MaxQueries = 7
	}
	if cfg.ResultsPerQuery <= 0 {
		cfg.ResultsPerQuery = 3
	}
	if len(cfg.TrustedDomains) == 0 {
		cfg.TrustedDomains = types.DefaultTrustedDomains
	}
	return &Discoverer{provider: provider, cfg: cfg, sink: sink}
}

// Discover returns up to MaxSources candidate URLs: denylisted domains
// removed, trusted-domain URLs first (discovery order preserved within each
// block), deduplicated by first occurrence.
func (d *Discoverer) Discover(ctx context.Context, searchQueries []string, companyName string) []string {
	events.Emit(d.sink, moduleName, "discovering sources", events.StatusInfo,
		fmt.Sprintf("searching for: %s", companyName))

	var discovered []string
	if d.provider != nil {
		discovered = d.searchProvider(ctx, searchQueries, companyName)
	} else {
		events.Emit(d.sink, moduleName, "no search provider configured", events.StatusWarning,
			"using fallback sources")
		discovered = append(discovered, fallbackSources...)
	}

	urls := truncate(dedupe(d.filterAndPrioritize(discovered)), d.cfg.MaxSources)

	events.Emit(d.sink, moduleName, fmt.Sprintf("found %d sources", len(urls)),
		events.StatusSuccess, "URLs ready for analysis")
	return urls
}

// searchProvider issues the enhanced query set one query at a time, keeping
// the top results per query. A failed query is reported and skipped; the
// remaining queries still run.
func (d *Discoverer) searchProvider(ctx context.Context, queries []string, companyName string) []string {
	var all []string
	for i, query := range d.enhanceQueries(queries, companyName) {
		if i > 0 {
			httputil.Pause(ctx, d.cfg.QueryDelay)
		}

		events.Emit(d.sink, moduleName, "searching", events.StatusInfo, events.Truncate(query, 50))

		results, err := d.provider.Search(ctx, query)
		if err != nil {
			events.Emit(d.sink, moduleName, "search error", events.StatusWarning,
				events.Truncate(err.Error(), 50))
			continue
		}

		n := len(results)
		if n > d.cfg.ResultsPerQuery {
			n = d.cfg.ResultsPerQuery
		}
		for _, r := range results[:n] {
			if r.URL != "" {
				all = append(all, r.URL)
			}
		}
	}
	return all
}

// enhanceQueries prepends three canonical company phrases to up to four
// caller-supplied queries, capped at MaxQueries.
func (d *Discoverer) enhanceQueries(queries []string, companyName string) []string {
	enhanced := []string{
		fmt.Sprintf("%s stock analysis financial news", companyName),
		fmt.Sprintf("%s earnings report", companyName),
		fmt.Sprintf("%s investor relations", companyName),
	}
	n := len(queries)
	if n > 4 {
		n = 4
	}
	enhanced = append(enhanced, queries[:n]...)
	return truncate(enhanced, d.cfg.MaxQueries)
}

// filterAndPrioritize drops denylisted URLs and orders trusted-domain URLs
// before all others, preserving relative order within each partition.
func (d *Discoverer) filterAndPrioritize(urls []string) []string {
	var prioritized, other []string
	for _, u := range urls {
		lower := strings.ToLower(u)

		if containsAny(lower, excludedDomains) {
			continue
		}
		if containsAny(lower, d.cfg.TrustedDomains) {
			prioritized = append(prioritized, u)
		} else {
			other = append(other, u)
		}
	}
	return append(prioritized, other...)
}

// IsTrusted reports whether url matches one of the configured trusted domains.
func IsTrusted(url string, trustedDomains []string) bool {
	if len(trustedDomains) == 0 {
		trustedDomains = types.DefaultTrustedDomains
	}
	return containsAny(strings.ToLower(url), trustedDomains)
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// dedupe removes duplicate URLs keeping first occurrences in order.
func dedupe(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	var out []string
	for _, u := range urls {
		if seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

func truncate(s []string, max int) []string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
