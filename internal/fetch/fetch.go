// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch loads candidate URLs and extracts their visible text into
// FetchedDocuments. Every URL is independent: a failed or too-thin fetch is
// reported and skipped, and the pipeline proceeds with whatever was
// recovered, including nothing.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/equity-scout/internal/events"
	"github.com/pdiddy/equity-scout/internal/httputil"
	"github.com/pdiddy/equity-scout/pkg/types"
)

const moduleName = "fetch"

// maxBodyBytes bounds how much of a response body is read per URL.
const maxBodyBytes = 2 << 20

// BatchResult holds the outcome of a batch load.
type BatchResult struct {
	Loaded  int
	Skipped int
}

// Total returns the number of URLs processed.
func (r BatchResult) Total() int {
	return r.Loaded + r.Skipped
}

// Loader fetches and extracts documents.
type Loader struct {
	client *http.Client
	cfg    types.FetchConfig
	sink   events.Sink
}

// NewLoader returns a Loader using the stage configuration.
func NewLoader(cfg types.FetchConfig, sink events.Sink) *Loader {
	if cfg.MinContentLength <= 0 {
		cfg.MinContentLength = 100
	}
	return &Loader{
		client: httputil.NewClient(cfg.HTTPConfig),
		cfg:    cfg,
		sink:   sink,
	}
}

// Load fetches each URL in order and returns the documents that yielded
// useful content. Output order matches the order of successfully loaded
// URLs. Failures and thin content are skipped with an event; there are no
// retries beyond the shared 429 backoff, only a polite delay between
// requests.
func (l *Loader) Load(ctx context.Context, urls []string) ([]types.FetchedDocument, BatchResult) {
	events.Emit(l.sink, moduleName, "loading documents", events.StatusInfo,
		fmt.Sprintf("processing %d URLs", len(urls)))

	var docs []types.FetchedDocument
	var result BatchResult

	for i, url := range urls {
		if i > 0 {
			httputil.Pause(ctx, l.cfg.FetchDelay)
		}

		events.Emit(l.sink, moduleName, fmt.Sprintf("loading %d/%d", i+1, len(urls)),
			events.StatusInfo, events.Truncate(url, 60))

		content, err := l.fetchOne(ctx, url)
		if err != nil {
			events.Emit(l.sink, moduleName, "load failed", events.StatusWarning,
				events.Truncate(err.Error(), 50))
			result.Skipped++
			continue
		}
		if len(content) < l.cfg.MinContentLength {
			events.Emit(l.sink, moduleName, "content too short", events.StatusWarning,
				fmt.Sprintf("%d chars from %s", len(content), events.Truncate(url, 40)))
			result.Skipped++
			continue
		}

		docs = append(docs, types.FetchedDocument{
			Source:        url,
			Content:       content,
			ContentLength: len(content),
		})
		result.Loaded++
		events.Emit(l.sink, moduleName, "loaded successfully", events.StatusSuccess,
			fmt.Sprintf("%d chars", len(content)))
	}

	events.Emit(l.sink, moduleName, "loading complete", events.StatusSuccess,
		fmt.Sprintf("%d/%d sources loaded", result.Loaded, result.Total()))
	return docs, result
}

// fetchOne retrieves one URL and extracts its visible text.
func (l *Loader) fetchOne(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", l.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := httputil.DoWithRetry(ctx, l.client, req, 0)
	if err != nil {
		return "", fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("reading body: %w", err)
	}

	return ExtractText(string(body)), nil
}

// ValidURLs trims and filters user-supplied URLs, dropping empty entries.
func ValidURLs(urls []string) []string {
	var out []string
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u != "" {
			out = append(out, u)
		}
	}
	return out
}
