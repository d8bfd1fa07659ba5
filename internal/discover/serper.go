// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/equity-scout/internal/httputil"
	"github.com/pdiddy/equity-scout/pkg/types"
)

// serperAPIURL is the Serper search endpoint. Package-level var for test substitution.
var serperAPIURL = "https://google.serper.dev/search"

// SerperProvider queries the Serper structured web search API.
type SerperProvider struct {
	apiKey string
	client *http.Client
	cfg    types.DiscoveryConfig
}

// NewSerperProvider returns a provider, or nil when no API key is
// configured. A nil provider is the supported "no search capability"
// configuration, not an error.
func NewSerperProvider(cfg types.DiscoveryConfig) *SerperProvider {
	if cfg.SerperAPIKey == "" {
		return nil
	}
	return &SerperProvider{
		apiKey: cfg.SerperAPIKey,
		client: httputil.NewClient(cfg.HTTPConfig),
		cfg:    cfg,
	}
}

// serperRequest is the search request body.
type serperRequest struct {
	Q string `json:"q"`
}

// serperResponse holds the organic results of a search response.
type serperResponse struct {
	Organic []serperOrganic `json:"organic"`
}

type serperOrganic struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Search issues one query and returns its organic results in rank order.
func (p *SerperProvider) Search(ctx context.Context, query string) ([]Result, error) {
	body, err := json.Marshal(serperRequest{Q: query})
	if err != nil {
		return nil, fmt.Errorf("marshaling search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serperAPIURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", p.apiKey)

	resp, err := httputil.DoWithRetry(ctx, p.client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("search API returned HTTP %d", resp.StatusCode)
	}

	var sr serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	results := make([]Result, 0, len(sr.Organic))
	for _, o := range sr.Organic {
		results = append(results, Result{URL: o.Link, Title: o.Title})
	}
	return results, nil
}
