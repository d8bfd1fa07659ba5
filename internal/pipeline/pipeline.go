// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline sequences the research stages: interpret the query,
// discover sources, fetch documents, score credibility, synthesize the
// report. The pipeline degrades instead of aborting: a stage that comes up
// empty passes its empty output forward, and the run always ends with a
// well-formed report.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/pdiddy/equity-scout/internal/discover"
	"github.com/pdiddy/equity-scout/internal/events"
	"github.com/pdiddy/equity-scout/internal/fetch"
	"github.com/pdiddy/equity-scout/internal/intent"
	"github.com/pdiddy/equity-scout/internal/llm"
	"github.com/pdiddy/equity-scout/internal/synthesize"
	"github.com/pdiddy/equity-scout/internal/validate"
	"github.com/pdiddy/equity-scout/pkg/types"
)

const moduleName = "pipeline"

// Stage interfaces let tests substitute any stage without live capabilities.

type queryAnalyzer interface {
	Analyze(ctx context.Context, query string) types.ResearchIntent
}

type sourceDiscoverer interface {
	Discover(ctx context.Context, searchQueries []string, companyName string) []string
}

type documentLoader interface {
	Load(ctx context.Context, urls []string) ([]types.FetchedDocument, fetch.BatchResult)
}

type reportGenerator interface {
	Generate(ctx context.Context, intent types.ResearchIntent, documents []types.FetchedDocument, validation types.ValidationReport, userQuestion string) types.Report
}

// Runner executes a full research run.
type Runner struct {
	analyzer   queryAnalyzer
	discoverer sourceDiscoverer
	loader     documentLoader
	generator  reportGenerator
	cfg        types.PipelineConfig
	sink       events.Sink
}

// NewRunner wires the live stages from configuration. The interpreter and
// synthesis completion backends are constructed independently so they can use
// different providers or temperatures.
func NewRunner(cfg types.PipelineConfig, sink events.Sink) (*Runner, error) {
	interpreterBackend, err := llm.NewCompleter(cfg.Interpreter)
	if err != nil {
		return nil, fmt.Errorf("creating interpreter backend: %w", err)
	}
	synthesisBackend, err := llm.NewCompleter(cfg.Synthesis.AIConfig)
	if err != nil {
		return nil, fmt.Errorf("creating synthesis backend: %w", err)
	}

	var provider discover.Provider
	if p := discover.NewSerperProvider(cfg.Discovery); p != nil {
		provider = p
	}

	return &Runner{
		analyzer:   intent.NewAnalyzer(interpreterBackend, sink),
		discoverer: discover.NewDiscoverer(provider, cfg.Discovery, sink),
		loader:     fetch.NewLoader(cfg.Fetch, sink),
		generator:  synthesize.NewGenerator(synthesisBackend, cfg.Synthesis, sink),
		cfg:        cfg,
		sink:       sink,
	}, nil
}

// RunStats summarizes a research run for display.
type RunStats struct {
	SourcesDiscovered int
	DocumentsLoaded   int
	DocumentsSkipped  int
	Elapsed           time.Duration
}

// Run executes the pipeline for query. When userURLs is non-empty the
// discovery stage is bypassed and the given URLs are fetched directly. The
// returned report is always well formed, down to the no-data report when
// nothing could be fetched.
func (r *Runner) Run(ctx context.Context, query string, userURLs []string) (types.Report, RunStats) {
	started := time.Now()
	events.Emit(r.sink, moduleName, "starting research", events.StatusInfo, events.Truncate(query, 100))

	stageCtx, cancel := stageContext(ctx, r.cfg.StageTimeout)
	researchIntent := r.analyzer.Analyze(stageCtx, query)
	cancel()

	var urls []string
	if provided := fetch.ValidURLs(userURLs); len(provided) > 0 {
		events.Emit(r.sink, moduleName, "using provided sources", events.StatusInfo,
			fmt.Sprintf("%d URLs supplied", len(provided)))
		urls = provided
	} else {
		stageCtx, cancel = stageContext(ctx, r.cfg.StageTimeout)
		urls = r.discoverer.Discover(stageCtx, researchIntent.SearchQueries, researchIntent.CompanyName)
		cancel()
	}

	stageCtx, cancel = stageContext(ctx, r.cfg.StageTimeout)
	documents, loadResult := r.loader.Load(stageCtx, urls)
	cancel()

	validation := validate.ValidateDocuments(documents, r.cfg.Validation, r.sink)

	stageCtx, cancel = stageContext(ctx, r.cfg.StageTimeout)
	report := r.generator.Generate(stageCtx, researchIntent, documents, validation, query)
	cancel()

	stats := RunStats{
		SourcesDiscovered: len(urls),
		DocumentsLoaded:   loadResult.Loaded,
		DocumentsSkipped:  loadResult.Skipped,
		Elapsed:           time.Since(started),
	}

	events.Emit(r.sink, moduleName, "research complete", events.StatusSuccess, report.Title)
	return report, stats
}

// stageContext bounds one stage with the configured timeout. A zero timeout
// passes the parent context through with a no-op cancel.
func stageContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
