// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate scores document credibility and aggregates the scores
// into a run-level confidence estimate. Scoring is a pure function of
// document content and source: no capability calls, fully deterministic,
// so the whole package runs with zero live network or model access.
package validate

import (
	"fmt"
	"math"
	"strings"

	"github.com/pdiddy/equity-scout/internal/discover"
	"github.com/pdiddy/equity-scout/internal/events"
	"github.com/pdiddy/equity-scout/pkg/types"
)

const moduleName = "validation"

const (
	baseScore          = 50
	trustedDomainBonus = 30
	contentLengthBonus = 10
	keywordBonus       = 10
	richContentLength  = 500
	highQualityScore   = 80
)

// financeKeywords mark content as finance-relevant via case-insensitive
// substring match.
var financeKeywords = []string{"earnings", "revenue", "profit", "quarter", "fiscal"}

// scoreReason is the fixed explanation attached to every heuristic score.
const scoreReason = "Heuristic evaluation based on source quality and content depth"

// ValidateDocuments scores every document and aggregates an overall
// confidence. Empty input yields confidence 0 with a single explanatory
// note, never an error.
func ValidateDocuments(documents []types.FetchedDocument, cfg types.ValidationConfig, sink events.Sink) types.ValidationReport {
	events.Emit(sink, moduleName, "starting validation", events.StatusInfo,
		fmt.Sprintf("validating %d documents", len(documents)))

	if cfg.MinConfidence <= 0 {
		cfg.MinConfidence = 0.6
	}
	if cfg.HighConfidence <= 0 {
		cfg.HighConfidence = 0.8
	}

	if len(documents) == 0 {
		return types.ValidationReport{
			OverallConfidence: 0,
			DocumentScores:    []types.DocumentScore{},
			TrustedSources:    0,
			ValidationNotes:   []string{"No documents to validate"},
		}
	}

	scores := make([]types.DocumentScore, 0, len(documents))
	trustedCount := 0
	scoreSum := 0

	for i, doc := range documents {
		score := ScoreDocument(doc, cfg.TrustedDomains)
		scores = append(scores, score)
		scoreSum += score.CredibilityScore
		if score.IsTrusted {
			trustedCount++
		}

		status := events.StatusError
		switch {
		case score.CredibilityScore >= 70:
			status = events.StatusSuccess
		case score.CredibilityScore >= 50:
			status = events.StatusWarning
		}
		events.Emit(sink, moduleName, fmt.Sprintf("document %d validated", i+1), status,
			fmt.Sprintf("score: %d/100", score.CredibilityScore))
	}

	overall := OverallConfidence(scores, trustedCount)

	report := types.ValidationReport{
		OverallConfidence: overall,
		DocumentScores:    scores,
		TrustedSources:    trustedCount,
		ValidationNotes:   generateNotes(scores, trustedCount, cfg),
	}

	events.Emit(sink, moduleName, "validation complete", events.StatusSuccess,
		fmt.Sprintf("overall confidence: %.1f%%", overall))
	return report
}

// ScoreDocument computes one document's credibility: base 50, +30 for a
// trusted domain, +10 for content over 500 characters, +10 for a finance
// keyword, clamped to [0,100].
func ScoreDocument(doc types.FetchedDocument, trustedDomains []string) types.DocumentScore {
	score := baseScore
	trusted := discover.IsTrusted(doc.Source, trustedDomains)

	if trusted {
		score += trustedDomainBonus
	}
	if len(doc.Content) > richContentLength {
		score += contentLengthBonus
	}
	if containsFinanceKeyword(doc.Content) {
		score += keywordBonus
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return types.DocumentScore{
		Source:           doc.Source,
		CredibilityScore: score,
		Reason:           scoreReason,
		IsTrusted:        trusted,
	}
}

// OverallConfidence blends mean credibility (weight 0.7) with the trusted
// ratio scaled to 100 (weight 0.3), rounded to two decimal places.
func OverallConfidence(scores []types.DocumentScore, trustedCount int) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s.CredibilityScore
	}
	mean := float64(sum) / float64(len(scores))
	trustRatio := float64(trustedCount) / float64(len(scores))

	overall := 0.7*mean + 0.3*trustRatio*100
	return math.Round(overall*100) / 100
}

// generateNotes produces the ordered, non-exclusive note list. At least one
// note is always present.
func generateNotes(scores []types.DocumentScore, trustedCount int, cfg types.ValidationConfig) []string {
	var notes []string

	lowThreshold := int(cfg.MinConfidence * 100)
	lowCount := 0
	highCount := 0
	for _, s := range scores {
		if s.CredibilityScore < lowThreshold {
			lowCount++
		}
		if s.CredibilityScore >= highQualityScore {
			highCount++
		}
	}

	if lowCount > 0 {
		notes = append(notes, fmt.Sprintf("%d source(s) have low credibility scores", lowCount))
	}
	if trustedCount > 0 {
		notes = append(notes, fmt.Sprintf("%d source(s) from trusted financial sites", trustedCount))
	}
	if highCount > 0 {
		notes = append(notes, fmt.Sprintf("%d high-quality source(s) found", highCount))
	}
	if len(notes) == 0 {
		notes = append(notes, "Moderate quality sources, exercise caution")
	}
	return notes
}

func containsFinanceKeyword(content string) bool {
	lower := strings.ToLower(content)
	for _, kw := range financeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
