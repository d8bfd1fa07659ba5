// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/equity-scout/pkg/types"
)

func TestSplitSizesAndOverlap(t *testing.T) {
	content := strings.Repeat("a", 2500)
	docs := []types.FetchedDocument{{Source: "https://a.com", Content: content}}

	chunks := Split(docs, 1000, 200)

	// Steps of 800: [0,1000) [800,1800) [1600,2500).
	require.Len(t, chunks, 3)
	assert.Equal(t, 1000, len(chunks[0].Content))
	assert.Equal(t, 1000, len(chunks[1].Content))
	for _, c := range chunks {
		assert.Equal(t, "https://a.com", c.Source)
		assert.LessOrEqual(t, len(c.Content), 1000)
	}
}

func TestSplitShortDocument(t *testing.T) {
	docs := []types.FetchedDocument{{Source: "https://a.com", Content: "tiny"}}
	chunks := Split(docs, 1000, 200)
	require.Len(t, chunks, 1)
	assert.Equal(t, "tiny", chunks[0].Content)
}

func TestSplitPreservesDocumentOrder(t *testing.T) {
	docs := []types.FetchedDocument{
		{Source: "https://a.com", Content: "alpha content"},
		{Source: "https://b.com", Content: "beta content"},
	}
	chunks := Split(docs, 1000, 200)
	require.Len(t, chunks, 2)
	assert.Equal(t, "https://a.com", chunks[0].Source)
	assert.Equal(t, "https://b.com", chunks[1].Source)
}

func TestIndexNearestRanksRelevantChunks(t *testing.T) {
	idx, err := Open("")
	require.NoError(t, err)
	defer idx.Close()

	ctx := context.Background()
	require.NoError(t, idx.Build(ctx, []Chunk{
		{Source: "https://a.com", Content: "the weather was sunny all week in the city"},
		{Source: "https://b.com", Content: "quarterly earnings beat analyst expectations on revenue growth"},
		{Source: "https://c.com", Content: "earnings call transcript discusses earnings guidance and earnings outlook"},
	}))

	got, err := idx.Nearest(ctx, "earnings guidance", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, c := range got {
		assert.Contains(t, c.Content, "earnings")
	}
}

func TestIndexNearestCapsAtK(t *testing.T) {
	idx, err := Open("")
	require.NoError(t, err)
	defer idx.Close()

	ctx := context.Background()
	var chunks []Chunk
	for i := 0; i < 10; i++ {
		chunks = append(chunks, Chunk{Source: "https://a.com", Content: "stock market update number"})
	}
	require.NoError(t, idx.Build(ctx, chunks))

	got, err := idx.Nearest(ctx, "stock market", 5)
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestIndexNearestFallsBackWhenNoMatch(t *testing.T) {
	idx, err := Open("")
	require.NoError(t, err)
	defer idx.Close()

	ctx := context.Background()
	require.NoError(t, idx.Build(ctx, []Chunk{
		{Source: "https://a.com", Content: "completely unrelated text"},
	}))

	got, err := idx.Nearest(ctx, "zzzxqwyy nonexistent", 5)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestIndexBuildReplacesChunks(t *testing.T) {
	idx, err := Open("")
	require.NoError(t, err)
	defer idx.Close()

	ctx := context.Background()
	require.NoError(t, idx.Build(ctx, []Chunk{{Source: "https://old.com", Content: "old run content"}}))
	require.NoError(t, idx.Build(ctx, []Chunk{{Source: "https://new.com", Content: "new run content"}}))

	got, err := idx.Nearest(ctx, "content", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "https://new.com", got[0].Source)
}

func TestIndexSnapshotReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "vector_store.db")

	idx, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, idx.Build(context.Background(), []Chunk{
		{Source: "https://a.com", Content: "persisted chunk"},
	}))
	require.NoError(t, idx.Close())

	// Reopen the snapshot; schema and rows survive.
	idx2, err := Open(path)
	require.NoError(t, err)
	defer idx2.Close()

	got, err := idx2.Nearest(context.Background(), "persisted", 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "https://a.com", got[0].Source)
}

func TestSanitizeQuery(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"earnings report", `"earnings" OR "report"`},
		{"what's the P/E?", `"what" OR "the"`},
		{"", ""},
		{"? !", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeQuery(tt.in), "input %q", tt.in)
	}
}
