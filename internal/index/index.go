// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index builds a similarity index over chunked document content and
// retrieves the chunks most relevant to a question. The index is a SQLite
// FTS5 table; opening it at a configured on-disk path gives a reusable
// snapshot between runs, while each run replaces the chunk set with its own
// documents so retrieval never mixes runs.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/equity-scout/pkg/types"
)

// Chunk is one content span from a document, tagged with its source URL.
type Chunk struct {
	Source  string
	Content string
}

// Split cuts each document into spans of about size characters with the
// given overlap between consecutive spans. Defaults: 1000/200. Chunks keep
// document order, so retrieval falls back gracefully when ranking ties.
func Split(docs []types.FetchedDocument, size, overlap int) []Chunk {
	if size <= 0 {
		size = 1000
	}
	if overlap < 0 || overlap >= size {
		overlap = size / 5
	}

	var chunks []Chunk
	step := size - overlap
	for _, doc := range docs {
		content := doc.Content
		for start := 0; start < len(content); start += step {
			end := start + size
			if end > len(content) {
				end = len(content)
			}
			chunks = append(chunks, Chunk{Source: doc.Source, Content: content[start:end]})
			if end == len(content) {
				break
			}
		}
	}
	return chunks
}

// Index is a searchable chunk store.
type Index struct {
	db *sql.DB
}

// Open opens or creates the index database at path. An empty path selects
// an in-memory database. The on-disk form is the warm-start snapshot:
// reopening it skips schema creation cost but a run always rebuilds the
// chunk rows for its own documents.
func Open(path string) (*Index, error) {
	dsn := ":memory:"
	if path != "" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating index directory: %w", err)
			}
		}
		dsn = path + "?_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening index database: %w", err)
	}

	idx := &Index{db: db}
	if err := idx.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating index schema: %w", err)
	}
	return idx, nil
}

// Close releases the database connection.
func (idx *Index) Close() error {
	return idx.db.Close()
}

func (idx *Index) createSchema() error {
	var exists int
	if err := idx.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='chunks'`,
	).Scan(&exists); err != nil {
		return fmt.Errorf("checking chunks table: %w", err)
	}
	if exists == 1 {
		return nil
	}
	_, err := idx.db.Exec(
		`CREATE VIRTUAL TABLE chunks USING fts5(source UNINDEXED, content)`)
	if err != nil {
		return fmt.Errorf("creating FTS table: %w", err)
	}
	return nil
}

// Build replaces the chunk set with the given chunks.
func (idx *Index) Build(ctx context.Context, chunks []Chunk) error {
	tx, err := idx.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning index transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM chunks`); err != nil {
		return fmt.Errorf("clearing chunks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO chunks(source, content) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range chunks {
		if _, err := stmt.ExecContext(ctx, c.Source, c.Content); err != nil {
			return fmt.Errorf("inserting chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing index: %w", err)
	}
	return nil
}

// Nearest returns up to k chunks ranked by relevance to query. A query with
// no indexable terms returns the first k chunks in insertion order.
func (idx *Index) Nearest(ctx context.Context, query string, k int) ([]Chunk, error) {
	if k <= 0 {
		k = 5
	}

	match := sanitizeQuery(query)
	var (
		rows *sql.Rows
		err  error
	)
	if match == "" {
		rows, err = idx.db.QueryContext(ctx,
			`SELECT source, content FROM chunks LIMIT ?`, k)
	} else {
		rows, err = idx.db.QueryContext(ctx,
			`SELECT source, content FROM chunks WHERE chunks MATCH ? ORDER BY rank LIMIT ?`,
			match, k)
	}
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var out []Chunk
	for rows.Next() {
		var c Chunk
		if err := rows.Scan(&c.Source, &c.Content); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	// FTS MATCH is conjunctive over terms; a question with rare terms can
	// match nothing. Fall back to insertion order rather than returning an
	// empty context.
	if len(out) == 0 && match != "" {
		return idx.Nearest(ctx, "", k)
	}
	return out, nil
}

// sanitizeQuery turns free text into an FTS5 OR-query of its alphanumeric
// terms, dropping anything the MATCH grammar could misread.
func sanitizeQuery(query string) string {
	fields := strings.FieldsFunc(query, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	})
	var terms []string
	for _, f := range fields {
		if len(f) > 1 {
			terms = append(terms, `"`+f+`"`)
		}
	}
	return strings.Join(terms, " OR ")
}
