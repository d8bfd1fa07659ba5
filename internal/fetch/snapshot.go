// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/equity-scout/pkg/types"
)

// documentSnapshot is the on-disk form of a fetched document set.
type documentSnapshot struct {
	Documents []types.FetchedDocument `yaml:"documents"`
}

// WriteSnapshot saves fetched documents as YAML so later commands can score
// or re-synthesize them without touching the network.
func WriteSnapshot(docs []types.FetchedDocument, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating snapshot directory: %w", err)
		}
	}
	data, err := yaml.Marshal(documentSnapshot{Documents: docs})
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadSnapshot loads a document set written by WriteSnapshot.
func ReadSnapshot(path string) ([]types.FetchedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	var snap documentSnapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	return snap.Documents, nil
}
