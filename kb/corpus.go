// Package kb loads the plain-text knowledge corpus and ranks its documents
// against a query with a TF-IDF cosine-similarity index.
//
// The corpus is a directory of UTF-8 .txt files, one retrievable document per
// file. It is read once at startup; the hosting application constructs the
// Index explicitly and hands it to the retrieval responder, so there is no
// hidden global and no first-query cost spike. The index is read-only after
// construction and safe for concurrent use.
package kb

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Document is a single knowledge-base entry.
type Document struct {
	Path string
	Text string
}

// Load reads every *.txt file under dir, in lexical filename order. A missing
// directory is created and yields an empty corpus, which is a valid state:
// retrieval then always reports no information. Files that are not valid
// UTF-8 are decoded best-effort by dropping invalid bytes; empty files are
// skipped.
func Load(dir string) ([]Document, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating corpus dir: %w", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading corpus dir: %w", err)
	}

	var docs []Document
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		b, err := os.ReadFile(path) //nolint:gosec
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		text := strings.TrimSpace(strings.ToValidUTF8(string(b), ""))
		if text == "" {
			continue
		}
		docs = append(docs, Document{Path: path, Text: text})
	}
	return docs, nil
}
