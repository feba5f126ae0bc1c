package server

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/thesiskit/thesiskit/internal/model"
	"github.com/thesiskit/thesiskit/internal/report"
)

// FrameworkStore holds saved thesis frameworks.
//
// Records live in memory for the lifetime of the server; the rendered
// Markdown file is the only artifact that survives process exit. The
// map is mutex guarded because HTTP handlers run concurrently.
type FrameworkStore struct {
	mu      sync.RWMutex
	records map[string]*model.FrameworkRecord

	// dir is where framework Markdown files are written.
	dir string
}

// FrameworkSummary is one entry in the framework list response.
type FrameworkSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// NewFrameworkStore creates a store writing Markdown files to dir.
func NewFrameworkStore(dir string) *FrameworkStore {
	return &FrameworkStore{
		records: make(map[string]*model.FrameworkRecord),
		dir:     dir,
	}
}

// Save stores a framework and writes its Markdown file.
// The record ID is derived from the creation time, so a second save
// within the same second overwrites the first.
func (s *FrameworkStore) Save(f model.Framework, createdAt time.Time) (*model.FrameworkRecord, error) {
	record := model.NewFrameworkRecord(f, createdAt)

	content, err := report.FrameworkMarkdown(record)
	if err != nil {
		return nil, fmt.Errorf("failed to render framework: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create frameworks directory: %w", err)
	}

	path := filepath.Join(s.dir, record.ID+".md")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return nil, fmt.Errorf("failed to write framework file: %w", err)
	}

	s.mu.Lock()
	s.records[record.ID] = record
	s.mu.Unlock()

	return record, nil
}

// Get returns the record with the given ID.
func (s *FrameworkStore) Get(id string) (*model.FrameworkRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	return record, ok
}

// List returns summaries of all saved frameworks, oldest first.
func (s *FrameworkStore) List() []FrameworkSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]FrameworkSummary, 0, len(s.records))
	for _, record := range s.records {
		summaries = append(summaries, FrameworkSummary{
			ID:        record.ID,
			Title:     record.Title,
			CreatedAt: record.CreatedAt,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ID < summaries[j].ID
	})
	return summaries
}

// Len returns the number of saved frameworks.
func (s *FrameworkStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
