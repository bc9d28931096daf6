// Package history keeps a bounded record of past analyses on disk: newest
// first, oldest dropped past the cap.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/claimlens/claimlens/internal/model"
)

const historyFile = "history.json"

// Entry is one recorded analysis
type Entry struct {
	SourceURL    string    `json:"source_url"`
	Title        string    `json:"title,omitempty"`
	OverallScore float64   `json:"overall_score"`
	VerdictLabel string    `json:"verdict_label"`
	TotalClaims  int       `json:"total_claims"`
	AnalyzedAt   time.Time `json:"analyzed_at"`
}

// Store persists entries as a single JSON file under dir
type Store struct {
	path  string
	limit int
	mu    sync.Mutex
}

// NewStore creates a store writing to dir. limit caps the number of kept
// entries; values under 1 fall back to 50.
func NewStore(dir string, limit int) *Store {
	if limit <= 0 {
		limit = 50
	}
	return &Store{path: filepath.Join(dir, historyFile), limit: limit}
}

// Append records a report at the head of the history, trimming the tail
// past the cap
func (s *Store) Append(report *model.AggregateReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}

	entry := Entry{
		SourceURL:    report.SourceURL,
		Title:        report.Title,
		OverallScore: report.OverallScore,
		VerdictLabel: report.VerdictLabel,
		TotalClaims:  report.Stats.TotalClaims,
		AnalyzedAt:   report.AnalyzedAt,
	}

	entries = append([]Entry{entry}, entries...)
	if len(entries) > s.limit {
		entries = entries[:s.limit]
	}

	return s.save(entries)
}

// List returns all recorded entries, most recent first
func (s *Store) List() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Clear removes the history file
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func (s *Store) load() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		// A corrupt file should not make analyses unrecordable.
		return nil, nil
	}
	return entries, nil
}

func (s *Store) save(entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}
