package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/claimlens/claimlens/internal/model"
)

func reportFor(url string, at time.Time) *model.AggregateReport {
	return &model.AggregateReport{
		SourceURL:    url,
		OverallScore: 0.5,
		VerdictLabel: "mixed/uncertain",
		AnalyzedAt:   at,
	}
}

func TestStore_MostRecentFirst(t *testing.T) {
	s := NewStore(t.TempDir(), 50)
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	for i, url := range []string{"https://a.example", "https://b.example", "https://c.example"} {
		if err := s.Append(reportFor(url, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	entries, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].SourceURL != "https://c.example" || entries[2].SourceURL != "https://a.example" {
		t.Errorf("entries not most-recent-first: %v", entries)
	}
}

func TestStore_CapDropsOldest(t *testing.T) {
	s := NewStore(t.TempDir(), 3)
	base := time.Now().UTC()

	urls := []string{"https://1.example", "https://2.example", "https://3.example", "https://4.example", "https://5.example"}
	for i, url := range urls {
		if err := s.Append(reportFor(url, base.Add(time.Duration(i)*time.Second))); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	entries, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected cap of 3, got %d", len(entries))
	}
	if entries[0].SourceURL != "https://5.example" {
		t.Errorf("newest entry = %s", entries[0].SourceURL)
	}
	if entries[2].SourceURL != "https://3.example" {
		t.Errorf("oldest surviving entry = %s", entries[2].SourceURL)
	}
}

func TestStore_EmptyAndCorrupt(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, 50)

	entries, err := s.List()
	if err != nil || len(entries) != 0 {
		t.Errorf("fresh store should list nothing, got %v / %v", entries, err)
	}

	// A corrupt file is ignored rather than blocking new appends.
	if err := os.WriteFile(filepath.Join(dir, historyFile), []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.Append(reportFor("https://a.example", time.Now())); err != nil {
		t.Fatalf("append over corrupt file: %v", err)
	}
	entries, err = s.List()
	if err != nil || len(entries) != 1 {
		t.Errorf("expected 1 entry after recovery, got %v / %v", entries, err)
	}
}

func TestStore_Clear(t *testing.T) {
	s := NewStore(t.TempDir(), 50)
	if err := s.Append(reportFor("https://a.example", time.Now())); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	entries, _ := s.List()
	if len(entries) != 0 {
		t.Errorf("expected empty after clear, got %d", len(entries))
	}
	// Clearing an absent file is fine.
	if err := s.Clear(); err != nil {
		t.Errorf("second clear: %v", err)
	}
}
