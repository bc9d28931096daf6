package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/claimlens/claimlens/internal/model"
)

type mockAnalyzer struct {
	shouldError bool
}

func (m *mockAnalyzer) Analyze(ctx context.Context, url string) (*model.AggregateReport, error) {
	time.Sleep(5 * time.Millisecond)
	if m.shouldError {
		return nil, errors.New("analyze error")
	}
	return &model.AggregateReport{SourceURL: url, VerdictLabel: "mixed/uncertain"}, nil
}

func TestBatchRunner_Run(t *testing.T) {
	runner := NewBatchRunner(&mockAnalyzer{}, 2)

	urls := []string{"http://example.com", "http://example.org", "http://example.net"}
	results := runner.Run(context.Background(), urls)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, res := range results {
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.URL, res.Error)
		}
		if res.Report == nil {
			t.Errorf("expected report for %s", res.URL)
		}
	}
}

func TestBatchRunner_ErrorsDoNotAbortSiblings(t *testing.T) {
	runner := NewBatchRunner(&mockAnalyzer{shouldError: true}, 2)

	results := runner.Run(context.Background(), []string{"http://a.com", "http://b.com"})

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, res := range results {
		if res.Error == nil {
			t.Errorf("expected error result for %s", res.URL)
		}
		if res.Report != nil {
			t.Errorf("expected nil report on error for %s", res.URL)
		}
	}
}

func TestBatchRunner_EmptyInput(t *testing.T) {
	runner := NewBatchRunner(&mockAnalyzer{}, 2)
	results := runner.Run(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestReadURLsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := "http://example.com\n# comment\n\nhttp://example.org\nhttp://example.com\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	urls, err := ReadURLsFromFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	want := []string{"http://example.com", "http://example.org"}
	if len(urls) != len(want) {
		t.Fatalf("expected %d urls, got %d: %v", len(want), len(urls), urls)
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Errorf("urls[%d] = %q, want %q", i, urls[i], want[i])
		}
	}
}
