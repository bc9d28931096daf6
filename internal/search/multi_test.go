package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claimlens/claimlens/internal/model"
)

type stubSearcher struct {
	name    string
	results []Result
	err     error
	calls   int
}

func (s *stubSearcher) Name() string { return s.name }

func (s *stubSearcher) Search(ctx context.Context, req *Request) (*Response, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &Response{Results: s.results}, nil
}

func TestMultiSearcher_PrimaryWins(t *testing.T) {
	primary := &stubSearcher{name: "tavily", results: []Result{{URL: "https://a.com/1"}}}
	fallback := &stubSearcher{name: "searxng", results: []Result{{URL: "https://b.com/1"}}}

	m := NewMultiSearcher(primary, fallback, 3)
	got := m.FindEvidence(context.Background(), "query", nil)

	if got.Provider != "tavily" {
		t.Errorf("expected tavily, got %s", got.Provider)
	}
	if len(got.URLs) != 1 || got.URLs[0] != "https://a.com/1" {
		t.Errorf("unexpected urls: %v", got.URLs)
	}
	if fallback.calls != 0 {
		t.Error("fallback should not be called when primary succeeds")
	}
}

func TestMultiSearcher_FallsBack(t *testing.T) {
	primary := &stubSearcher{name: "tavily", err: errors.New("provider down")}
	fallback := &stubSearcher{name: "searxng", results: []Result{{URL: "https://b.com/1"}}}

	m := NewMultiSearcher(primary, fallback, 3)
	got := m.FindEvidence(context.Background(), "query", nil)

	if got.Provider != "searxng" {
		t.Errorf("expected searxng, got %s", got.Provider)
	}
	if len(got.URLs) != 1 {
		t.Errorf("expected 1 url, got %d", len(got.URLs))
	}
}

func TestMultiSearcher_BothFailIsNotAnError(t *testing.T) {
	primary := &stubSearcher{name: "tavily", err: errors.New("down")}
	fallback := &stubSearcher{name: "searxng", err: errors.New("also down")}

	m := NewMultiSearcher(primary, fallback, 3)
	got := m.FindEvidence(context.Background(), "query", nil)

	if got.Provider != "none" {
		t.Errorf("expected none, got %s", got.Provider)
	}
	if len(got.URLs) != 0 {
		t.Errorf("expected no urls, got %v", got.URLs)
	}
}

func TestMultiSearcher_NilProviders(t *testing.T) {
	m := NewMultiSearcher(nil, nil, 3)
	got := m.FindEvidence(context.Background(), "query", nil)
	if got.Provider != "none" || len(got.URLs) != 0 {
		t.Errorf("expected empty degradation, got %+v", got)
	}
}

func TestMultiSearcher_ExcludesSourceDomain(t *testing.T) {
	primary := &stubSearcher{name: "tavily", results: []Result{
		{URL: "https://www.example.com/article"},
		{URL: "https://news.example.com/copy"},
		{URL: "https://independent.org/report"},
	}}

	m := NewMultiSearcher(primary, nil, 3)
	got := m.FindEvidence(context.Background(), "query", []string{"example.com"})

	if len(got.URLs) != 1 || got.URLs[0] != "https://independent.org/report" {
		t.Errorf("expected only the independent url, got %v", got.URLs)
	}
}

func TestMultiSearcher_CapsAndDedupes(t *testing.T) {
	primary := &stubSearcher{name: "tavily", results: []Result{
		{URL: "https://a.com/1"},
		{URL: "https://a.com/1"},
		{URL: "https://b.com/1"},
		{URL: "https://c.com/1"},
		{URL: "https://d.com/1"},
	}}

	m := NewMultiSearcher(primary, nil, 3)
	got := m.FindEvidence(context.Background(), "query", nil)

	if len(got.URLs) != 3 {
		t.Errorf("expected 3 urls, got %d: %v", len(got.URLs), got.URLs)
	}
}

func TestTavilyClient_APIErrorWrapsSearchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := NewTavilyClient("test-key", time.Second)
	c.baseURL = server.URL

	_, err := c.Search(context.Background(), &Request{Query: "q"})
	if err == nil {
		t.Fatal("expected error for 429")
	}
	if !errors.Is(err, model.ErrSearchFailure) {
		t.Errorf("expected ErrSearchFailure, got %v", err)
	}
}

func TestSearXNGClient_APIErrorWrapsSearchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewSearXNGClient(server.URL, time.Second)

	_, err := c.Search(context.Background(), &Request{Query: "q"})
	if err == nil {
		t.Fatal("expected error for 502")
	}
	if !errors.Is(err, model.ErrSearchFailure) {
		t.Errorf("expected ErrSearchFailure, got %v", err)
	}
}

func TestIsExcluded(t *testing.T) {
	cases := []struct {
		url     string
		domains []string
		want    bool
	}{
		{"https://example.com/a", []string{"example.com"}, true},
		{"https://www.example.com/a", []string{"example.com"}, true},
		{"https://sub.example.com/a", []string{"example.com"}, true},
		{"https://notexample.com/a", []string{"example.com"}, false},
		{"https://example.org/a", []string{"example.com"}, false},
		{"https://example.com/a", nil, false},
		{"://bad", []string{"example.com"}, true},
	}

	for _, tc := range cases {
		if got := isExcluded(tc.url, tc.domains); got != tc.want {
			t.Errorf("isExcluded(%q, %v) = %v, want %v", tc.url, tc.domains, got, tc.want)
		}
	}
}
