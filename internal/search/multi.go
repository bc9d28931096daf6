package search

import (
	"context"
	"net/url"
	"strings"

	"github.com/claimlens/claimlens/internal/logger"
)

// EvidenceURLs is what the evidence gatherer consumes: up to MaxResults
// URLs plus the name of the provider that produced them. Provider "none"
// with zero URLs is the normal no-evidence outcome, not an error.
type EvidenceURLs struct {
	URLs     []string
	Provider string
}

// MultiSearcher tries the primary provider first, then the fallback. Both
// failing degrades to an empty result; search never blocks the pipeline.
type MultiSearcher struct {
	primary    Searcher
	fallback   Searcher
	maxResults int
}

// NewMultiSearcher creates a multi-provider searcher. Either provider may be
// nil when unconfigured.
func NewMultiSearcher(primary, fallback Searcher, maxResults int) *MultiSearcher {
	if maxResults <= 0 {
		maxResults = 3
	}
	return &MultiSearcher{primary: primary, fallback: fallback, maxResults: maxResults}
}

// FindEvidence searches for evidence URLs for a claim query, excluding the
// given domains (the article's own domain, to avoid circular verification).
func (m *MultiSearcher) FindEvidence(ctx context.Context, query string, excludeDomains []string) EvidenceURLs {
	req := &Request{
		Query:          query,
		MaxResults:     m.maxResults,
		ExcludeDomains: excludeDomains,
	}

	for _, s := range []Searcher{m.primary, m.fallback} {
		if s == nil {
			continue
		}

		resp, err := s.Search(ctx, req)
		if err != nil {
			logger.Log.Warnf("search provider %s failed: %v", s.Name(), err)
			continue
		}

		urls := filterURLs(resp.Results, excludeDomains, m.maxResults)
		if len(urls) > 0 {
			return EvidenceURLs{URLs: urls, Provider: s.Name()}
		}
	}

	return EvidenceURLs{URLs: []string{}, Provider: "none"}
}

// filterURLs drops results from excluded domains and caps the count. Not all
// providers honor exclude lists server-side, so this is enforced here too.
func filterURLs(results []Result, excludeDomains []string, max int) []string {
	var urls []string
	seen := make(map[string]bool)

	for _, r := range results {
		if len(urls) >= max {
			break
		}
		if r.URL == "" || seen[r.URL] {
			continue
		}
		if isExcluded(r.URL, excludeDomains) {
			continue
		}
		seen[r.URL] = true
		urls = append(urls, r.URL)
	}

	return urls
}

func isExcluded(rawURL string, excludeDomains []string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return true
	}

	host := strings.ToLower(parsed.Hostname())
	for _, d := range excludeDomains {
		d = strings.ToLower(strings.TrimPrefix(d, "www."))
		if d == "" {
			continue
		}
		bare := strings.TrimPrefix(host, "www.")
		if bare == d || strings.HasSuffix(bare, "."+d) {
			return true
		}
	}

	return false
}
