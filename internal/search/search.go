// Package search wraps the web search collaborators behind a common
// interface. Providers are fallible; MultiSearcher degrades from primary to
// fallback and finally to an empty result set, never to an error.
package search

import "context"

// Searcher is a single search provider
type Searcher interface {
	// Name returns the provider name
	Name() string

	// Search executes one query
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Request is a provider-agnostic search request
type Request struct {
	Query          string
	MaxResults     int
	StartDate      string // YYYY-MM-DD, biases recency where supported
	EndDate        string
	ExcludeDomains []string
}

// Response is a provider-agnostic search response
type Response struct {
	Results []Result
}

// Result is a single search hit
type Result struct {
	Title         string
	URL           string
	Content       string
	Score         float64
	PublishedDate string
}
