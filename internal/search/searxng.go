package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/claimlens/claimlens/internal/model"
)

// SearXNGClient is the fallback search provider, talking to a self-hosted
// SearXNG instance.
type SearXNGClient struct {
	baseURL string
	client  *http.Client
}

// NewSearXNGClient creates a SearXNG client
func NewSearXNGClient(baseURL string, timeout time.Duration) *SearXNGClient {
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	return &SearXNGClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Name returns the provider name
func (c *SearXNGClient) Name() string {
	return "searxng"
}

var _ Searcher = (*SearXNGClient)(nil)

type searxngResponse struct {
	Query   string `json:"query"`
	Results []struct {
		Title         string  `json:"title"`
		URL           string  `json:"url"`
		Content       string  `json:"content"`
		PublishedDate string  `json:"publishedDate"`
		Score         float64 `json:"score"`
	} `json:"results"`
}

// Search executes a SearXNG search. SearXNG has no exclude-domain parameter;
// excluded domains are filtered by the caller.
func (c *SearXNGClient) Search(ctx context.Context, req *Request) (*Response, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	u.Path = "/search"

	q := u.Query()
	q.Set("q", req.Query)
	q.Set("format", "json")
	q.Set("categories", "general")
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: searxng request: %v", model.ErrSearchFailure, err)
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: searxng error (status %d): %s", model.ErrSearchFailure, res.StatusCode, string(body))
	}

	var parsed searxngResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	maxResults := req.MaxResults
	if maxResults == 0 {
		maxResults = 3
	}

	resp := &Response{}
	for _, r := range parsed.Results {
		if len(resp.Results) >= maxResults {
			break
		}
		resp.Results = append(resp.Results, Result{
			Title:         r.Title,
			URL:           r.URL,
			Content:       r.Content,
			Score:         r.Score,
			PublishedDate: r.PublishedDate,
		})
	}

	return resp, nil
}
