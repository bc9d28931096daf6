package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/claimlens/claimlens/internal/model"
)

const tavilyBaseURL = "https://api.tavily.com/search"

// TavilyClient is the primary search provider
type TavilyClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewTavilyClient creates a Tavily client
func NewTavilyClient(apiKey string, timeout time.Duration) *TavilyClient {
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	return &TavilyClient{
		apiKey:  apiKey,
		baseURL: tavilyBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Name returns the provider name
func (c *TavilyClient) Name() string {
	return "tavily"
}

type tavilyRequest struct {
	Query          string   `json:"query"`
	SearchDepth    string   `json:"search_depth,omitempty"`
	MaxResults     int      `json:"max_results,omitempty"`
	ExcludeDomains []string `json:"exclude_domains,omitempty"`
	StartDate      string   `json:"start_date,omitempty"`
	EndDate        string   `json:"end_date,omitempty"`
}

type tavilyResponse struct {
	Query   string `json:"query"`
	Results []struct {
		Title         string  `json:"title"`
		URL           string  `json:"url"`
		Content       string  `json:"content"`
		Score         float64 `json:"score"`
		PublishedDate string  `json:"published_date"`
	} `json:"results"`
}

// Search executes a Tavily search
func (c *TavilyClient) Search(ctx context.Context, req *Request) (*Response, error) {
	maxResults := req.MaxResults
	if maxResults == 0 {
		maxResults = 3
	}

	payload, err := json.Marshal(tavilyRequest{
		Query:          req.Query,
		SearchDepth:    "basic",
		MaxResults:     maxResults,
		ExcludeDomains: req.ExcludeDomains,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: tavily request: %v", model.ErrSearchFailure, err)
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: tavily api error (status %d): %s", model.ErrSearchFailure, res.StatusCode, string(body))
	}

	var parsed tavilyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	resp := &Response{}
	for _, r := range parsed.Results {
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
