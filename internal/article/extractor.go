// Package article turns a URL into clean article text. Readability does the
// heavy lifting; a plain visible-text walk of the DOM is the fallback when
// readability cannot find an article node.
package article

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"

	"github.com/claimlens/claimlens/internal/cache"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/util"
)

// Extractor fetches URLs and extracts their article text
type Extractor struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	store      cache.Cache // nil disables caching
	cacheTTL   time.Duration
}

// NewExtractor creates an extractor. store may be nil to disable caching.
func NewExtractor(cfg model.HTTPConfig, store cache.Cache, cacheTTL time.Duration) *Extractor {
	return &Extractor{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		store:     store,
		cacheTTL:  cacheTTL,
	}
}

// Result is the extracted article content for one URL
type Result struct {
	URL     string `json:"url"`
	Title   string `json:"title,omitempty"`
	Excerpt string `json:"excerpt,omitempty"`
	Content string `json:"content"`
}

// Extract fetches the URL and returns its article text. Both fetch and
// parse failures wrap model.ErrExtractionFailure.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*Result, error) {
	if e.store != nil {
		if raw, found := e.store.Get(cache.Key(rawURL)); found {
			var cached Result
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	body, finalURL, err := e.fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %v", model.ErrExtractionFailure, rawURL, err)
	}

	result, err := e.parse(body, finalURL)
	if err != nil {
		return nil, err
	}
	result.URL = rawURL

	if e.store != nil {
		if raw, err := json.Marshal(result); err == nil {
			_ = e.store.Set(cache.Key(rawURL), raw, e.cacheTTL)
		}
	}

	return result, nil
}

func (e *Extractor) fetch(ctx context.Context, rawURL string) (string, *url.URL, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	limited := io.LimitReader(resp.Body, e.maxBytes)
	body, err := io.ReadAll(limited)
	if err != nil {
		return "", nil, fmt.Errorf("read body: %w", err)
	}

	return string(body), resp.Request.URL, nil
}

func (e *Extractor) parse(htmlContent string, pageURL *url.URL) (*Result, error) {
	article, err := readability.FromReader(strings.NewReader(htmlContent), pageURL)
	if err == nil && strings.TrimSpace(article.TextContent) != "" {
		return &Result{
			Title:   article.Title,
			Excerpt: article.Excerpt,
			Content: NormalizeWhitespace(article.TextContent),
		}, nil
	}

	// Readability found no article node; fall back to visible text.
	text := visibleText(htmlContent)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: no content", model.ErrExtractionFailure)
	}

	return &Result{Content: NormalizeWhitespace(text)}, nil
}

// visibleText walks the DOM collecting text nodes, skipping scripts/styles
func visibleText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return buf.String()
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeWhitespace collapses runs of whitespace into single spaces
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// Domain returns the bare host of a URL, without a www prefix
func Domain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
}
