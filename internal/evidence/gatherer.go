// Package evidence gathers external sources for claims: a web search per
// claim, a bounded parallel fetch of the resulting URLs, and a semantic
// selection of the most relevant content spans. Every stage degrades
// independently; a claim with no usable evidence is a normal outcome.
package evidence

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/claimlens/claimlens/internal/article"
	"github.com/claimlens/claimlens/internal/embed"
	"github.com/claimlens/claimlens/internal/logger"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/search"
	"github.com/claimlens/claimlens/internal/worker"
)

// Searcher finds candidate evidence URLs for a claim query
type Searcher interface {
	FindEvidence(ctx context.Context, query string, excludeDomains []string) search.EvidenceURLs
}

// Fetcher turns an evidence URL into extracted article content
type Fetcher interface {
	Extract(ctx context.Context, rawURL string) (*article.Result, error)
}

// RobotsPolicy decides whether a URL may be fetched
type RobotsPolicy interface {
	Allowed(ctx context.Context, rawURL string) bool
}

// Gatherer runs the search-fetch-select sequence for a set of claims
type Gatherer struct {
	searcher Searcher
	fetcher  Fetcher
	embedder embed.Embedder // nil falls back to positional chunk selection
	limiter  *worker.Limiter
	robots   RobotsPolicy // nil skips robots checks
	cfg      model.EvidenceConfig
}

// NewGatherer creates a gatherer. searcher, embedder, limiter, and robots
// may each be nil; each absence degrades that stage rather than disabling
// gathering.
func NewGatherer(searcher Searcher, fetcher Fetcher, embedder embed.Embedder, limiter *worker.Limiter, robots RobotsPolicy, cfg model.EvidenceConfig) *Gatherer {
	if cfg.MaxSourcesPerClaim <= 0 {
		cfg.MaxSourcesPerClaim = 3
	}
	if cfg.ChunksPerSource <= 0 {
		cfg.ChunksPerSource = 3
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 30 * time.Second
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 10
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 10
	}
	if cfg.ContentMaxChars <= 0 {
		cfg.ContentMaxChars = 4000
	}
	return &Gatherer{
		searcher: searcher,
		fetcher:  fetcher,
		embedder: embedder,
		limiter:  limiter,
		robots:   robots,
		cfg:      cfg,
	}
}

// Gather returns one evidence set per claim, in claim order. It never
// returns an error: failed searches and fetches surface as empty URL sets
// and per-source error strings.
func (g *Gatherer) Gather(ctx context.Context, claims []model.Claim, excludeDomains []string) []model.ClaimEvidence {
	out := make([]model.ClaimEvidence, len(claims))
	for i, c := range claims {
		out[i] = model.ClaimEvidence{Claim: c}
	}
	if len(claims) == 0 {
		return out
	}

	urls := g.searchAll(ctx, claims, excludeDomains)

	type task struct {
		claimIdx int
		url      string
	}
	var tasks []task
	for i, set := range urls {
		for _, u := range set {
			tasks = append(tasks, task{claimIdx: i, url: u})
		}
	}

	// Fetch in fixed-size batches under a concurrency cap: the next batch
	// starts only after every fetch in the current one has settled.
	sources := make([]model.EvidenceSource, len(tasks))
	sem := make(chan struct{}, g.cfg.Concurrency)
	for start := 0; start < len(tasks); start += g.cfg.BatchSize {
		end := start + g.cfg.BatchSize
		if end > len(tasks) {
			end = len(tasks)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()
				sources[i] = g.fetchOne(ctx, claims[tasks[i].claimIdx].Text, tasks[i].url)
			}(i)
		}
		wg.Wait()
	}

	for i, src := range sources {
		idx := tasks[i].claimIdx
		out[idx].Sources = append(out[idx].Sources, src)
		if src.Error == "" && src.ExtractedContent != "" {
			chunks := SelectChunks(ctx, g.embedder, claims[idx].Text, src.ExtractedContent, g.cfg.ChunksPerSource)
			out[idx].Chunks = append(out[idx].Chunks, chunks...)
		}
	}

	return out
}

// searchAll runs the per-claim searches fully in parallel
func (g *Gatherer) searchAll(ctx context.Context, claims []model.Claim, excludeDomains []string) [][]string {
	urls := make([][]string, len(claims))
	if g.searcher == nil {
		return urls
	}

	var wg sync.WaitGroup
	for i, c := range claims {
		wg.Add(1)
		go func(i int, c model.Claim) {
			defer wg.Done()
			query := c.Text
			if c.SearchDate != "" {
				query += " " + c.SearchDate
			}
			found := g.searcher.FindEvidence(ctx, query, excludeDomains)
			if len(found.URLs) > g.cfg.MaxSourcesPerClaim {
				found.URLs = found.URLs[:g.cfg.MaxSourcesPerClaim]
			}
			urls[i] = found.URLs
		}(i, c)
	}
	wg.Wait()

	return urls
}

// fetchOne fetches and extracts a single evidence URL. The fetch is raced
// against an independent timeout; on timeout the underlying fetch keeps
// running and its result is discarded.
func (g *Gatherer) fetchOne(ctx context.Context, claimText, rawURL string) model.EvidenceSource {
	src := model.EvidenceSource{ClaimText: claimText, URL: rawURL}

	if g.robots != nil && !g.robots.Allowed(ctx, rawURL) {
		src.Error = "blocked by robots.txt"
		return src
	}

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx, rawURL); err != nil {
			src.Error = fmt.Sprintf("rate limit wait: %v", err)
			return src
		}
	}

	type outcome struct {
		result *article.Result
		err    error
	}
	ch := make(chan outcome, 1)
	go func() {
		r, err := g.fetcher.Extract(ctx, rawURL)
		ch <- outcome{result: r, err: err}
	}()

	timer := time.NewTimer(g.cfg.FetchTimeout)
	defer timer.Stop()

	select {
	case o := <-ch:
		if o.err != nil {
			logger.Log.Debugf("evidence fetch failed for %s: %v", rawURL, o.err)
			src.Error = o.err.Error()
			return src
		}
		src.Title = o.result.Title
		src.Excerpt = o.result.Excerpt
		src.ExtractedContent = truncateChars(o.result.Content, g.cfg.ContentMaxChars)
		return src
	case <-timer.C:
		logger.Log.Debugf("evidence fetch timed out for %s", rawURL)
		src.Error = fmt.Sprintf("fetch timed out after %s", g.cfg.FetchTimeout)
		return src
	case <-ctx.Done():
		src.Error = ctx.Err().Error()
		return src
	}
}

// truncateChars bounds a string to max characters without splitting a rune
func truncateChars(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
