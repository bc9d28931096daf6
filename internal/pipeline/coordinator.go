// Package pipeline wires the analysis stages together: article extraction,
// claim classification, evidence gathering, and verdict generation. Each
// stage tolerates collaborator failure; only structurally invalid input
// rejects a request.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/claimlens/claimlens/internal/article"
	"github.com/claimlens/claimlens/internal/cache"
	"github.com/claimlens/claimlens/internal/classify"
	"github.com/claimlens/claimlens/internal/embed"
	"github.com/claimlens/claimlens/internal/evidence"
	"github.com/claimlens/claimlens/internal/heuristic"
	"github.com/claimlens/claimlens/internal/llm"
	"github.com/claimlens/claimlens/internal/logger"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/search"
	"github.com/claimlens/claimlens/internal/util"
	"github.com/claimlens/claimlens/internal/verdict"
	"github.com/claimlens/claimlens/internal/worker"
)

type articleExtractor interface {
	Extract(ctx context.Context, rawURL string) (*article.Result, error)
	ExtractBatch(ctx context.Context, urls []string, concurrency int) (*model.BatchExtractResult, error)
}

type claimClassifier interface {
	Classify(ctx context.Context, text string) ([]model.CategorizedSentence, []model.Claim)
}

type evidenceGatherer interface {
	Gather(ctx context.Context, claims []model.Claim, excludeDomains []string) []model.ClaimEvidence
}

type verdictGenerator interface {
	Generate(ctx context.Context, evidence []model.ClaimEvidence) []model.VerdictResult
}

// Coordinator sequences the full analysis pipeline
type Coordinator struct {
	extractor  articleExtractor
	classifier claimClassifier
	gatherer   evidenceGatherer
	engine     verdictGenerator
	detector   *heuristic.CategoryDetector
	config     *model.Config
}

// NewCoordinator builds a coordinator with the full collaborator stack.
// Unconfigured collaborators (missing API keys, disabled cache) degrade
// their stage rather than failing construction.
func NewCoordinator(cfg *model.Config) *Coordinator {
	var store cache.Cache
	if cfg.Cache.Enabled {
		store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}
	extractor := article.NewExtractor(cfg.HTTP, store, cfg.Cache.DiskTTL)

	var provider llm.Provider
	if p, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM)); err != nil {
		logger.Log.Warnf("llm provider unavailable, classification and verdicts will degrade: %v", err)
	} else {
		provider = p
	}

	var primary, fallback search.Searcher
	if cfg.Search.TavilyAPIKey != "" {
		primary = search.NewTavilyClient(cfg.Search.TavilyAPIKey, time.Duration(cfg.Search.Timeout)*time.Second)
	}
	if cfg.Search.SearXNGBaseURL != "" {
		fallback = search.NewSearXNGClient(cfg.Search.SearXNGBaseURL, time.Duration(cfg.Search.Timeout)*time.Second)
	}

	var embedder embed.Embedder
	embedKey := cfg.Embed.APIKey
	if embedKey == "" && cfg.LLM.Provider == "openai" {
		embedKey = cfg.LLM.APIKey
	}
	if embedKey != "" {
		if e, err := embed.NewOpenAIEmbedder(embedKey, cfg.Embed.BaseURL, cfg.Embed.Model); err != nil {
			logger.Log.Warnf("embedder unavailable, chunk selection will be positional: %v", err)
		} else {
			embedder = e
		}
	}

	var robots evidence.RobotsPolicy
	if cfg.HTTP.RespectRobots {
		robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	}

	return &Coordinator{
		extractor:  extractor,
		classifier: classify.NewClassifier(provider, cfg.Classify),
		gatherer: evidence.NewGatherer(
			search.NewMultiSearcher(primary, fallback, cfg.Search.MaxResults),
			extractor,
			embedder,
			worker.NewLimiter(cfg.HTTP.RatePerDomain, cfg.HTTP.RateBurst),
			robots,
			cfg.Evidence,
		),
		engine:   verdict.NewEngine(provider, cfg.Verdict),
		detector: heuristic.NewCategoryDetector(heuristic.BuiltinSourceTable()),
		config:   cfg,
	}
}

// Analyze runs the full pipeline for one URL and assembles the report.
// Collaborator failures inside the stages degrade individual claims; only
// an empty URL or unextractable article rejects the request.
func (c *Coordinator) Analyze(ctx context.Context, rawURL string) (*model.AggregateReport, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, fmt.Errorf("%w: no URL", model.ErrEmptyInput)
	}

	extracted, err := c.extractor.Extract(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(extracted.Content) == "" {
		return nil, fmt.Errorf("%w: no article content at %s", model.ErrExtractionFailure, rawURL)
	}

	report := &model.AggregateReport{
		SourceURL:  rawURL,
		Title:      extracted.Title,
		Category:   c.detector.Detect(extracted.Content),
		AnalyzedAt: time.Now().UTC(),
		Stats: model.ReportStats{
			VerdictCounts: make(map[model.Verdict]int),
		},
	}

	sentences, claims := c.classifier.Classify(ctx, extracted.Content)
	report.Stats.TotalSentences = len(sentences)
	report.Stats.TotalClaims = len(claims)

	logger.Log.Infof("classified %d sentences into %d claims for %s", len(sentences), len(claims), rawURL)

	if len(claims) == 0 {
		finalizeReport(report, nil)
		return report, nil
	}

	sets := c.gatherer.Gather(ctx, claims, []string{article.Domain(rawURL)})
	for _, set := range sets {
		for _, src := range set.Sources {
			if src.Error == "" {
				report.Stats.SourcesFetched++
			} else {
				report.Stats.SourcesFailed++
			}
		}
	}

	results := c.engine.Generate(ctx, sets)
	finalizeReport(report, results)

	return report, nil
}

// ExtractBatch extracts article content for many URLs under the worker pool
func (c *Coordinator) ExtractBatch(ctx context.Context, urls []string) (*model.BatchExtractResult, error) {
	return c.extractor.ExtractBatch(ctx, urls, c.config.Evidence.Concurrency)
}

// VerifyClaims judges caller-supplied claims against caller-supplied
// evidence texts, skipping search and fetch.
func (c *Coordinator) VerifyClaims(ctx context.Context, reqs []model.ClaimVerificationRequest) (*model.ClaimVerificationResult, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: no claims submitted", model.ErrEmptyInput)
	}

	sets := make([]model.ClaimEvidence, len(reqs))
	for i, req := range reqs {
		sets[i] = model.ClaimEvidence{Claim: model.Claim{Text: req.Claim}}
		for pos, text := range req.EvidenceTexts {
			sets[i].Chunks = append(sets[i].Chunks, model.EvidenceChunk{Text: text, Position: pos})
		}
	}

	results := c.engine.Generate(ctx, sets)

	return &model.ClaimVerificationResult{
		Results:      results,
		AverageScore: verdict.AggregateScore(results),
	}, nil
}

// finalizeReport fills the verdict-derived fields of a report
func finalizeReport(report *model.AggregateReport, results []model.VerdictResult) {
	report.Claims = results
	report.Stats.AnalyzedCount = len(results)
	for _, r := range results {
		report.Stats.VerdictCounts[r.Verdict]++
	}
	report.Stats.AverageTrustScore = verdict.AggregateScore(results)
	report.OverallScore = report.Stats.AverageTrustScore / 100
	report.VerdictLabel = model.OverallVerdictLabel(report.OverallScore)
}
