// Package verdict turns gathered evidence into per-claim verdicts. Claims go
// to the LLM collaborator in fixed-size batches; a failed batch degrades to
// synthetic unclear verdicts without touching its neighbors.
package verdict

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/claimlens/claimlens/internal/llm"
	"github.com/claimlens/claimlens/internal/logger"
	"github.com/claimlens/claimlens/internal/model"
)

const placeholderQuote = "no supporting quote available"

// Engine generates verdicts for claims against their evidence
type Engine struct {
	provider  llm.Provider
	batchSize int
}

// NewEngine creates a verdict engine. provider may be nil, in which case
// every claim receives the synthetic unclear verdict.
func NewEngine(provider llm.Provider, cfg model.VerdictConfig) *Engine {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 5
	}
	return &Engine{provider: provider, batchSize: batchSize}
}

// Generate returns one verdict per evidence set, in input order. Batches run
// sequentially; a batch failure yields synthetic results for that batch only.
func (e *Engine) Generate(ctx context.Context, evidence []model.ClaimEvidence) []model.VerdictResult {
	results := make([]model.VerdictResult, 0, len(evidence))
	for start := 0; start < len(evidence); start += e.batchSize {
		end := start + e.batchSize
		if end > len(evidence) {
			end = len(evidence)
		}
		results = append(results, e.generateBatch(ctx, evidence[start:end])...)
	}
	return results
}

// AggregateScore is the arithmetic mean of the per-claim trust scores, or 0
// when there are none.
func AggregateScore(results []model.VerdictResult) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, r := range results {
		sum += r.TrustScore
	}
	return sum / float64(len(results))
}

func (e *Engine) generateBatch(ctx context.Context, batch []model.ClaimEvidence) []model.VerdictResult {
	results := make([]model.VerdictResult, len(batch))
	for i, ev := range batch {
		results[i] = syntheticResult(ev)
	}

	if e.provider == nil {
		return results
	}

	raw, err := e.provider.Complete(ctx, llm.CompletionRequest{
		System:      verdictSystemPrompt,
		Prompt:      buildVerdictPrompt(batch),
		Temperature: 0.1,
	})
	if err != nil {
		logger.Log.Warnf("verdict batch failed: %v", err)
		return results
	}

	items, err := decodeVerdictItems(raw)
	if err != nil {
		logger.Log.Warnf("verdict batch returned malformed JSON: %v", err)
		return results
	}

	for _, item := range items {
		if item.Index < 0 || item.Index >= len(batch) {
			continue
		}
		results[item.Index] = resultFromItem(batch[item.Index], item)
	}

	return results
}

// syntheticResult is the degraded verdict used when generation fails or no
// collaborator is configured.
func syntheticResult(ev model.ClaimEvidence) model.VerdictResult {
	return model.VerdictResult{
		Claim:           ev.Claim,
		Verdict:         model.VerdictUnclear,
		TrustScore:      0,
		ReferenceQuotes: []string{placeholderQuote},
		EvidenceURLs:    sourceURLs(ev),
	}
}

func resultFromItem(ev model.ClaimEvidence, item verdictItem) model.VerdictResult {
	verdict := model.NormalizeVerdict(item.Verdict)

	score := verdict.FallbackScore()
	if item.TrustScore != nil && *item.TrustScore >= 0 {
		score = model.ClampTrustScore(*item.TrustScore)
	}

	quotes := item.Quotes
	if len(quotes) > 3 {
		quotes = quotes[:3]
	}
	if len(quotes) == 0 {
		quotes = []string{placeholderQuote}
	}

	return model.VerdictResult{
		Claim:           ev.Claim,
		Verdict:         verdict,
		TrustScore:      score,
		ReferenceQuotes: quotes,
		EvidenceURLs:    sourceURLs(ev),
	}
}

func sourceURLs(ev model.ClaimEvidence) []string {
	var urls []string
	for _, s := range ev.Sources {
		if s.Error == "" {
			urls = append(urls, s.URL)
		}
	}
	return urls
}

// verdictItem is the normalized shape of one collaborator response entry.
// Collaborators vary key casing freely ("verdict", "Verdict", "trustScore",
// "Trust_Score"), so decoding goes through a key-folding pass rather than
// struct tags.
type verdictItem struct {
	Index      int
	Verdict    string
	TrustScore *float64
	Quotes     []string
}

func decodeVerdictItems(raw string) ([]verdictItem, error) {
	var entries []map[string]json.RawMessage
	if err := llm.DecodeJSON(raw, &entries); err != nil {
		return nil, err
	}

	items := make([]verdictItem, 0, len(entries))
	for _, entry := range entries {
		folded := make(map[string]json.RawMessage, len(entry))
		for k, v := range entry {
			folded[foldKey(k)] = v
		}

		item := verdictItem{Index: -1}
		if v, ok := folded["index"]; ok {
			_ = json.Unmarshal(v, &item.Index)
		}
		if v, ok := folded["verdict"]; ok {
			_ = json.Unmarshal(v, &item.Verdict)
		}
		if v, ok := folded["trustscore"]; ok {
			var score float64
			if json.Unmarshal(v, &score) == nil {
				item.TrustScore = &score
			}
		}
		for _, key := range []string{"quotes", "referencequotes"} {
			if v, ok := folded[key]; ok {
				_ = json.Unmarshal(v, &item.Quotes)
				break
			}
		}
		items = append(items, item)
	}

	return items, nil
}

// foldKey lowercases a JSON key and strips underscores and hyphens, so
// trustScore, trust_score, and Trust-Score all fold together
func foldKey(k string) string {
	k = strings.ToLower(k)
	k = strings.NewReplacer("_", "", "-", "").Replace(k)
	return k
}

const verdictSystemPrompt = `You are a fact-checking assistant. Judge each claim strictly against the evidence provided, not your own knowledge. Respond ONLY with a JSON array, no prose.`

func buildVerdictPrompt(batch []model.ClaimEvidence) string {
	var sb strings.Builder
	sb.WriteString("For each claim, issue a verdict: support, partially_support, unclear, contradict, or refute.\n")
	sb.WriteString("Quote 1-3 exact passages from the evidence that justify the verdict.\n")
	sb.WriteString("Optionally include a trustScore from 0 to 100.\n\n")

	for i, ev := range batch {
		fmt.Fprintf(&sb, "Claim %d: %s\n", i, ev.Claim.Text)
		texts := ev.EvidenceTexts()
		if len(texts) == 0 {
			sb.WriteString("Evidence: none found\n\n")
			continue
		}
		sb.WriteString("Evidence:\n")
		for _, t := range texts {
			fmt.Fprintf(&sb, "- %s\n", t)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Respond with a JSON array: [{\"index\": 0, \"verdict\": \"support\", \"quotes\": [\"...\"], \"trustScore\": 85}, ...]\n")
	return sb.String()
}
