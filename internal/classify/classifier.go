// Package classify turns article text into a categorized sentence list and
// the claim list the rest of the pipeline verifies. Every collaborator
// failure degrades to a usable default; classification never blocks a
// request.
package classify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/claimlens/claimlens/internal/llm"
	"github.com/claimlens/claimlens/internal/logger"
	"github.com/claimlens/claimlens/internal/model"
)

// nowFunc is injectable for tests
var nowFunc = time.Now

// Classifier assigns verifiability categories to article sentences
type Classifier struct {
	provider llm.Provider
	minLen   int
	maxLen   int
}

// NewClassifier creates a classifier. provider may be nil, in which case
// every sentence degrades to not-verifiable.
func NewClassifier(provider llm.Provider, cfg model.ClassifyConfig) *Classifier {
	minLen, maxLen := cfg.MinSentenceLen, cfg.MaxSentenceLen
	if minLen <= 0 {
		minLen = 30
	}
	if maxLen <= 0 {
		maxLen = 300
	}
	return &Classifier{provider: provider, minLen: minLen, maxLen: maxLen}
}

// Classify segments the text, categorizes each sentence, rewrites the
// partially verifiable ones, and disambiguates the finalized verifiable set.
// It returns the enriched sentence list in order plus the derived claims.
func (c *Classifier) Classify(ctx context.Context, text string) ([]model.CategorizedSentence, []model.Claim) {
	sentences := SegmentSentences(text, c.minLen, c.maxLen)
	if len(sentences) == 0 {
		return nil, nil
	}

	categorized := c.categorize(ctx, sentences)
	c.rewritePartials(ctx, categorized)
	c.disambiguate(ctx, categorized)

	searchDate := nowFunc().Format(time.DateOnly)
	var claims []model.Claim
	for _, s := range categorized {
		if vt := s.VerifiableText(); vt != "" {
			claims = append(claims, model.Claim{Text: vt, SearchDate: searchDate})
		}
	}

	return categorized, claims
}

type categorizedItem struct {
	Index     int    `json:"index"`
	Category  string `json:"category"`
	Reasoning string `json:"reasoning"`
}

// categorize asks the collaborator for a three-way judgment per sentence.
// Malformed output degrades every sentence to not-verifiable.
func (c *Classifier) categorize(ctx context.Context, sentences []string) []model.CategorizedSentence {
	out := make([]model.CategorizedSentence, len(sentences))
	for i, s := range sentences {
		out[i] = model.CategorizedSentence{
			Text:      s,
			Category:  model.CategoryNotVerifiable,
			Reasoning: "categorization failed",
		}
	}

	if c.provider == nil {
		return out
	}

	raw, err := c.provider.Complete(ctx, llm.CompletionRequest{
		System:      categorizeSystemPrompt,
		Prompt:      buildCategorizePrompt(sentences),
		Temperature: 0.1,
	})
	if err != nil {
		logger.Log.Warnf("sentence categorization failed: %v", err)
		return out
	}

	var items []categorizedItem
	if err := llm.DecodeJSON(raw, &items); err != nil {
		logger.Log.Warnf("sentence categorization returned malformed JSON: %v", err)
		return out
	}

	for _, item := range items {
		if item.Index < 0 || item.Index >= len(out) {
			continue
		}
		out[item.Index].Category = normalizeCategory(item.Category)
		out[item.Index].Reasoning = item.Reasoning
	}

	return out
}

type rewriteItem struct {
	Index             int    `json:"index"`
	RewrittenSentence string `json:"rewrittenSentence"`
}

// rewritePartials asks for the verifiable residue of each partially
// verifiable sentence. Failure leaves every rewrite empty: the sentence then
// contributes no claim rather than failing the request.
func (c *Classifier) rewritePartials(ctx context.Context, sentences []model.CategorizedSentence) {
	var indices []int
	var partials []string
	for i, s := range sentences {
		if s.Category == model.CategoryPartiallyVerifiable {
			indices = append(indices, i)
			partials = append(partials, s.Text)
		}
	}
	if len(partials) == 0 || c.provider == nil {
		return
	}

	raw, err := c.provider.Complete(ctx, llm.CompletionRequest{
		System:      rewriteSystemPrompt,
		Prompt:      buildRewritePrompt(partials),
		Temperature: 0.1,
	})
	if err != nil {
		logger.Log.Warnf("verifiable-part rewrite failed: %v", err)
		return
	}

	var items []rewriteItem
	if err := llm.DecodeJSON(raw, &items); err != nil {
		logger.Log.Warnf("verifiable-part rewrite returned malformed JSON: %v", err)
		return
	}

	for _, item := range items {
		if item.Index < 0 || item.Index >= len(indices) {
			continue
		}
		sentences[indices[item.Index]].RewrittenVerifiablePart = strings.TrimSpace(item.RewrittenSentence)
	}
}

type disambiguationItem struct {
	Index                 int    `json:"index"`
	IsAmbiguous           bool   `json:"isAmbiguous"`
	Reasoning             string `json:"reasoning"`
	DisambiguatedSentence string `json:"disambiguatedSentence"`
}

// disambiguate runs one batched call over the finalized verifiable set:
// verifiable originals plus nonempty rewrites. Failure marks every sentence
// unambiguous so the claims remain usable.
func (c *Classifier) disambiguate(ctx context.Context, sentences []model.CategorizedSentence) {
	var indices []int
	var batch []string
	for i, s := range sentences {
		switch {
		case s.Category == model.CategoryVerifiable:
			indices = append(indices, i)
			batch = append(batch, s.Text)
		case s.Category == model.CategoryPartiallyVerifiable && s.RewrittenVerifiablePart != "":
			indices = append(indices, i)
			batch = append(batch, s.RewrittenVerifiablePart)
		}
	}
	if len(batch) == 0 {
		return
	}

	failOpen := func(reason string) {
		for _, idx := range indices {
			sentences[idx].Disambiguation = &model.DisambiguationResult{
				IsAmbiguous: false,
				Reasoning:   reason,
			}
		}
	}

	if c.provider == nil {
		failOpen("service error")
		return
	}

	raw, err := c.provider.Complete(ctx, llm.CompletionRequest{
		System:      disambiguateSystemPrompt,
		Prompt:      buildDisambiguatePrompt(batch),
		Temperature: 0.1,
	})
	if err != nil {
		logger.Log.Warnf("disambiguation failed: %v", err)
		failOpen("service error")
		return
	}

	var items []disambiguationItem
	if err := llm.DecodeJSON(raw, &items); err != nil {
		logger.Log.Warnf("disambiguation returned malformed JSON: %v", err)
		failOpen("service error")
		return
	}

	failOpen("")
	for _, item := range items {
		if item.Index < 0 || item.Index >= len(indices) {
			continue
		}
		sentences[indices[item.Index]].Disambiguation = &model.DisambiguationResult{
			IsAmbiguous:           item.IsAmbiguous,
			Reasoning:             item.Reasoning,
			DisambiguatedSentence: strings.TrimSpace(item.DisambiguatedSentence),
		}
	}
}

// normalizeCategory collapses collaborator label variants onto the closed
// three-way taxonomy; anything unrecognized is not-verifiable.
func normalizeCategory(raw string) model.SentenceCategory {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	switch s {
	case "verifiable":
		return model.CategoryVerifiable
	case "partially_verifiable", "partial":
		return model.CategoryPartiallyVerifiable
	default:
		return model.CategoryNotVerifiable
	}
}

const categorizeSystemPrompt = `You are a fact-checking assistant. Classify each sentence by whether it makes an independently verifiable factual assertion. Respond ONLY with a JSON array, no prose.`

func buildCategorizePrompt(sentences []string) string {
	var sb strings.Builder
	sb.WriteString("Classify each sentence as one of: verifiable, partially_verifiable, not_verifiable.\n")
	sb.WriteString("A sentence is verifiable when its factual content can be checked against external sources.\n")
	sb.WriteString("It is partially_verifiable when a verifiable assertion is mixed with opinion or speculation.\n\n")
	sb.WriteString("Sentences:\n")
	for i, s := range sentences {
		fmt.Fprintf(&sb, "%d. %s\n", i, s)
	}
	sb.WriteString("\nRespond with a JSON array: [{\"index\": 0, \"category\": \"verifiable\", \"reasoning\": \"...\"}, ...]\n")
	return sb.String()
}

const rewriteSystemPrompt = `You are a fact-checking assistant. Extract only the verifiable part of each sentence. Respond ONLY with a JSON array, no prose.`

func buildRewritePrompt(sentences []string) string {
	var sb strings.Builder
	sb.WriteString("For each sentence, return only the factual, verifiable part as a standalone sentence.\n")
	sb.WriteString("If nothing verifiable survives, return an empty string for that sentence.\n\n")
	sb.WriteString("Sentences:\n")
	for i, s := range sentences {
		fmt.Fprintf(&sb, "%d. %s\n", i, s)
	}
	sb.WriteString("\nRespond with a JSON array: [{\"index\": 0, \"rewrittenSentence\": \"...\"}, ...]\n")
	return sb.String()
}

const disambiguateSystemPrompt = `You are a fact-checking assistant. Judge referential and structural ambiguity. Respond ONLY with a JSON array, no prose.`

func buildDisambiguatePrompt(sentences []string) string {
	var sb strings.Builder
	sb.WriteString("For each sentence, decide whether it is ambiguous (unresolved pronouns, unclear referents, missing context).\n")
	sb.WriteString("When the ambiguity is resolvable from the sentence itself, provide a disambiguated version.\n\n")
	sb.WriteString("Sentences:\n")
	for i, s := range sentences {
		fmt.Fprintf(&sb, "%d. %s\n", i, s)
	}
	sb.WriteString("\nRespond with a JSON array: [{\"index\": 0, \"isAmbiguous\": false, \"reasoning\": \"...\", \"disambiguatedSentence\": \"\"}, ...]\n")
	return sb.String()
}
