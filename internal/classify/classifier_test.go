package classify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/claimlens/claimlens/internal/llm"
	"github.com/claimlens/claimlens/internal/model"
)

// scriptedProvider returns canned responses in call order and records the
// prompts it was sent.
type scriptedProvider struct {
	responses []string
	errs      []error
	prompts   []string
	call      int
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	p.prompts = append(p.prompts, req.Prompt)
	i := p.call
	p.call++
	if i < len(p.errs) && p.errs[i] != nil {
		return "", p.errs[i]
	}
	if i < len(p.responses) {
		return p.responses[i], nil
	}
	return "", errors.New("no scripted response")
}

const classifierText = "The dam generated 22,500 megawatts of electricity during peak output. " +
	"Amazingly, the plant came online in 2012 after years of construction. " +
	"In my opinion this was the most beautiful project of the entire decade."

func TestClassifier_HappyPath(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		// categorize: verifiable, partially verifiable, not verifiable
		`[{"index":0,"category":"verifiable","reasoning":"specific figure"},
		  {"index":1,"category":"partially_verifiable","reasoning":"mixes awe with fact"},
		  {"index":2,"category":"not_verifiable","reasoning":"pure opinion"}]`,
		// rewrite of the single partial
		`[{"index":0,"rewrittenSentence":"The plant came online in 2012."}]`,
		// disambiguation over 2 verifiable texts
		`[{"index":0,"isAmbiguous":true,"reasoning":"which dam","disambiguatedSentence":"The Three Gorges Dam generated 22,500 megawatts of electricity during peak output."},
		  {"index":1,"isAmbiguous":false,"reasoning":"clear"}]`,
	}}

	c := NewClassifier(provider, model.ClassifyConfig{MinSentenceLen: 30, MaxSentenceLen: 300})
	sentences, claims := c.Classify(context.Background(), classifierText)

	if len(sentences) != 3 {
		t.Fatalf("expected 3 sentences, got %d", len(sentences))
	}
	if sentences[0].Category != model.CategoryVerifiable {
		t.Errorf("sentence 0 category = %s", sentences[0].Category)
	}
	if sentences[1].RewrittenVerifiablePart != "The plant came online in 2012." {
		t.Errorf("unexpected rewrite: %q", sentences[1].RewrittenVerifiablePart)
	}
	if sentences[2].Category != model.CategoryNotVerifiable {
		t.Errorf("sentence 2 category = %s", sentences[2].Category)
	}

	if len(claims) != 2 {
		t.Fatalf("expected 2 claims, got %d: %+v", len(claims), claims)
	}
	// The ambiguous claim uses its disambiguated form.
	if !strings.HasPrefix(claims[0].Text, "The Three Gorges Dam") {
		t.Errorf("expected disambiguated claim text, got %q", claims[0].Text)
	}
	if claims[1].Text != "The plant came online in 2012." {
		t.Errorf("expected rewritten claim, got %q", claims[1].Text)
	}
	for _, cl := range claims {
		if cl.SearchDate == "" {
			t.Error("claims must carry a search date")
		}
	}
}

func TestClassifier_CategorizationFailureDegradesAll(t *testing.T) {
	provider := &scriptedProvider{errs: []error{errors.New("timeout")}}

	c := NewClassifier(provider, model.ClassifyConfig{})
	sentences, claims := c.Classify(context.Background(), classifierText)

	if len(claims) != 0 {
		t.Errorf("expected no claims after categorization failure, got %d", len(claims))
	}
	for _, s := range sentences {
		if s.Category != model.CategoryNotVerifiable {
			t.Errorf("expected not_verifiable, got %s", s.Category)
		}
		if s.Reasoning != "categorization failed" {
			t.Errorf("expected failure reasoning, got %q", s.Reasoning)
		}
	}
}

func TestClassifier_MalformedJSONDegradesAll(t *testing.T) {
	provider := &scriptedProvider{responses: []string{"I refuse to answer in JSON."}}

	c := NewClassifier(provider, model.ClassifyConfig{})
	sentences, claims := c.Classify(context.Background(), classifierText)

	if len(claims) != 0 {
		t.Errorf("expected no claims, got %d", len(claims))
	}
	for _, s := range sentences {
		if s.Category != model.CategoryNotVerifiable || s.Reasoning != "categorization failed" {
			t.Errorf("expected fail-safe default, got %+v", s)
		}
	}
}

func TestClassifier_EmptyRewriteContributesNothing(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`[{"index":0,"category":"partially_verifiable","reasoning":"hedged"},
		  {"index":1,"category":"not_verifiable","reasoning":"opinion"},
		  {"index":2,"category":"not_verifiable","reasoning":"opinion"}]`,
		// The rewrite finds nothing verifiable.
		`[{"index":0,"rewrittenSentence":""}]`,
	}}

	c := NewClassifier(provider, model.ClassifyConfig{})
	_, claims := c.Classify(context.Background(), classifierText)

	if len(claims) != 0 {
		t.Errorf("empty rewrite must contribute 0 claims, got %d", len(claims))
	}
	// Only two calls should have happened: categorize and rewrite. With an
	// empty verifiable set there is nothing to disambiguate.
	if provider.call != 2 {
		t.Errorf("expected 2 collaborator calls, got %d", provider.call)
	}
}

func TestClassifier_RewriteFailureDegradesToEmpty(t *testing.T) {
	provider := &scriptedProvider{
		responses: []string{
			`[{"index":0,"category":"partially_verifiable","reasoning":"hedged"},
			  {"index":1,"category":"not_verifiable","reasoning":"opinion"},
			  {"index":2,"category":"not_verifiable","reasoning":"opinion"}]`,
		},
		errs: []error{nil, errors.New("rewrite down")},
	}

	c := NewClassifier(provider, model.ClassifyConfig{})
	sentences, claims := c.Classify(context.Background(), classifierText)

	if sentences[0].RewrittenVerifiablePart != "" {
		t.Errorf("expected empty rewrite, got %q", sentences[0].RewrittenVerifiablePart)
	}
	if len(claims) != 0 {
		t.Errorf("expected 0 claims, got %d", len(claims))
	}
}

func TestClassifier_DisambiguationFailureFailsOpen(t *testing.T) {
	provider := &scriptedProvider{
		responses: []string{
			`[{"index":0,"category":"verifiable","reasoning":"figure"},
			  {"index":1,"category":"not_verifiable","reasoning":"opinion"},
			  {"index":2,"category":"not_verifiable","reasoning":"opinion"}]`,
		},
		errs: []error{nil, errors.New("disambiguation down")},
	}

	c := NewClassifier(provider, model.ClassifyConfig{})
	sentences, claims := c.Classify(context.Background(), classifierText)

	d := sentences[0].Disambiguation
	if d == nil {
		t.Fatal("expected disambiguation result")
	}
	if d.IsAmbiguous {
		t.Error("failure must mark the sentence unambiguous")
	}
	if d.Reasoning != "service error" {
		t.Errorf("expected generic service error reasoning, got %q", d.Reasoning)
	}
	// The claim survives on the original text.
	if len(claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(claims))
	}
}

func TestClassifier_NilProvider(t *testing.T) {
	c := NewClassifier(nil, model.ClassifyConfig{})
	sentences, claims := c.Classify(context.Background(), classifierText)

	if len(claims) != 0 {
		t.Errorf("expected no claims without a provider, got %d", len(claims))
	}
	for _, s := range sentences {
		if s.Category != model.CategoryNotVerifiable {
			t.Errorf("expected not_verifiable, got %s", s.Category)
		}
	}
}

func TestNormalizeCategory(t *testing.T) {
	cases := []struct {
		in   string
		want model.SentenceCategory
	}{
		{"verifiable", model.CategoryVerifiable},
		{"Verifiable", model.CategoryVerifiable},
		{"partially_verifiable", model.CategoryPartiallyVerifiable},
		{"Partially Verifiable", model.CategoryPartiallyVerifiable},
		{"partially-verifiable", model.CategoryPartiallyVerifiable},
		{"not_verifiable", model.CategoryNotVerifiable},
		{"nonsense", model.CategoryNotVerifiable},
		{"", model.CategoryNotVerifiable},
	}
	for _, tc := range cases {
		if got := normalizeCategory(tc.in); got != tc.want {
			t.Errorf("normalizeCategory(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
