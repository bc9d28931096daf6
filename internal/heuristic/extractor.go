package heuristic

import (
	"regexp"
	"sort"

	"github.com/claimlens/claimlens/internal/classify"
	"github.com/claimlens/claimlens/internal/model"
)

const (
	claimMinSentenceLen = 30
	claimMaxSentenceLen = 300
	claimScoreThreshold = 0.7
	maxClaimsPerPage    = 10
)

// indicator is a scored pattern over sentence text
type indicator struct {
	name   string
	re     *regexp.Regexp
	weight float64
}

// Each factual indicator counts once per sentence no matter how often it
// matches; the weights are summed into the sentence's extraction score.
var factualIndicators = []indicator{
	{"percentage", regexp.MustCompile(`(?i)\d+(\.\d+)?\s*(%|percent)`), 0.30},
	{"attributed", regexp.MustCompile(`(?i)\b(according to|said|stated|announced|reported|confirmed by)\b`), 0.30},
	{"research", regexp.MustCompile(`(?i)\b(study|studies|research|survey|experiment|analysis|findings)\b`), 0.30},
	{"financial", regexp.MustCompile(`(?i)([$€£]\s?\d|\b(million|billion|trillion)\b|\bdollars?\b)`), 0.25},
	{"date", regexp.MustCompile(`(?i)(\b(19|20)\d{2}\b|\b(january|february|march|april|may|june|july|august|september|october|november|december)\b)`), 0.25},
	{"quote", regexp.MustCompile(`"[^"]{5,}"`), 0.20},
	{"numeric", regexp.MustCompile(`\b\d[\d,]*(\.\d+)?\b`), 0.15},
	{"comparison", regexp.MustCompile(`(?i)\b(compared to|more than|less than|increased|decreased|doubled|halved)\b`), 0.15},
	{"causal", regexp.MustCompile(`(?i)\b(because|due to|as a result|led to|caused by)\b`), 0.15},
}

var opinionIndicators = []indicator{
	{"subjective", regexp.MustCompile(`(?i)\b(amazing|terrible|beautiful|shocking|unbelievable|incredible|awful|wonderful|disgusting)\b`), 0.25},
	{"hedging", regexp.MustCompile(`(?i)\b(might|could|perhaps|maybe|possibly|seems?|appears?|arguably|probably)\b`), 0.20},
	{"superlative", regexp.MustCompile(`(?i)\b(best|worst|greatest|most important) (ever|of all time)?\b`), 0.15},
}

// ClaimExtractor finds the sentences most likely to carry checkable facts
type ClaimExtractor struct{}

// NewClaimExtractor creates an extractor
func NewClaimExtractor() *ClaimExtractor {
	return &ClaimExtractor{}
}

// Extract returns up to 10 candidate claims sorted by descending extraction
// score. Confidence carries the net indicator score; Types lists the matched
// factual indicators.
func (e *ClaimExtractor) Extract(text string) []model.Claim {
	sentences := classify.SegmentSentences(text, claimMinSentenceLen, claimMaxSentenceLen)

	var claims []model.Claim
	for _, s := range sentences {
		score, types := scoreSentence(s)
		if score < claimScoreThreshold {
			continue
		}
		claims = append(claims, model.Claim{
			Text:       s,
			Confidence: score,
			Types:      types,
		})
	}

	sort.SliceStable(claims, func(a, b int) bool { return claims[a].Confidence > claims[b].Confidence })
	if len(claims) > maxClaimsPerPage {
		claims = claims[:maxClaimsPerPage]
	}

	return claims
}

func scoreSentence(s string) (float64, []string) {
	var score float64
	var types []string
	for _, ind := range factualIndicators {
		if ind.re.MatchString(s) {
			score += ind.weight
			types = append(types, ind.name)
		}
	}
	for _, ind := range opinionIndicators {
		if ind.re.MatchString(s) {
			score -= ind.weight
		}
	}
	return score, types
}
