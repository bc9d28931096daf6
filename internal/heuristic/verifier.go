package heuristic

import (
	"regexp"

	"github.com/claimlens/claimlens/internal/model"
)

const (
	trustedBaseFactor = 0.75
	untrustedBase     = 0.30
	typeBonus         = 0.05
)

// Status labels map score bands to the five-tier credibility scale
const (
	StatusHighlyCredible = "highly_credible"
	StatusLikelyTrue     = "likely_true"
	StatusMixed          = "mixed_uncertain"
	StatusQuestionable   = "questionable"
	StatusLikelyFalse    = "likely_false"
)

var positiveSignals = []indicator{
	{"attribution", regexp.MustCompile(`(?i)\b(according to|said|stated|told reporters)\b`), 0.10},
	{"peer_review", regexp.MustCompile(`(?i)\b(peer[- ]reviewed|journal|published in)\b`), 0.12},
	{"institutional", regexp.MustCompile(`(?i)\b(university|institute|ministry|agency|department|commission)\b`), 0.08},
	{"data", regexp.MustCompile(`(?i)\b(data|statistics|survey|study|research|census)\b`), 0.08},
	{"verification", regexp.MustCompile(`(?i)\b(confirmed|verified|documented|corroborated)\b`), 0.08},
	{"specifics", regexp.MustCompile(`(?i)(\b(19|20)\d{2}\b|\d+(\.\d+)?\s*(%|percent))`), 0.07},
	{"direct_quote", regexp.MustCompile(`"[^"]{5,}"`), 0.05},
}

var negativeSignals = []indicator{
	{"sensational", regexp.MustCompile(`(?i)\b(shocking|unbelievable|incredible|miracle|secret|they don't want you to know|exposed)\b`), 0.15},
	{"absolutist", regexp.MustCompile(`(?i)\b(always|never|everyone|nobody|guaranteed|undeniable)\b`), 0.10},
	{"punctuation", regexp.MustCompile(`(!{2,}|\?{2,}|[!?]{2,})`), 0.10},
	{"anonymous", regexp.MustCompile(`(?i)\b(anonymous|unnamed|sources say|insiders?)\b`), 0.10},
	{"hedging", regexp.MustCompile(`(?i)\b(allegedly|reportedly|rumored|some say|it is believed)\b`), 0.08},
}

// VerifiedClaim is one scored claim in a page analysis
type VerifiedClaim struct {
	Text          string   `json:"text"`
	Score         float64  `json:"score"` // [0,1]
	Status        string   `json:"status"`
	TrustLevel    string   `json:"trust_level"`
	DomainTrusted bool     `json:"domain_trusted"`
	Confidence    float64  `json:"confidence"` // extraction-stage score, used as aggregation weight
	Types         []string `json:"types,omitempty"`
}

// ClaimVerifier scores claims against the trusted-source table
type ClaimVerifier struct {
	table SourceTable
}

// NewClaimVerifier creates a verifier
func NewClaimVerifier(table SourceTable) *ClaimVerifier {
	return &ClaimVerifier{table: table}
}

// Verify scores one claim for a page on the given domain and category
func (v *ClaimVerifier) Verify(claim model.Claim, domain, category string) VerifiedClaim {
	profile := v.table.Profile(category)
	trusted := domainMatchesAny(domain, profile.TrustedDomains)

	score := untrustedBase
	if trusted {
		score = trustedBaseFactor * profile.Weight
	}

	for _, sig := range positiveSignals {
		if sig.re.MatchString(claim.Text) {
			score += sig.weight
		}
	}
	for _, sig := range negativeSignals {
		if sig.re.MatchString(claim.Text) {
			score -= sig.weight
		}
	}

	if hasTypeBonus(claim.Types) {
		score += typeBonus
	}

	score = clampUnit(score)

	return VerifiedClaim{
		Text:          claim.Text,
		Score:         score,
		Status:        statusForScore(score),
		TrustLevel:    trustLevel(trusted, score),
		DomainTrusted: trusted,
		Confidence:    claim.Confidence,
		Types:         claim.Types,
	}
}

// hasTypeBonus grants the flat bonus for research or attribution claims, or
// any claim matching three or more indicator types
func hasTypeBonus(types []string) bool {
	if len(types) >= 3 {
		return true
	}
	for _, t := range types {
		if t == "research" || t == "attributed" {
			return true
		}
	}
	return false
}

func statusForScore(score float64) string {
	switch {
	case score >= 0.75:
		return StatusHighlyCredible
	case score >= 0.60:
		return StatusLikelyTrue
	case score >= 0.45:
		return StatusMixed
	case score >= 0.30:
		return StatusQuestionable
	default:
		return StatusLikelyFalse
	}
}

func trustLevel(trusted bool, score float64) string {
	switch {
	case trusted:
		return "high"
	case score >= 0.45:
		return "medium"
	default:
		return "low"
	}
}

func clampUnit(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// BaseScore returns the pre-adjustment base for a claim on the given domain
// and category
func (v *ClaimVerifier) BaseScore(domain, category string) float64 {
	profile := v.table.Profile(category)
	if domainMatchesAny(domain, profile.TrustedDomains) {
		return trustedBaseFactor * profile.Weight
	}
	return untrustedBase
}
