package model

import "strings"

// Verdict is the terminal classification of a claim against gathered evidence
type Verdict string

const (
	VerdictSupport          Verdict = "support"
	VerdictPartiallySupport Verdict = "partially_support"
	VerdictUnclear          Verdict = "unclear"
	VerdictContradict       Verdict = "contradict"
	VerdictRefute           Verdict = "refute"
)

// NormalizeVerdict collapses any label outside the closed 5-label set to
// VerdictUnclear. Matching is case-insensitive and tolerant of the spacing
// and casing variants collaborators produce ("Partially Support",
// "partially-support", "PARTIALLY_SUPPORT").
func NormalizeVerdict(raw string) Verdict {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	switch Verdict(s) {
	case VerdictSupport, VerdictPartiallySupport, VerdictUnclear, VerdictContradict, VerdictRefute:
		return Verdict(s)
	default:
		return VerdictUnclear
	}
}

// FallbackScore returns the trust score implied by a verdict when the
// generation step supplies no explicit score.
func (v Verdict) FallbackScore() float64 {
	switch v {
	case VerdictSupport:
		return 100
	case VerdictPartiallySupport:
		return 65
	case VerdictUnclear:
		return 50
	default: // contradict, refute
		return 0
	}
}

// ClampTrustScore clamps a trust score to [0,100]
func ClampTrustScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// VerdictResult is the terminal enrichment of a claim
type VerdictResult struct {
	Claim           Claim    `json:"claim"`
	Verdict         Verdict  `json:"verdict"`
	ReferenceQuotes []string `json:"reference_quotes,omitempty"` // 1-3 exact substrings drawn from evidence chunks
	TrustScore      float64  `json:"trust_score"`                // [0,100]
	EvidenceURLs    []string `json:"evidence_urls,omitempty"`
}
