package model

import "time"

// AggregateReport is the complete result of one analysis run. A rerun
// produces a new report, never a mutation of an old one.
type AggregateReport struct {
	SourceURL    string          `json:"source_url"`
	Title        string          `json:"title,omitempty"`
	Category     string          `json:"category,omitempty"`
	Claims       []VerdictResult `json:"claims"`
	OverallScore float64         `json:"overall_score"` // [0,1]
	VerdictLabel string          `json:"verdict_label"` // 5-tier label derived from OverallScore
	AnalyzedAt   time.Time       `json:"analyzed_at"`
	Stats        ReportStats     `json:"stats"`
}

// ReportStats carries the progress metrics accumulated during a run
type ReportStats struct {
	TotalSentences    int             `json:"total_sentences"`
	TotalClaims       int             `json:"total_claims"`
	AnalyzedCount     int             `json:"analyzed_count"`
	VerdictCounts     map[Verdict]int `json:"verdict_counts"`
	AverageTrustScore float64         `json:"average_trust_score"` // [0,100]
	SourcesFetched    int             `json:"sources_fetched"`
	SourcesFailed     int             `json:"sources_failed"`
}

// OverallVerdictLabel maps an overall score in [0,1] to a 5-tier label
func OverallVerdictLabel(score float64) string {
	switch {
	case score >= 0.75:
		return "highly credible"
	case score >= 0.60:
		return "likely true"
	case score >= 0.45:
		return "mixed/uncertain"
	case score >= 0.30:
		return "questionable"
	default:
		return "likely false"
	}
}

// ExtractedArticle is the per-URL result of a batch extraction request
type ExtractedArticle struct {
	URL     string `json:"url"`
	Content string `json:"content,omitempty"`
	Title   string `json:"title,omitempty"`
	Excerpt string `json:"excerpt,omitempty"`
	Error   string `json:"error,omitempty"`
}

// BatchExtractResult aggregates a multi-URL extraction
type BatchExtractResult struct {
	Articles  []ExtractedArticle `json:"articles"`
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
}

// ClaimVerificationRequest is one item of a verify-claims-against-evidence call
type ClaimVerificationRequest struct {
	Claim         string   `json:"claim"`
	EvidenceTexts []string `json:"evidence_texts"`
}

// ClaimVerificationResult is the outward shape of a verified claim batch
type ClaimVerificationResult struct {
	Results      []VerdictResult `json:"results"`
	AverageScore float64         `json:"average_score"` // [0,100]
}
