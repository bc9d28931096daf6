package heuristic

// PageAnalysis is the result of one heuristic pass over page text
type PageAnalysis struct {
	Category     string          `json:"category"`
	OverallScore float64         `json:"overall_score"` // [0,1]
	Status       string          `json:"status"`
	Claims       []VerifiedClaim `json:"claims"`
}

// Engine runs the full heuristic sequence: categorize, extract, verify,
// aggregate
type Engine struct {
	table     SourceTable
	detector  *CategoryDetector
	extractor *ClaimExtractor
	verifier  *ClaimVerifier
}

// NewEngine creates an engine over the given source table. A nil table uses
// the builtin one.
func NewEngine(table SourceTable) *Engine {
	if table == nil {
		table = BuiltinSourceTable()
	}
	return &Engine{
		table:     table,
		detector:  NewCategoryDetector(table),
		extractor: NewClaimExtractor(),
		verifier:  NewClaimVerifier(table),
	}
}

// Analyze scores page text from the given domain. It is deterministic:
// identical inputs always produce the identical analysis.
func (e *Engine) Analyze(pageText, domain string) *PageAnalysis {
	category := e.detector.Detect(pageText)
	candidates := e.extractor.Extract(pageText)

	claims := make([]VerifiedClaim, 0, len(candidates))
	for _, c := range candidates {
		claims = append(claims, e.verifier.Verify(c, domain, category))
	}

	overall := AggregateScore(claims, e.table.DomainTrustedAnywhere(domain))

	return &PageAnalysis{
		Category:     category,
		OverallScore: overall,
		Status:       statusForScore(overall),
		Claims:       claims,
	}
}
