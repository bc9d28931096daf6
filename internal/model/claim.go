package model

// Claim represents a single verifiable assertion extracted from an article
type Claim struct {
	Text       string   `json:"text"`                 // The claim text itself (immutable once created)
	SearchDate string   `json:"search_date"`          // Date appended to search queries to bias recency
	Confidence float64  `json:"confidence,omitempty"` // Extraction-stage score in [0,1]
	Types      []string `json:"types,omitempty"`      // Matched factual-indicator tags (percentage, attributed, research, ...)
}

// SentenceCategory is the three-way verifiability taxonomy
type SentenceCategory string

const (
	CategoryVerifiable          SentenceCategory = "verifiable"
	CategoryPartiallyVerifiable SentenceCategory = "partially_verifiable"
	CategoryNotVerifiable       SentenceCategory = "not_verifiable"
)

// CategorizedSentence wraps a raw sentence with its verifiability judgment
type CategorizedSentence struct {
	Text      string           `json:"text"`
	Category  SentenceCategory `json:"category"`
	Reasoning string           `json:"reasoning,omitempty"`

	// RewrittenVerifiablePart holds the verifiable residue of a partially
	// verifiable sentence. Empty means nothing verifiable survives.
	RewrittenVerifiablePart string `json:"rewritten_verifiable_part,omitempty"`

	Disambiguation *DisambiguationResult `json:"disambiguation,omitempty"`
}

// VerifiableText returns the text that should become a claim, or "" if the
// sentence contributes no claim.
func (s CategorizedSentence) VerifiableText() string {
	switch s.Category {
	case CategoryVerifiable:
		if s.Disambiguation != nil && s.Disambiguation.DisambiguatedSentence != "" {
			return s.Disambiguation.DisambiguatedSentence
		}
		return s.Text
	case CategoryPartiallyVerifiable:
		if s.RewrittenVerifiablePart == "" {
			return ""
		}
		if s.Disambiguation != nil && s.Disambiguation.DisambiguatedSentence != "" {
			return s.Disambiguation.DisambiguatedSentence
		}
		return s.RewrittenVerifiablePart
	default:
		return ""
	}
}

// DisambiguationResult records a per-sentence ambiguity judgment
type DisambiguationResult struct {
	IsAmbiguous           bool   `json:"is_ambiguous"`
	Reasoning             string `json:"reasoning,omitempty"`
	DisambiguatedSentence string `json:"disambiguated_sentence,omitempty"` // Set only when resolvable
}
