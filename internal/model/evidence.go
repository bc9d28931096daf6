package model

// EvidenceSource is one externally fetched document tied to one claim.
// Each source is independently fetched and independently failable.
type EvidenceSource struct {
	ClaimText        string `json:"claim_text"`
	URL              string `json:"url"`
	Title            string `json:"title,omitempty"`
	Excerpt          string `json:"excerpt,omitempty"`
	ExtractedContent string `json:"extracted_content,omitempty"` // Truncated to the configured character budget
	Error            string `json:"error,omitempty"`             // Non-empty when the fetch failed
}

// EvidenceChunk is a ranked sentence-level span of a source's content,
// selected by semantic relevance to the claim. Chunks are returned in
// found-in-source order, not score order, so quotes stay coherent.
type EvidenceChunk struct {
	Text     string  `json:"text"`
	Position int     `json:"position"`        // Sentence index in the source content
	Score    float64 `json:"score,omitempty"` // Cosine similarity to the claim; 0 when the fallback path was used
}

// ClaimEvidence groups everything gathered for a single claim
type ClaimEvidence struct {
	Claim   Claim            `json:"claim"`
	Sources []EvidenceSource `json:"sources"`
	Chunks  []EvidenceChunk  `json:"chunks"`
}

// EvidenceTexts returns the chunk texts, for prompt assembly
func (e ClaimEvidence) EvidenceTexts() []string {
	texts := make([]string, 0, len(e.Chunks))
	for _, c := range e.Chunks {
		texts = append(texts, c.Text)
	}
	return texts
}
