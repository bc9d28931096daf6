package classify

import "strings"

// SegmentSentences splits article text on sentence terminators and keeps
// spans whose length falls inside [minLen, maxLen]. Too-short spans carry no
// substantive claim; too-long ones are usually run-on extraction noise.
// Segmentation is deterministic and local; categorization of the resulting
// list is delegated to the LLM collaborator.
func SegmentSentences(text string, minLen, maxLen int) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	flush := func() {
		sentence := strings.TrimSpace(current.String())
		if len(sentence) >= minLen && len(sentence) <= maxLen {
			sentences = append(sentences, sentence)
		}
		current.Reset()
	}

	for i, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			// Split only before whitespace so decimals like "3.5" and
			// mid-token dots stay intact.
			if i+1 < len(text) && (text[i+1] == ' ' || text[i+1] == '\t') {
				flush()
			}
		}
	}

	if current.Len() > 0 {
		flush()
	}

	return sentences
}
