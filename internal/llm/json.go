package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/claimlens/claimlens/internal/model"
)

// fenceRe matches a markdown code fence block with an optional language tag.
// The content group uses `.*?` so empty bodies parse too.
var fenceRe = regexp.MustCompile("(?s)^(?:`{3}|~{3})[^\\n]*\\n(.*?)(?:`{3}|~{3})\\s*$")

// openFenceRe matches only an opening fence line, for truncated responses.
var openFenceRe = regexp.MustCompile("^(?:`{3}|~{3})[^\\n]*\\n")

// StripMarkdownFences removes the code fences LLMs sometimes wrap around
// JSON output ("```json\n...\n```"). A lone opening fence from a truncated
// response is stripped as well so the body can still be parsed.
func StripMarkdownFences(s string) string {
	s = strings.TrimSpace(s)
	if m := fenceRe.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	if loc := openFenceRe.FindStringIndex(s); loc != nil {
		return strings.TrimSpace(s[loc[1]:])
	}
	return s
}

// DecodeJSON strips fences and unmarshals the response into v. Parse
// failures wrap model.ErrValidationFailure so callers can apply their
// fail-open defaults.
func DecodeJSON(raw string, v interface{}) error {
	cleaned := StripMarkdownFences(raw)
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return fmt.Errorf("%w: decode LLM response: %v", model.ErrValidationFailure, err)
	}
	return nil
}
