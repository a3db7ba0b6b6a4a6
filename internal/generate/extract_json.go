package generate

import (
	"encoding/json"
	"strings"
)

// ExtractJSON locates and parses a JSON object embedded in raw model output.
// Models frequently wrap JSON in prose or markdown fences despite
// instructions, so common code-fence markers are stripped before scanning.
// The scan takes the span from the first '{' to the last '}' inclusive.
//
// Known limitation: the first-to-last-brace span assumes a single top-level
// JSON object. Output containing more than one JSON-like span (for example a
// prompt's example skeleton echoed back next to the real answer) produces a
// span that fails strict parsing and is reported as malformed.
//
// Returns (nil, false) both when no brace span exists and when the span does
// not parse as valid JSON; callers treat this as an expected, recoverable
// condition, never as partial data.
func ExtractJSON(raw string) (json.RawMessage, bool) {
	clean := stripFences(raw)

	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start == -1 || end == -1 || end < start {
		return nil, false
	}

	span := clean[start : end+1]
	if !json.Valid([]byte(span)) {
		return nil, false
	}
	return json.RawMessage(span), true
}

func stripFences(raw string) string {
	clean := strings.TrimSpace(raw)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")
	return strings.TrimSpace(clean)
}
