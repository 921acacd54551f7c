package llm

import (
	"encoding/json"
	"strings"
)

// ExtractJSON pulls a JSON object out of a model reply. Direct parse first;
// if the model wrapped the object in prose or fencing, fall back to the
// outermost brace span.
func ExtractJSON(text string) (map[string]any, bool) {
	text = strings.TrimSpace(text)

	var m map[string]any
	if err := json.Unmarshal([]byte(text), &m); err == nil {
		return m, true
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, false
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &m); err != nil {
		return nil, false
	}
	return m, true
}
