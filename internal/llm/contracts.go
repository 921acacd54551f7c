package llm

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// InferRequest is one structured-extraction prompt for one page.
type InferRequest struct {
	System string
	Prompt string
	PageID string

	// Schema, when set, is a JSON-Schema map the reply must validate against
	// before it is handed to the caller.
	Schema map[string]any
}

// Result is the flat key/value structure a gateway reply decodes to. An empty
// Result means either "the model found nothing" or "inference failed after
// retries"; callers must treat the two identically.
type Result map[string]any

// Empty reports whether the gateway produced no usable data.
func (r Result) Empty() bool { return len(r) == 0 }

// Str reads a field as a trimmed string, coercing scalar JSON types. Missing
// and null fields read as "".
func (r Result) Str(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	}
}

// Strs reads a field as a string slice (for indicator lists).
func (r Result) Strs(key string) []string {
	v, ok := r[key]
	if !ok || v == nil {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		if s, ok := e.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

// Gateway is the inference collaborator: given a prompt plus a page
// identifier, return a flat structured result or an empty one.
// Implementations own their retry behavior and must degrade to an empty
// Result with a nil error once retries are exhausted.
type Gateway interface {
	Infer(ctx context.Context, req InferRequest) (Result, error)
}
