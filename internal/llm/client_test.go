package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvind-menon/dossier/internal/resilience"
)

func chatReply(t *testing.T, content string) []byte {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	require.NoError(t, err)
	return b
}

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	return NewClient(ClientConfig{
		BaseURL: srv.URL,
		Model:   "test-model",
		Retry:   resilience.RetryConfig{MaxAttempts: 3, Delay: time.Millisecond},
	}, nil)
}

func TestInfer_DecodesFlatResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		_, _ = w.Write(chatReply(t, `{"document_type":"government_identity","confidence":"high"}`))
	}))
	defer srv.Close()

	res, err := newTestClient(t, srv).Infer(context.Background(), InferRequest{Prompt: "classify", PageID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "government_identity", res.Str("document_type"))
	assert.Equal(t, "high", res.Str("confidence"))
}

func TestInfer_RecoversJSONFromProse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(chatReply(t, "Sure, here you go:\n```json\n{\"pan_number\":\"ABCDE1234F\"}\n```"))
	}))
	defer srv.Close()

	res, err := newTestClient(t, srv).Infer(context.Background(), InferRequest{Prompt: "x", PageID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "ABCDE1234F", res.Str("pan_number"))
}

func TestInfer_DegradesToEmptyAfterRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	res, err := c.Infer(context.Background(), InferRequest{Prompt: "x", PageID: "p1"})
	require.NoError(t, err, "degraded calls must not surface an error")
	assert.True(t, res.Empty())
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, int64(1), c.Degraded())
}

func TestInfer_SchemaRejectionDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(chatReply(t, `{"document_type":123}`))
	}))
	defer srv.Close()

	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"document_type": map[string]any{"type": "string"},
		},
		"required": []string{"document_type"},
	}
	res, err := newTestClient(t, srv).Infer(context.Background(), InferRequest{Prompt: "x", PageID: "p1", Schema: schema})
	require.NoError(t, err)
	assert.True(t, res.Empty())
}

func TestExtractJSON(t *testing.T) {
	m, ok := ExtractJSON(`{"a":"b"}`)
	require.True(t, ok)
	assert.Equal(t, "b", m["a"])

	m, ok = ExtractJSON("noise before {\"a\":\"b\"} noise after")
	require.True(t, ok)
	assert.Equal(t, "b", m["a"])

	_, ok = ExtractJSON("no json here")
	assert.False(t, ok)
}

func TestResultStr(t *testing.T) {
	r := Result{"s": " padded ", "n": float64(12), "b": true, "nil": nil}
	assert.Equal(t, "padded", r.Str("s"))
	assert.Equal(t, "12", r.Str("n"))
	assert.Equal(t, "true", r.Str("b"))
	assert.Equal(t, "", r.Str("nil"))
	assert.Equal(t, "", r.Str("missing"))
}
