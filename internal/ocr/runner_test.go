package ocr

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunnerCapturesOutput(t *testing.T) {
	r := newExecRunner(slog.New(slog.NewTextHandler(io.Discard, nil)))

	out, errb, err := r.Run(context.Background(), "sh", "-c", "printf hello; printf warn >&2")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out))
	assert.Equal(t, "warn", string(errb))
}

func TestExecRunnerReportsFailure(t *testing.T) {
	r := newExecRunner(slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, errb, err := r.Run(context.Background(), "sh", "-c", "printf oops >&2; exit 3")
	require.Error(t, err)
	assert.Equal(t, "oops", string(errb))
}
