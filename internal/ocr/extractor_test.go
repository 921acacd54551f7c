package ocr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRunner fakes pdftoppm by creating page images at the given prefix and
// fakes tesseract by returning canned text keyed on the image filename.
type stubRunner struct {
	pageCount    int
	rasterizeErr error
	failPage     string
	texts        map[string]string
	calls        []string
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.calls = append(s.calls, name)
	switch name {
	case "pdftoppm":
		if s.rasterizeErr != nil {
			return nil, []byte("rasterize boom"), s.rasterizeErr
		}
		prefix := args[len(args)-1]
		for i := 1; i <= s.pageCount; i++ {
			if err := os.WriteFile(fmt.Sprintf("%s-%d.png", prefix, i), []byte("png"), 0o644); err != nil {
				return nil, nil, err
			}
		}
		return nil, nil, nil
	case "tesseract":
		img := filepath.Base(args[0])
		if img == s.failPage {
			return nil, []byte("recognition boom"), errors.New("exit status 1")
		}
		if txt, ok := s.texts[img]; ok {
			return []byte(txt), nil, nil
		}
		return []byte("page text"), nil, nil
	default:
		return nil, nil, fmt.Errorf("unexpected command %q", name)
	}
}

func newStubExtractor(s *stubRunner) *Extractor {
	cfg := Config{Pdftoppm: "pdftoppm", Tesseract: "tesseract"}
	return NewExtractorWithRunner(cfg, s, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestExtractPages(t *testing.T) {
	stub := &stubRunner{
		pageCount: 3,
		texts: map[string]string{
			"page-1.png": "Government of India\nAadhaar",
			"page-2.png": "Sales Tax Invoice",
			"page-3.png": "GST Registration",
		},
	}
	e := newStubExtractor(stub)

	pages, err := e.ExtractPages(context.Background(), "/inbox/bundle-42.pdf")

	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, 1, pages[0].Number)
	assert.Contains(t, pages[0].Text, "Aadhaar")
	assert.Equal(t, "Sales Tax Invoice", pages[1].Text)
	assert.Equal(t, 3, pages[2].Number)
}

func TestExtractPagesRasterizeFailureIsFatal(t *testing.T) {
	stub := &stubRunner{rasterizeErr: errors.New("exit status 99")}
	e := newStubExtractor(stub)

	_, err := e.ExtractPages(context.Background(), "/inbox/bundle-42.pdf")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdftoppm")
}

func TestExtractPagesRecognitionFailureIsPerPage(t *testing.T) {
	stub := &stubRunner{pageCount: 2, failPage: "page-1.png"}
	e := newStubExtractor(stub)

	pages, err := e.ExtractPages(context.Background(), "/inbox/bundle-42.pdf")

	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Empty(t, pages[0].Text)
	assert.Equal(t, "page text", pages[1].Text)
}

func TestExtractPagesMaxPages(t *testing.T) {
	stub := &stubRunner{pageCount: 5}
	e := NewExtractorWithRunner(Config{MaxPages: 2}, stub, slog.New(slog.NewTextHandler(io.Discard, nil)))

	pages, err := e.ExtractPages(context.Background(), "/inbox/bundle-42.pdf")

	require.NoError(t, err)
	assert.Len(t, pages, 2)
}

func TestBoxNoiseStripped(t *testing.T) {
	raw := "INVOICE\n|||||||||\nTotal"
	cleaned := reBoxNoise.ReplaceAllString(raw, "")
	assert.NotContains(t, cleaned, "|||")
	assert.True(t, strings.Contains(cleaned, "INVOICE") && strings.Contains(cleaned, "Total"))
}
