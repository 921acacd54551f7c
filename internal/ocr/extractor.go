// Package ocr turns a scanned PDF bundle into per-page text. Pages are
// rasterized with pdftoppm and recognized with tesseract, one image per page,
// so downstream stages see page boundaries instead of one joined blob.
package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

type Config struct {
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	TesseractLang string // default "eng"
	DPI           int    // rasterization DPI, default 300
	MaxPages      int    // 0 = no limit

	TessdataDir string
}

// Page is one recognized page of the source PDF, 1-based.
type Page struct {
	Number int
	Text   string
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &Extractor{cfg: cfg, runner: newExecRunner(logger), logger: logger}
}

// NewExtractorWithRunner is the test seam.
func NewExtractorWithRunner(cfg Config, runner Runner, logger *slog.Logger) *Extractor {
	e := NewExtractor(cfg, logger)
	e.runner = runner
	return e
}

// ExtractPages rasterizes the PDF and recognizes each page. A page whose
// recognition fails yields an empty-text Page rather than failing the file;
// rasterization failure fails the whole call.
func (e *Extractor) ExtractPages(ctx context.Context, path string) ([]Page, error) {
	start := time.Now()

	tmpDir, err := os.MkdirTemp("", "dossier-pp-*")
	if err != nil {
		return nil, err
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			e.logger.Warn("failed to remove temp dir", "path", tmpDir, "error", rmErr)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r 300 -png <in.pdf> <tmp/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", e.cfg.DPI), "-png", path, prefix)
	if err != nil {
		e.logger.Error("ocr.rasterize", "path", path, "error", err, "stderr", truncate(string(errb), maxLogOutput))
		return nil, fmt.Errorf("pdftoppm: %w", err)
	}

	// collect generated pngs (prefix-1.png, prefix-2.png, ...)
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if e.cfg.MaxPages > 0 && len(matches) > e.cfg.MaxPages {
		matches = matches[:e.cfg.MaxPages]
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no images")
	}

	pages := make([]Page, 0, len(matches))
	for i, img := range matches {
		p := Page{Number: i + 1}
		txt, err := e.tesseractOCR(ctx, img)
		if err != nil {
			e.logger.Warn("ocr.page.failed", "path", path, "page", p.Number, "error", err)
		} else {
			p.Text = txt
		}
		pages = append(pages, p)
	}

	e.logger.Info("ocr.extract",
		"path", path, "pages", len(pages),
		"duration_ms", time.Since(start).Milliseconds())
	return pages, nil
}

func (e *Extractor) tesseractOCR(ctx context.Context, path string) (string, error) {
	args := []string{path, "stdout", "-l", e.cfg.TesseractLang}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}

	// tesseract <file> stdout -l <lang>
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return "", fmt.Errorf("tesseract: %s: %w", truncate(string(errb), 512), err)
	}

	// minor cleanup of obvious line noise
	txt := reBoxNoise.ReplaceAllString(string(out), "")
	return strings.TrimSpace(txt), nil
}

// lines of box-drawing or pipe noise that tesseract emits around table rules
var reBoxNoise = regexp.MustCompile(`(?m)^[\s|_\-–—=+]{4,}$`)
