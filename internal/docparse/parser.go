// Package docparse turns an invoice file (PDF or image) into a plain-text
// blob. PDF pages with a machine-readable text layer are read directly;
// pages without one are rasterized with poppler and run through tesseract.
// Page-level failures degrade to empty text so a single bad page never
// aborts the document.
package docparse

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Config holds the external-tool settings for the parser.
type Config struct {
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	Language string // tesseract language, default "eng"
	DPI      int    // rasterization DPI for scanned pages, default 300
	MaxPages int    // 0 = no limit
}

// Parser extracts text from invoice documents.
type Parser struct {
	cfg    Config
	runner Runner
	log    *slog.Logger
	open   func(path string) (Document, error)
}

// New creates a Parser with defaults filled in.
func New(cfg Config, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &Parser{cfg: cfg, runner: execRunner{}, log: logger, open: OpenPDF}
}

// ParseFile extracts the text content of a document. The file kind is
// derived from the extension: ".pdf" takes the page-by-page path, anything
// else is treated as a single image and OCRed whole. A file that cannot be
// opened or parsed yields an empty string, not an error; the caller decides
// whether that is fatal.
func (p *Parser) ParseFile(ctx context.Context, path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "pdf" {
		return p.parsePDF(ctx, path)
	}

	text, err := p.ocr(ctx, path)
	if err != nil {
		p.log.Warn("image ocr failed", "path", path, "error", err)
		return ""
	}
	return text
}

func (p *Parser) parsePDF(ctx context.Context, path string) string {
	doc, err := p.open(path)
	if err != nil {
		p.log.Error("cannot open pdf", "path", path, "error", err)
		return ""
	}
	defer func() { _ = doc.Close() }()

	pages := doc.NumPages()
	if p.cfg.MaxPages > 0 && pages > p.cfg.MaxPages {
		p.log.Warn("truncating pdf", "path", path, "pages", pages, "max_pages", p.cfg.MaxPages)
		pages = p.cfg.MaxPages
	}

	var b strings.Builder
	for page := 1; page <= pages; page++ {
		text := p.extractText(doc, page)
		if IsScanned(text) {
			p.log.Debug("scanned page, running ocr", "path", path, "page", page)
			b.WriteString(p.ocrPage(ctx, path, page))
			b.WriteByte('\n')
		}
		// Every page contributes a direct-extraction fragment, even when it
		// was just OCRed, so no page is ever silently skipped.
		b.WriteString(text)
		b.WriteByte('\n')
	}
	return b.String()
}

// extractText reads the machine text layer of one page. Extraction failure
// degrades to empty text for that page.
func (p *Parser) extractText(doc Document, page int) string {
	text, err := doc.PageText(page)
	if err != nil {
		p.log.Warn("page text extraction failed", "page", page, "error", err)
		return ""
	}
	return text
}

// ocrPage rasterizes one page and OCRs the resulting image. A rendering
// failure is fatal for the page's OCR pass; an OCR failure degrades to
// empty text. Either way the document keeps going.
func (p *Parser) ocrPage(ctx context.Context, path string, page int) string {
	img, cleanup, err := p.rasterizePage(ctx, path, page)
	if err != nil {
		p.log.Error("page rasterization failed", "path", path, "page", page, "error", err)
		return ""
	}
	defer cleanup()

	text, err := p.ocr(ctx, img)
	if err != nil {
		p.log.Warn("page ocr failed", "path", path, "page", page, "error", err)
		return ""
	}
	return text
}

// rasterizePage renders a single PDF page to a PNG in a temp directory.
// The returned cleanup must be called to remove the temp files.
func (p *Parser) rasterizePage(ctx context.Context, path string, page int) (string, func(), error) {
	tmpDir, err := os.MkdirTemp("", "invoxd-pp-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }

	n := strconv.Itoa(page)
	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -f N -l N -r <dpi> -png <in.pdf> <tmp/page>
	_, errb, err := p.runner.Run(ctx, p.cfg.Pdftoppm,
		"-f", n, "-l", n, "-r", strconv.Itoa(p.cfg.DPI), "-png", path, prefix)
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("pdftoppm page %d: %w (%s)", page, err, truncate(string(errb), 512))
	}

	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		cleanup()
		return "", nil, fmt.Errorf("pdftoppm produced no image for page %d", page)
	}
	return matches[0], cleanup, nil
}

// ocr runs tesseract over an image file and returns the recognized text,
// trimmed of surrounding whitespace.
func (p *Parser) ocr(ctx context.Context, imgPath string) (string, error) {
	// tesseract <file> stdout -l <lang>
	out, errb, err := p.runner.Run(ctx, p.cfg.Tesseract, imgPath, "stdout", "-l", p.cfg.Language)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w (%s)", err, truncate(string(errb), 512))
	}
	return strings.TrimSpace(string(out)), nil
}
