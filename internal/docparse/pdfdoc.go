package docparse

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Document is an open multi-page document whose text layer can be read
// page by page. Pages are 1-based.
type Document interface {
	NumPages() int
	PageText(page int) (string, error)
	Close() error
}

// IsScanned reports whether a page has no usable embedded text, i.e. it
// needs rasterization and OCR to recover its content.
func IsScanned(pageText string) bool {
	return strings.TrimSpace(pageText) == ""
}

type pdfDocument struct {
	f *os.File
	r *pdf.Reader
}

// OpenPDF opens a PDF file for page-level text extraction.
func OpenPDF(path string) (Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %q: %w", path, err)
	}
	return &pdfDocument{f: f, r: r}, nil
}

func (d *pdfDocument) NumPages() int {
	return d.r.NumPage()
}

func (d *pdfDocument) PageText(page int) (string, error) {
	p := d.r.Page(page)
	if p.V.IsNull() {
		return "", nil
	}
	return p.GetPlainText(nil)
}

func (d *pdfDocument) Close() error {
	return d.f.Close()
}
