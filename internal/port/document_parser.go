package port

import (
	"context"

	"invoxd/internal/extract"
)

// DocumentParser turns a document on disk into a plain-text blob.
// A file that cannot be read yields an empty string, not an error.
type DocumentParser interface {
	ParseFile(ctx context.Context, path string) string
}

// FieldExtractor turns the parsed text blob into a validated invoice record.
type FieldExtractor interface {
	Extract(ctx context.Context, text string) (*extract.InvoiceFields, error)
}
