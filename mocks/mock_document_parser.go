package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invoxd/internal/extract"
)

// MockDocumentParser is a mock implementation of port.DocumentParser.
type MockDocumentParser struct {
	mock.Mock
}

func (m *MockDocumentParser) ParseFile(ctx context.Context, path string) string {
	args := m.Called(ctx, path)
	return args.String(0)
}

// MockFieldExtractor is a mock implementation of port.FieldExtractor.
type MockFieldExtractor struct {
	mock.Mock
}

func (m *MockFieldExtractor) Extract(ctx context.Context, text string) (*extract.InvoiceFields, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*extract.InvoiceFields), args.Error(1)
}
