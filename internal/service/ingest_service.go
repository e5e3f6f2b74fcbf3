package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"invoxd/internal/config"
	"invoxd/internal/domain"
	"invoxd/internal/extract"
	"invoxd/internal/port"
)

// IngestInput is the DTO for document upload requests.
type IngestInput struct {
	File   multipart.File
	Header *multipart.FileHeader
}

// IngestResult is what an uploaded document yields: where it landed, the
// text the parser recovered, and the structured fields the extractor found.
type IngestResult struct {
	FileID     uuid.UUID              `json:"file_id"`
	FileName   string                 `json:"file_name"`
	StorageKey string                 `json:"storage_key"`
	Text       string                 `json:"-"`
	Fields     *extract.InvoiceFields `json:"fields"`
}

// IngestService runs the full upload pipeline: validate, store, parse, extract.
type IngestService interface {
	Ingest(ctx context.Context, input IngestInput) (*IngestResult, error)
}

type ingestService struct {
	storage   port.ObjectStorage
	parser    port.DocumentParser
	extractor port.FieldExtractor
	cfg       *config.StorageConfig
	log       *slog.Logger
}

// NewIngestService creates a new IngestService implementation.
func NewIngestService(
	storage port.ObjectStorage,
	parser port.DocumentParser,
	extractor port.FieldExtractor,
	cfg *config.StorageConfig,
	logger *slog.Logger,
) IngestService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ingestService{
		storage:   storage,
		parser:    parser,
		extractor: extractor,
		cfg:       cfg,
		log:       logger,
	}
}

func (s *ingestService) Ingest(ctx context.Context, input IngestInput) (*IngestResult, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Magic-byte check: the extension alone is attacker-controlled.
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	if _, ok := domain.AllowedContentTypes[http.DetectContentType(buf[:n])]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	fileID := uuid.New()
	key := fmt.Sprintf("invoices/%s/%s", fileID, input.Header.Filename)
	contentType := domain.AllowedFileTypes[fileType]

	s.log.Info("ingest.upload",
		"file", input.Header.Filename, "content_type", contentType,
		"size", input.Header.Size, "key", key)

	// The parser runs poppler and tesseract against a path on disk, so the
	// upload is staged locally first and pushed to object storage after.
	stagedPath, cleanup, err := s.stage(input.File, fileID, ext)
	if err != nil {
		return nil, fmt.Errorf("staging upload: %w", err)
	}
	defer cleanup()

	staged, err := os.Open(stagedPath)
	if err != nil {
		return nil, fmt.Errorf("reopening staged file: %w", err)
	}
	_, uploadErr := s.storage.Upload(ctx, port.UploadInput{
		Key:         key,
		Body:        staged,
		ContentType: contentType,
		Size:        input.Header.Size,
	})
	_ = staged.Close()
	if uploadErr != nil {
		s.log.Error("ingest.upload_failed", "key", key, "error", uploadErr)
		return nil, domain.ErrUploadFailed
	}

	text := s.parser.ParseFile(ctx, stagedPath)
	if strings.TrimSpace(text) == "" {
		s.log.Warn("ingest.empty_document", "file", input.Header.Filename)
		return nil, domain.ErrEmptyDocument
	}

	fields, err := s.extractor.Extract(ctx, text)
	if err != nil {
		return nil, err
	}

	return &IngestResult{
		FileID:     fileID,
		FileName:   input.Header.Filename,
		StorageKey: key,
		Text:       text,
		Fields:     fields,
	}, nil
}

// stage copies the upload to a temp file and returns its path plus a cleanup.
func (s *ingestService) stage(file multipart.File, fileID uuid.UUID, ext string) (string, func(), error) {
	dir, err := os.MkdirTemp("", "invoxd-ingest-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	path := filepath.Join(dir, fileID.String()+"."+ext)
	f, err := os.Create(path)
	if err != nil {
		cleanup()
		return "", nil, err
	}
	if _, err := io.Copy(f, file); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}
