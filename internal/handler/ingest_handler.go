package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invoxd/internal/service"
)

// IngestHandler handles document upload and extraction endpoints.
type IngestHandler struct {
	ingestService service.IngestService
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(ingestService service.IngestService) *IngestHandler {
	return &IngestHandler{ingestService: ingestService}
}

// Upload handles POST /api/v1/invoices/upload. The uploaded document is
// stored, parsed to text, and run through field extraction; the extracted
// fields come back to the client for review before being saved.
func (h *IngestHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.ingestService.Ingest(c.Request.Context(), service.IngestInput{
		File:   file,
		Header: header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}
