package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"invoxd/internal/domain"
	"invoxd/internal/extract"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf, jpg, png"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrDuplicateInvoiceNumber):
		return http.StatusConflict, "DUPLICATE_INVOICE_NUMBER", "invoice number already exists"
	case errors.Is(err, domain.ErrDuplicateCustomerEmail):
		return http.StatusConflict, "DUPLICATE_CUSTOMER_EMAIL", "customer email already exists"
	case errors.Is(err, domain.ErrDuplicateReferenceID):
		return http.StatusConflict, "DUPLICATE_REFERENCE_ID", "payment reference already exists"
	case errors.Is(err, domain.ErrEmptyDocument):
		return http.StatusUnprocessableEntity, "EMPTY_DOCUMENT", "no text could be recovered from the document"
	case errors.Is(err, domain.ErrInvalidInvoiceStatus):
		return http.StatusBadRequest, "INVALID_STATUS", "invalid invoice status; allowed: pending, paid, cancelled"
	case errors.Is(err, domain.ErrNoLineItems):
		return http.StatusBadRequest, "NO_LINE_ITEMS", "invoice must have at least one line item"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps an error and sends the appropriate error response.
// Extraction errors get their own codes so clients can tell a bad document
// apart from a flaky upstream.
func HandleError(c *gin.Context, err error) {
	var vErr *extract.ValidationError
	if errors.As(err, &vErr) {
		RespondError(c, http.StatusUnprocessableEntity, "EXTRACTION_INVALID",
			"extracted fields did not satisfy the invoice schema")
		return
	}
	var sErr *extract.ServiceError
	if errors.As(err, &sErr) {
		if sErr.StatusCode == http.StatusTooManyRequests {
			c.Header("Retry-After", strconv.Itoa(int(sErr.RetryAfter.Seconds())))
			RespondError(c, http.StatusServiceUnavailable, "EXTRACTION_RATE_LIMITED",
				"extraction service is rate limited; retry later")
			return
		}
		RespondError(c, http.StatusBadGateway, "EXTRACTION_UNAVAILABLE",
			"extraction service request failed")
		return
	}

	status, code, msg := MapDomainError(err)
	if status >= 500 {
		slog.Error("handler.internal_error", "path", c.FullPath(), "error", err)
	}
	RespondError(c, status, code, msg)
}

// parsePagination extracts offset and limit from query params with defaults.
func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
