package domain

import "errors"

var (
	ErrNotFound                = errors.New("resource not found")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrUnsupportedFileType     = errors.New("unsupported file type")
	ErrFileTooLarge            = errors.New("file exceeds maximum allowed size")
	ErrDuplicateInvoiceNumber  = errors.New("invoice number already exists")
	ErrDuplicateCustomerEmail  = errors.New("customer email already exists")
	ErrDuplicateReferenceID    = errors.New("payment reference already exists")
	ErrEmptyDocument           = errors.New("no text could be extracted from document")
	ErrInvalidInvoiceStatus    = errors.New("invalid invoice status")
	ErrNoLineItems             = errors.New("invoice has no line items")
	ErrUploadFailed            = errors.New("file upload to storage failed")
)
