package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"invoxd/internal/domain"
	"invoxd/internal/port"
	"invoxd/internal/xlsxexport"
)

// exportBatchSize bounds memory when exporting a large invoice table.
const exportBatchSize = 500

// ReportService renders invoice exports.
type ReportService interface {
	ExportInvoicesXLSX(ctx context.Context, filter port.InvoiceFilter, out io.Writer) error
}

type reportService struct {
	invoiceRepo  port.InvoiceRepository
	customerRepo port.CustomerRepository
}

// NewReportService creates a new ReportService implementation.
func NewReportService(invoiceRepo port.InvoiceRepository, customerRepo port.CustomerRepository) ReportService {
	return &reportService{invoiceRepo: invoiceRepo, customerRepo: customerRepo}
}

func (s *reportService) ExportInvoicesXLSX(ctx context.Context, filter port.InvoiceFilter, out io.Writer) error {
	w, err := xlsxexport.NewWriter()
	if err != nil {
		return err
	}

	names := map[string]string{}
	for offset := 0; ; offset += exportBatchSize {
		invoices, total, err := s.invoiceRepo.List(ctx, filter, offset, exportBatchSize)
		if err != nil {
			return fmt.Errorf("reportService.ExportInvoicesXLSX: %w", err)
		}
		if err := s.resolveCustomerNames(ctx, invoices, names); err != nil {
			return err
		}
		if err := w.WriteInvoices(invoices, names); err != nil {
			return err
		}
		if offset+len(invoices) >= total || len(invoices) == 0 {
			break
		}
	}

	return w.WriteTo(out)
}

func (s *reportService) resolveCustomerNames(ctx context.Context, invoices []domain.Invoice, names map[string]string) error {
	for i := range invoices {
		key := invoices[i].CustomerID.String()
		if _, ok := names[key]; ok {
			continue
		}
		customer, err := s.customerRepo.GetByID(ctx, invoices[i].CustomerID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				names[key] = ""
				continue
			}
			return fmt.Errorf("reportService.resolveCustomerNames: %w", err)
		}
		names[key] = customer.Name
	}
	return nil
}
