// Package xlsxexport renders invoice listings as XLSX workbooks.
package xlsxexport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"invoxd/internal/domain"
)

const sheetName = "Invoices"

// columns defines the header row of the invoices sheet.
var columns = []string{
	"Invoice Number",
	"Order Date",
	"Due Date",
	"Invoice From",
	"Invoice To",
	"Customer",
	"Type",
	"Status",
	"Currency",
	"Tax",
	"Total Amount",
	"Created At",
}

// Writer builds an invoices workbook row by row.
type Writer struct {
	f   *excelize.File
	row int
}

// NewWriter creates a Writer with the header row already in place.
func NewWriter() (*Writer, error) {
	f := excelize.NewFile()
	idx, err := f.GetSheetIndex("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("xlsxexport: sheet index: %w", err)
	}
	if err := f.SetSheetName(f.GetSheetName(idx), sheetName); err != nil {
		return nil, fmt.Errorf("xlsxexport: rename sheet: %w", err)
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsxexport: header: %w", err)
	}
	return &Writer{f: f, row: 1}, nil
}

// WriteInvoices appends one row per invoice. customerNames maps customer
// IDs to display names; unknown IDs render blank.
func (w *Writer) WriteInvoices(invoices []domain.Invoice, customerNames map[string]string) error {
	for i := range invoices {
		w.row++
		inv := &invoices[i]

		dueDate := ""
		if inv.DueDate != nil {
			dueDate = inv.DueDate.Format("2006-01-02")
		}

		row := []any{
			inv.InvoiceNumber,
			inv.OrderDate.Format("2006-01-02"),
			dueDate,
			inv.InvoiceFrom,
			inv.InvoiceTo,
			customerNames[inv.CustomerID.String()],
			string(inv.InvoiceType),
			string(inv.Status),
			inv.Currency,
			inv.Tax,
			inv.TotalAmount,
			inv.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		cell, err := excelize.CoordinatesToCellName(1, w.row)
		if err != nil {
			return fmt.Errorf("xlsxexport: cell name: %w", err)
		}
		if err := w.f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("xlsxexport: row %d: %w", w.row, err)
		}
	}
	return nil
}

// WriteTo serializes the workbook and closes it.
func (w *Writer) WriteTo(out io.Writer) error {
	defer func() { _ = w.f.Close() }()
	if err := w.f.Write(out); err != nil {
		return fmt.Errorf("xlsxexport: write workbook: %w", err)
	}
	return nil
}
