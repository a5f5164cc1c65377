package reports

import (
	"context"
	"fmt"
	"io"

	"bitbucket.org/mmdatafocus/invoice_backend/models"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// maxRegisterRows bounds one export; beyond this the caller should narrow
// the filter.
const maxRegisterRows = 10000

// WriteInvoicesExcel writes the invoice register as an xlsx workbook.
// q applies the same invoice-number/client-name substring filter as the list
// endpoint.
func WriteInvoicesExcel(ctx context.Context, db *gorm.DB, q string, w io.Writer) error {
	invoices, err := models.FindInvoices(ctx, db, q, maxRegisterRows)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	sheet := "Sheet1"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	// Add headers
	f.SetCellValue(sheet, "A1", "InvoiceNumber")
	f.SetCellValue(sheet, "B1", "ClientName")
	f.SetCellValue(sheet, "C1", "InvoiceDate")
	f.SetCellValue(sheet, "D1", "DueDate")
	f.SetCellValue(sheet, "E1", "SubTotal")
	f.SetCellValue(sheet, "F1", "TaxTotal")
	f.SetCellValue(sheet, "G1", "GrandTotal")
	f.SetCellValue(sheet, "H1", "BalanceDue")
	f.SetCellValue(sheet, "I1", "CreatedAt")

	// Add data
	for i, inv := range invoices {
		row := i + 2
		f.SetCellValue(sheet, "A"+fmt.Sprint(row), inv.InvoiceNumber)
		f.SetCellValue(sheet, "B"+fmt.Sprint(row), inv.ClientName)
		f.SetCellValue(sheet, "C"+fmt.Sprint(row), inv.InvoiceDate.Format("2006-01-02"))
		f.SetCellValue(sheet, "D"+fmt.Sprint(row), inv.DueDate.Format("2006-01-02"))
		f.SetCellValue(sheet, "E"+fmt.Sprint(row), inv.SubTotal.StringFixed(2))
		f.SetCellValue(sheet, "F"+fmt.Sprint(row), inv.TaxTotal.StringFixed(2))
		f.SetCellValue(sheet, "G"+fmt.Sprint(row), inv.GrandTotal.StringFixed(2))
		f.SetCellValue(sheet, "H"+fmt.Sprint(row), inv.BalanceDue.StringFixed(2))
		f.SetCellValue(sheet, "I"+fmt.Sprint(row), inv.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	return f.Write(w)
}
