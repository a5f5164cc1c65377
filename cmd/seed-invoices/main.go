// seed-invoices fills the database with a handful of sample invoices for
// local development.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-invoices
package main

import (
	"context"
	"fmt"
	"os"

	"bitbucket.org/mmdatafocus/invoice_backend/config"
	"bitbucket.org/mmdatafocus/invoice_backend/models"
	"github.com/shopspring/decimal"
)

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}
	models.MigrateTable(db)

	samples := []models.NewInvoice{
		{
			VendorName:         "Datafocus Consulting LLP",
			VendorAddressLine1: "12 Residency Road",
			VendorAddressLine2: "Bengaluru, Karnataka 560025",
			InvoiceNumber:      "INV-2026-0001",
			InvoiceDate:        "2026-08-01",
			Terms:              "Net 30",
			DueDate:            "2026-08-31",
			ClientName:         "Acme Retail Pvt Ltd",
			ClientAddress:      "4th Floor, Trade Centre",
			ClientCityCountry:  "Mumbai, India",
			ClientPoc:          "Priya Sharma",
			Items: []models.NewInvoiceItem{
				{Description: "Backend development (August)", Qty: decimal.NewFromInt(80), Rate: decimal.NewFromInt(2500), TaxPercent: decimal.NewFromInt(18)},
				{Description: "Production support retainer", Qty: decimal.NewFromInt(1), Rate: decimal.NewFromInt(40000), TaxPercent: decimal.NewFromInt(18)},
			},
			Notes:         "Payment via NEFT/RTGS only.",
			AccountHolder: "Datafocus Consulting LLP",
			AccountNumber: "50100234567890",
			Ifsc:          "HDFC0001234",
			Branch:        "Residency Road",
			BranchCode:    "1234",
			SignatureName: "R. Iyer",
		},
		{
			VendorName:         "Datafocus Consulting LLP",
			VendorAddressLine1: "12 Residency Road",
			VendorAddressLine2: "Bengaluru, Karnataka 560025",
			InvoiceNumber:      "INV-2026-0002",
			InvoiceDate:        "2026-08-15",
			Terms:              "Due on receipt",
			ClientName:         "Northwind Traders",
			ClientCityCountry:  "Chennai, India",
			Items: []models.NewInvoiceItem{
				{Description: "Data migration (one-time)", Qty: decimal.NewFromInt(1), Rate: decimal.NewFromInt(85000), TaxPercent: decimal.NewFromInt(18)},
			},
			AccountHolder: "Datafocus Consulting LLP",
			AccountNumber: "50100234567890",
			Ifsc:          "HDFC0001234",
			Branch:        "Residency Road",
			SignatureName: "R. Iyer",
		},
	}

	for _, input := range samples {
		if errs := input.Validate(); len(errs) > 0 {
			fmt.Fprintf(os.Stderr, "sample %s is invalid: %v\n", input.InvoiceNumber, errs)
			os.Exit(2)
		}
		invoice, err := models.CreateInvoice(ctx, db, input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create %s: %v\n", input.InvoiceNumber, err)
			os.Exit(1)
		}
		fmt.Printf("created invoice %s (id=%d, grand total %s)\n", invoice.InvoiceNumber, invoice.ID, invoice.GrandTotal.StringFixed(2))
	}
}
