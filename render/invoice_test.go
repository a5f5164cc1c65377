package render

import (
	"strings"
	"testing"

	"bitbucket.org/mmdatafocus/invoice_backend/models"
	"github.com/shopspring/decimal"
)

func sampleInvoice() *models.Invoice {
	input := models.NewInvoice{
		VendorName:    "Datafocus Consulting LLP",
		InvoiceNumber: "INV-2026-0042",
		InvoiceDate:   "2026-08-31",
		DueDate:       "2026-09-30",
		Terms:         "Net 30",
		ClientName:    "Acme Retail Pvt Ltd",
		ClientPoc:     "Priya Sharma",
		Items: []models.NewInvoiceItem{
			{Description: "Consulting", Qty: decimal.NewFromInt(2), Rate: decimal.NewFromInt(100), TaxPercent: decimal.NewFromInt(18)},
		},
	}
	invoice := input.BuildInvoice()
	return &invoice
}

func TestRenderInvoiceHTML(t *testing.T) {
	html, err := RenderInvoiceHTML(sampleInvoice())
	if err != nil {
		t.Fatalf("RenderInvoiceHTML: %v", err)
	}

	for _, want := range []string{
		"TAX INVOICE",
		"INV-2026-0042",
		"Acme Retail Pvt Ltd",
		"31/08/2026",
		"236.00",
		"Two Hundred Thirty Six Only",
		"Balance Due",
		"@page",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered html missing %q", want)
		}
	}
}

func TestRenderInvoiceHTMLEscapesUserText(t *testing.T) {
	invoice := sampleInvoice()
	invoice.ClientName = `<script>alert("x")</script>`
	invoice.Notes = `a < b & "quoted"`

	html, err := RenderInvoiceHTML(invoice)
	if err != nil {
		t.Fatalf("RenderInvoiceHTML: %v", err)
	}
	if strings.Contains(html, "<script>alert") {
		t.Fatal("client name was not escaped")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Fatal("expected escaped script tag in output")
	}
}

func TestRenderInvoiceHTMLIsDeterministic(t *testing.T) {
	invoice := sampleInvoice()
	first, err := RenderInvoiceHTML(invoice)
	if err != nil {
		t.Fatalf("RenderInvoiceHTML: %v", err)
	}
	second, err := RenderInvoiceHTML(invoice)
	if err != nil {
		t.Fatalf("RenderInvoiceHTML: %v", err)
	}
	if first != second {
		t.Fatal("same invoice rendered different markup")
	}
}

func TestRenderInvoiceHTMLOmitsEmptyNotes(t *testing.T) {
	invoice := sampleInvoice()
	invoice.Notes = ""
	html, err := RenderInvoiceHTML(invoice)
	if err != nil {
		t.Fatalf("RenderInvoiceHTML: %v", err)
	}
	if strings.Contains(html, "notes-section") {
		t.Fatal("notes block rendered for an invoice without notes")
	}
}

func TestRenderInvoiceHTMLSignatureFallback(t *testing.T) {
	invoice := sampleInvoice()
	invoice.SignatureTitle = ""
	html, err := RenderInvoiceHTML(invoice)
	if err != nil {
		t.Fatalf("RenderInvoiceHTML: %v", err)
	}
	if !strings.Contains(html, "Authorized Signature") {
		t.Fatal("missing signature title fallback")
	}
}
