package models

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/invoice_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const MaxInvoiceItems = 200

type Invoice struct {
	ID int `gorm:"primary_key" json:"id"`

	// Vendor
	VendorName         string `gorm:"size:255" json:"vendor_name"`
	VendorAddressLine1 string `gorm:"size:255" json:"vendor_address_line1"`
	VendorAddressLine2 string `gorm:"size:255" json:"vendor_address_line2"`

	// Invoice meta
	InvoiceNumber string    `gorm:"size:100;index;not null" json:"invoice_number"`
	InvoiceDate   time.Time `gorm:"not null" json:"invoice_date"`
	Terms         string    `gorm:"size:255" json:"terms"`
	DueDate       time.Time `json:"due_date"`

	// Client
	ClientName        string `gorm:"size:200;index" json:"client_name"`
	ClientAddress     string `gorm:"size:255" json:"client_address"`
	ClientCityCountry string `gorm:"size:255" json:"client_city_country"`
	ClientPoc         string `gorm:"size:255" json:"client_poc"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceId" json:"items"`

	// Totals are always recomputed server-side from the submitted items.
	SubTotal     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"sub_total"`
	TaxTotal     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax_total"`
	GrandTotal   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"grand_total"`
	BalanceDue   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"balance_due"`
	TotalInWords string          `gorm:"size:512" json:"total_in_words"`

	Notes string `gorm:"type:text" json:"notes"`

	// Bank
	AccountHolder string `gorm:"size:255" json:"account_holder"`
	AccountNumber string `gorm:"size:64" json:"account_number"`
	Ifsc          string `gorm:"size:16" json:"ifsc"`
	Branch        string `gorm:"size:255" json:"branch"`
	BranchCode    string `gorm:"size:32" json:"branch_code"`

	// Signature
	SignatureName  string `gorm:"size:255" json:"signature_name"`
	SignatureTitle string `gorm:"size:255" json:"signature_title"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type InvoiceItem struct {
	ID          int             `gorm:"primary_key" json:"id"`
	InvoiceId   int             `gorm:"index;not null" json:"invoice_id"`
	ItemNo      int             `gorm:"not null" json:"item_no"`
	Description string          `gorm:"size:255;not null" json:"description"`
	Qty         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"qty"`
	Rate        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"rate"`
	TaxPercent  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax_percent"`
	TaxAmount   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax_amount"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// NewInvoice is the create/preview payload. Client-sent totals are ignored;
// see BuildInvoice.
type NewInvoice struct {
	VendorName         string `json:"vendor_name"`
	VendorAddressLine1 string `json:"vendor_address_line1"`
	VendorAddressLine2 string `json:"vendor_address_line2"`

	InvoiceNumber string `json:"invoice_number"`
	InvoiceDate   string `json:"invoice_date"`
	Terms         string `json:"terms"`
	DueDate       string `json:"due_date"`

	ClientName        string `json:"client_name"`
	ClientAddress     string `json:"client_address"`
	ClientCityCountry string `json:"client_city_country"`
	ClientPoc         string `json:"client_poc"`

	Items []NewInvoiceItem `json:"items"`

	Notes string `json:"notes"`

	AccountHolder string `json:"account_holder"`
	AccountNumber string `json:"account_number"`
	Ifsc          string `json:"ifsc"`
	Branch        string `json:"branch"`
	BranchCode    string `json:"branch_code"`

	SignatureName  string `json:"signature_name"`
	SignatureTitle string `json:"signature_title"`
}

type NewInvoiceItem struct {
	Description string          `json:"description"`
	Qty         decimal.Decimal `json:"qty"`
	Rate        decimal.Decimal `json:"rate"`
	TaxPercent  decimal.Decimal `json:"tax_percent"`
}

// Validate collects every violated constraint, not just the first, so the
// client can show all field errors in one round trip.
func (input NewInvoice) Validate() []string {
	var errs []string

	if strings.TrimSpace(input.InvoiceNumber) == "" {
		errs = append(errs, "invoice_number is required")
	} else if len(input.InvoiceNumber) > 100 {
		errs = append(errs, "invoice_number is too long (max 100 chars)")
	}

	if strings.TrimSpace(input.InvoiceDate) == "" {
		errs = append(errs, "invoice_date is required")
	} else if _, err := parseInvoiceDate(input.InvoiceDate); err != nil {
		errs = append(errs, "invoice_date must be a valid date")
	}

	if strings.TrimSpace(input.DueDate) != "" {
		if _, err := parseInvoiceDate(input.DueDate); err != nil {
			errs = append(errs, "due_date must be a valid date")
		}
	}

	if strings.TrimSpace(input.ClientName) == "" {
		errs = append(errs, "client_name is required")
	} else if len(input.ClientName) > 200 {
		errs = append(errs, "client_name is too long (max 200 chars)")
	}

	if len(input.Items) == 0 {
		errs = append(errs, "at least one item is required")
	} else if len(input.Items) > MaxInvoiceItems {
		errs = append(errs, fmt.Sprintf("too many items in invoice (max %d)", MaxInvoiceItems))
	} else {
		for idx, it := range input.Items {
			if strings.TrimSpace(it.Description) == "" {
				errs = append(errs, fmt.Sprintf("items[%d].description is required", idx))
			}
			if !it.Qty.IsPositive() {
				errs = append(errs, fmt.Sprintf("items[%d].qty must be a number greater than 0", idx))
			}
			if it.Rate.IsNegative() {
				errs = append(errs, fmt.Sprintf("items[%d].rate must be a number >= 0", idx))
			}
			if it.TaxPercent.IsNegative() || it.TaxPercent.GreaterThan(decimal.NewFromInt(100)) {
				errs = append(errs, fmt.Sprintf("items[%d].tax_percent must be between 0 and 100", idx))
			}
		}
	}

	return errs
}

// BuildInvoice turns a validated payload into an Invoice with all derived
// amounts computed. Pure; nothing is persisted here.
//
// Rounding policy: per-line tax amounts are rounded to 2dp then summed, the
// subtotal sums unrounded qty*rate and rounds once, and the grand total is
// subtotal + tax total. That keeps grand_total == sub_total + tax_total exact.
func (input NewInvoice) BuildInvoice() Invoice {
	invoiceDate, _ := parseInvoiceDate(input.InvoiceDate)
	dueDate, _ := parseInvoiceDate(input.DueDate)

	items := make([]InvoiceItem, 0, len(input.Items))
	subTotal := decimal.Zero
	taxTotal := decimal.Zero
	for idx, it := range input.Items {
		taxAmount, amount := utils.CalculateItemAmounts(it.Qty, it.Rate, it.TaxPercent)
		items = append(items, InvoiceItem{
			ItemNo:      idx + 1,
			Description: it.Description,
			Qty:         it.Qty,
			Rate:        it.Rate,
			TaxPercent:  it.TaxPercent,
			TaxAmount:   taxAmount,
			Amount:      amount,
		})
		subTotal = subTotal.Add(utils.CalculateLineValue(it.Qty, it.Rate))
		taxTotal = taxTotal.Add(taxAmount)
	}
	subTotal = subTotal.Round(2)
	grandTotal := subTotal.Add(taxTotal)

	return Invoice{
		VendorName:         input.VendorName,
		VendorAddressLine1: input.VendorAddressLine1,
		VendorAddressLine2: input.VendorAddressLine2,
		InvoiceNumber:      input.InvoiceNumber,
		InvoiceDate:        invoiceDate,
		Terms:              input.Terms,
		DueDate:            dueDate,
		ClientName:         input.ClientName,
		ClientAddress:      input.ClientAddress,
		ClientCityCountry:  input.ClientCityCountry,
		ClientPoc:          input.ClientPoc,
		Items:              items,
		SubTotal:           subTotal,
		TaxTotal:           taxTotal,
		GrandTotal:         grandTotal,
		BalanceDue:         grandTotal,
		TotalInWords:       utils.AmountInWords(grandTotal),
		Notes:              input.Notes,
		AccountHolder:      input.AccountHolder,
		AccountNumber:      input.AccountNumber,
		Ifsc:               input.Ifsc,
		Branch:             input.Branch,
		BranchCode:         input.BranchCode,
		SignatureName:      input.SignatureName,
		SignatureTitle:     input.SignatureTitle,
	}
}

// CreateInvoice validates nothing; callers run Validate first. The item rows
// are created together with the invoice in one transaction by gorm.
func CreateInvoice(ctx context.Context, db *gorm.DB, input NewInvoice) (*Invoice, error) {
	invoice := input.BuildInvoice()
	if err := db.WithContext(ctx).Create(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func GetInvoice(ctx context.Context, db *gorm.DB, id int) (*Invoice, error) {
	var invoice Invoice
	err := db.WithContext(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("item_no ASC") }).
		First(&invoice, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// PaginateInvoices returns one page of invoices plus the total matching
// count, newest first. q is an optional case-insensitive substring matched
// against the invoice number or the client name.
func PaginateInvoices(ctx context.Context, db *gorm.DB, page int, limit int, q string) ([]Invoice, int64, error) {
	tx := db.WithContext(ctx).Model(&Invoice{})
	tx = applyInvoiceSearch(tx, q)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	invoices := []Invoice{}
	err := tx.
		Preload("Items", func(itemTx *gorm.DB) *gorm.DB { return itemTx.Order("item_no ASC") }).
		Order("created_at DESC, id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&invoices).Error
	if err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

// FindInvoices returns matching invoices newest first (no paging, no item
// preload). limit caps the result so a bulk caller cannot pull the whole
// table into memory; pass limit <= 0 for no cap. Used by the Excel register
// export.
func FindInvoices(ctx context.Context, db *gorm.DB, q string, limit int) ([]Invoice, error) {
	var invoices []Invoice
	tx := applyInvoiceSearch(db.WithContext(ctx).Model(&Invoice{}), q)
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if err := tx.Order("created_at DESC, id DESC").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func applyInvoiceSearch(tx *gorm.DB, q string) *gorm.DB {
	q = strings.TrimSpace(q)
	if q == "" {
		return tx
	}
	pattern := "%" + strings.ToLower(q) + "%"
	return tx.Where("LOWER(invoice_number) LIKE ? OR LOWER(client_name) LIKE ?", pattern, pattern)
}

// parseInvoiceDate accepts the date-only form the create page sends plus
// RFC3339 for API callers.
func parseInvoiceDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
