package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/invoice_backend/config"
	"bitbucket.org/mmdatafocus/invoice_backend/models"
	"bitbucket.org/mmdatafocus/invoice_backend/pdf"
	"bitbucket.org/mmdatafocus/invoice_backend/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func createInvoiceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		var input models.NewInvoice
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid request body: " + err.Error()}})
			return
		}
		if errs := input.Validate(); len(errs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
			return
		}

		invoice, err := models.CreateInvoice(c.Request.Context(), config.GetDB(), input)
		if err != nil {
			config.LogError(logger, "handlers.go", "createInvoiceHandler", "CreateInvoice", input.InvoiceNumber, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save invoice"})
			return
		}
		c.JSON(http.StatusCreated, invoice)
	}
}

func getInvoiceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		id, ok := invoiceIdParam(c)
		if !ok {
			return
		}
		invoice, err := models.GetInvoice(c.Request.Context(), config.GetDB(), id)
		if err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
				return
			}
			config.LogError(logger, "handlers.go", "getInvoiceHandler", "GetInvoice", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load invoice"})
			return
		}
		c.JSON(http.StatusOK, invoice)
	}
}

func listInvoicesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		page, limit := models.ParsePagination(c.Query("page"), c.Query("limit"))
		q := c.Query("q")

		invoices, total, err := models.PaginateInvoices(c.Request.Context(), config.GetDB(), page, limit, q)
		if err != nil {
			config.LogError(logger, "handlers.go", "listInvoicesHandler", "PaginateInvoices", q, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list invoices"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"invoices": invoices,
			"total":    total,
			"page":     page,
			"limit":    limit,
		})
	}
}

// invoicePDFHandler is the preview path: it takes a full payload, recomputes
// the totals and streams the PDF without persisting anything.
func invoicePDFHandler(exporter *pdf.Exporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewInvoice
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid request body: " + err.Error()}})
			return
		}
		if errs := input.Validate(); len(errs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
			return
		}

		invoice := input.BuildInvoice()
		writeInvoicePDF(c, exporter, &invoice)
	}
}

// invoicePDFByIdHandler exports a stored invoice.
func invoicePDFByIdHandler(exporter *pdf.Exporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		id, ok := invoiceIdParam(c)
		if !ok {
			return
		}
		invoice, err := models.GetInvoice(c.Request.Context(), config.GetDB(), id)
		if err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
				return
			}
			config.LogError(logger, "handlers.go", "invoicePDFByIdHandler", "GetInvoice", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load invoice"})
			return
		}
		writeInvoicePDF(c, exporter, invoice)
	}
}

func writeInvoicePDF(c *gin.Context, exporter *pdf.Exporter, invoice *models.Invoice) {
	logger := config.GetLogger()

	data, err := exporter.ExportInvoice(c.Request.Context(), invoice)
	if err != nil {
		config.LogError(logger, "handlers.go", "writeInvoicePDF", "ExportInvoice", invoice.InvoiceNumber, err)
		body := gin.H{"message": "Failed to generate PDF"}
		// Error detail is useful during development but must not leak
		// host paths in production.
		if !strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
			body["details"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
		return
	}

	filename := "Invoice_" + sanitizeFilename(invoice.InvoiceNumber) + ".pdf"
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// exportInvoicesExcelHandler buffers the whole workbook before sending any
// byte, so a failed query yields a clean 500 instead of a zero-byte download
// with attachment headers already out.
func exportInvoicesExcelHandler(export func(ctx context.Context, db *gorm.DB, q string, w io.Writer) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		var buf bytes.Buffer
		if err := export(c.Request.Context(), config.GetDB(), c.Query("q"), &buf); err != nil {
			config.LogError(logger, "handlers.go", "exportInvoicesExcelHandler", "WriteInvoicesExcel", c.Query("q"), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not export invoices"})
			return
		}

		filename := "invoices_" + time.Now().Format("20060102") + ".xlsx"
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	}
}

func invoiceIdParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice id"})
		return 0, false
	}
	return id, true
}

// sanitizeFilename keeps the download filename header parseable whatever
// characters the invoice number carries.
func sanitizeFilename(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		case r == '-' || r == '_' || r == '.':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "invoice"
	}
	return string(out)
}
