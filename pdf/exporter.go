// Package pdf converts rendered invoice HTML into PDF bytes. A headless
// browser (local or rod-managed Chromium) is the primary path; a remote
// HTML-to-PDF service, when configured, is the single fallback taken if the
// browser cannot be launched.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"bitbucket.org/mmdatafocus/invoice_backend/config"
	"bitbucket.org/mmdatafocus/invoice_backend/models"
	"bitbucket.org/mmdatafocus/invoice_backend/render"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sirupsen/logrus"
)

var (
	// ErrBackendUnavailable means no browser backend could be launched and no
	// fallback was configured or the fallback also failed.
	ErrBackendUnavailable = errors.New("no pdf rendering backend available")

	// ErrContentTimeout means the page did not settle before the configured
	// timeout. Terminal; the fallback is only for launch failures.
	ErrContentTimeout = errors.New("page content did not settle before timeout")

	// ErrRemoteService means the fallback service was reachable but returned
	// a non-success status or something that is not a PDF.
	ErrRemoteService = errors.New("remote pdf service failed")
)

// A4 in inches, 10mm margins.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
	marginInches      = 0.394
)

type Exporter struct {
	backend       Backend
	remoteURL     string
	settleTimeout time.Duration
	client        *http.Client
	logger        *logrus.Logger
}

func NewExporter(backend Backend, remoteURL string, settleTimeout time.Duration, logger *logrus.Logger) *Exporter {
	return &Exporter{
		backend:       backend,
		remoteURL:     remoteURL,
		settleTimeout: settleTimeout,
		client:        &http.Client{Timeout: 60 * time.Second},
		logger:        logger,
	}
}

// FromConfig builds the exporter with the backend strategy picked once from
// configuration.
func FromConfig(cfg *config.PDFConfig, logger *logrus.Logger) *Exporter {
	return NewExporter(BackendFromConfig(cfg), cfg.RemoteServiceURL, cfg.SettleTimeout, logger)
}

// ExportInvoice renders the invoice document and converts it to PDF.
func (e *Exporter) ExportInvoice(ctx context.Context, invoice *models.Invoice) ([]byte, error) {
	html, err := render.RenderInvoiceHTML(invoice)
	if err != nil {
		return nil, fmt.Errorf("render invoice html: %w", err)
	}
	return e.ExportHTML(ctx, html, invoice.InvoiceNumber)
}

// ExportHTML converts a self-contained HTML document to PDF bytes. If the
// browser backend fails to launch and a remote service URL is configured,
// exactly one fallback attempt is made against it.
func (e *Exporter) ExportHTML(ctx context.Context, html string, invoiceNumber string) ([]byte, error) {
	data, err := e.renderWithBrowser(ctx, html)
	if err == nil {
		return data, nil
	}

	if errors.Is(err, ErrBackendUnavailable) && e.remoteURL != "" {
		e.logger.WithFields(logrus.Fields{
			"module":  "pdf",
			"backend": e.backend.Name(),
			"invoice": invoiceNumber,
		}).Warn("browser backend unavailable, falling back to remote pdf service: " + err.Error())
		return e.renderWithRemote(ctx, html, invoiceNumber)
	}
	return nil, err
}

func (e *Exporter) renderWithBrowser(ctx context.Context, html string) ([]byte, error) {
	browser, cleanup, err := e.backend.Launch(ctx)
	if err != nil {
		return nil, err
	}
	// Cleanup on every exit path; a hung page must not leak the process.
	defer cleanup()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	page = page.Timeout(e.settleTimeout)

	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("set document content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContentTimeout, err)
	}
	if err := page.WaitIdle(e.settleTimeout); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContentTimeout, err)
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground: true,
		PaperWidth:      inches(paperWidthInches),
		PaperHeight:     inches(paperHeightInches),
		MarginTop:       inches(marginInches),
		MarginBottom:    inches(marginInches),
		MarginLeft:      inches(marginInches),
		MarginRight:     inches(marginInches),
	})
	if err != nil {
		return nil, fmt.Errorf("print to pdf: %w", err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read pdf stream: %w", err)
	}
	if !IsPDF(data) {
		return nil, fmt.Errorf("browser produced invalid pdf content (%d bytes)", len(data))
	}
	return data, nil
}

// IsPDF reports whether data starts with the PDF file signature.
func IsPDF(data []byte) bool {
	return len(data) >= 4 && string(data[:4]) == "%PDF"
}

func inches(v float64) *float64 {
	return &v
}
