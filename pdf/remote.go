package pdf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Payload the remote HTML-to-PDF conversion service accepts. The response
// body is the raw PDF.
type remoteRenderRequest struct {
	HTML          string `json:"html"`
	InvoiceNumber string `json:"invoiceNumber"`
}

func (e *Exporter) renderWithRemote(ctx context.Context, html string, invoiceNumber string) ([]byte, error) {
	body, err := json.Marshal(remoteRenderRequest{HTML: html, InvoiceNumber: invoiceNumber})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrRemoteService, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.remoteURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteService, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrRemoteService, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrRemoteService, err)
	}
	if !IsPDF(data) {
		return nil, fmt.Errorf("%w: response is not a pdf (%d bytes)", ErrRemoteService, len(data))
	}
	return data, nil
}
