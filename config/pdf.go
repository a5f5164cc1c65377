package config

import (
	"os"
	"strings"
	"time"
)

// PDFConfig holds everything the PDF export pipeline needs to pick and drive
// a rendering backend. Read once at startup; the chosen backend does not
// change per request.
type PDFConfig struct {
	// ServerlessMode prefers the managed (downloaded) Chromium binary over a
	// locally installed browser. Set PDF_SERVERLESS=true on constrained
	// runtimes (Cloud Run, Lambda) where no system browser exists.
	ServerlessMode bool

	// ChromeBin overrides browser discovery with an explicit binary path.
	// Env: CHROME_BIN.
	ChromeBin string

	// RemoteServiceURL is an optional HTML-to-PDF conversion endpoint used as
	// the single fallback when the browser backend fails to launch.
	// Env: PDF_SERVICE_URL.
	RemoteServiceURL string

	// SettleTimeout bounds how long we wait for rendered content to settle
	// before printing. Env: PDF_SETTLE_TIMEOUT_SECONDS (default 30).
	SettleTimeout time.Duration
}

func LoadPDFConfig() *PDFConfig {
	settle := time.Duration(intFromEnv("PDF_SETTLE_TIMEOUT_SECONDS", 30)) * time.Second
	return &PDFConfig{
		ServerlessMode:   boolFromEnv("PDF_SERVERLESS"),
		ChromeBin:        strings.TrimSpace(os.Getenv("CHROME_BIN")),
		RemoteServiceURL: strings.TrimSpace(os.Getenv("PDF_SERVICE_URL")),
		SettleTimeout:    settle,
	}
}

func boolFromEnv(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}
