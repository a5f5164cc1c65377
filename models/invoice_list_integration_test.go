package models_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/invoice_backend/config"
	"bitbucket.org/mmdatafocus/invoice_backend/models"
	"github.com/shopspring/decimal"
)

func TestInvoiceListAndSearch(t *testing.T) {
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires docker)")
	}

	ctx := context.Background()

	mysqlName, mysqlPort := startMySQLContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(mysqlName) })

	t.Setenv("DB_USER", "root")
	t.Setenv("DB_PASSWORD", "testpw")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", mysqlPort)
	t.Setenv("DB_NAME", "invoice_test")

	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	models.MigrateTable(db)

	seed := []struct {
		number string
		client string
	}{
		{"INV-1001", "Acme Retail Pvt Ltd"},
		{"INV-1002", "Northwind Traders"},
		{"REG-2001", "acme wholesale"},
	}
	for _, s := range seed {
		input := models.NewInvoice{
			InvoiceNumber: s.number,
			InvoiceDate:   "2026-08-01",
			ClientName:    s.client,
			Items: []models.NewInvoiceItem{
				{Description: "Line", Qty: decimal.NewFromInt(1), Rate: decimal.NewFromInt(100), TaxPercent: decimal.NewFromInt(18)},
			},
		}
		if errs := input.Validate(); len(errs) > 0 {
			t.Fatalf("seed %s invalid: %v", s.number, errs)
		}
		if _, err := models.CreateInvoice(ctx, db, input); err != nil {
			t.Fatalf("CreateInvoice(%s): %v", s.number, err)
		}
	}

	// Substring search is case-insensitive and matches invoice number OR
	// client name.
	invoices, total, err := models.PaginateInvoices(ctx, db, 1, 10, "ACME")
	if err != nil {
		t.Fatalf("PaginateInvoices(ACME): %v", err)
	}
	if total != 2 || len(invoices) != 2 {
		t.Fatalf("search ACME: total=%d len=%d, want 2/2", total, len(invoices))
	}
	for _, inv := range invoices {
		if !strings.Contains(strings.ToLower(inv.ClientName), "acme") {
			t.Fatalf("search ACME returned %s / %s", inv.InvoiceNumber, inv.ClientName)
		}
	}

	invoices, total, err = models.PaginateInvoices(ctx, db, 1, 10, "inv-100")
	if err != nil {
		t.Fatalf("PaginateInvoices(inv-100): %v", err)
	}
	if total != 2 || len(invoices) != 2 {
		t.Fatalf("search inv-100: total=%d len=%d, want 2/2", total, len(invoices))
	}

	// No match: empty page, zero total.
	invoices, total, err = models.PaginateInvoices(ctx, db, 1, 10, "zzz-nothing")
	if err != nil {
		t.Fatalf("PaginateInvoices(no match): %v", err)
	}
	if total != 0 || len(invoices) != 0 {
		t.Fatalf("no match: total=%d len=%d, want 0/0", total, len(invoices))
	}

	// Page beyond the last one: empty slice, but the total still counts
	// every match.
	invoices, total, err = models.PaginateInvoices(ctx, db, 5, 10, "")
	if err != nil {
		t.Fatalf("PaginateInvoices(page 5): %v", err)
	}
	if total != 3 {
		t.Fatalf("page beyond end: total=%d, want 3", total)
	}
	if len(invoices) != 0 {
		t.Fatalf("page beyond end: len=%d, want 0", len(invoices))
	}

	// Newest first.
	invoices, _, err = models.PaginateInvoices(ctx, db, 1, 10, "")
	if err != nil {
		t.Fatalf("PaginateInvoices(all): %v", err)
	}
	if invoices[0].InvoiceNumber != "REG-2001" {
		t.Fatalf("first invoice = %s, want newest (REG-2001)", invoices[0].InvoiceNumber)
	}

	// The register query honors its row cap.
	capped, err := models.FindInvoices(ctx, db, "", 2)
	if err != nil {
		t.Fatalf("FindInvoices: %v", err)
	}
	if len(capped) != 2 {
		t.Fatalf("FindInvoices limit 2: len=%d", len(capped))
	}
}

func startMySQLContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("invoice-test-mysql-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-e", "MYSQL_ROOT_PASSWORD=testpw",
		"-e", "MYSQL_DATABASE=invoice_test",
		"-p", "127.0.0.1:0:3306",
		"mysql:8.0",
		"--default-authentication-plugin=mysql_native_password",
	)
	if err != nil {
		t.Fatalf("start mysql container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "3306/tcp")
	if err != nil {
		t.Fatalf("mysql docker port: %v", err)
	}
	// wait until ready
	deadline := time.Now().Add(120 * time.Second)
	for time.Now().Before(deadline) {
		_, err := dockerRun("exec", name, "mysqladmin", "ping", "-h", "127.0.0.1", "-ptestpw", "--silent")
		if err == nil {
			return name, port
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("mysql did not become ready")
	return "", ""
}

func dockerHostPort(container, portProto string) (string, error) {
	out, err := dockerRun("port", container, portProto)
	if err != nil {
		return "", fmt.Errorf("docker port: %w: %s", err, out)
	}
	// Example: "127.0.0.1:49154\n"
	re := regexp.MustCompile(`:(\d+)`)
	m := re.FindStringSubmatch(out)
	if len(m) != 2 {
		return "", fmt.Errorf("unexpected docker port output: %q", out)
	}
	return m[1], nil
}

func dockerRmForce(container string) error {
	if strings.TrimSpace(container) == "" {
		return nil
	}
	_, err := dockerRun("rm", "-f", container)
	return err
}

func dockerRun(args ...string) (string, error) {
	cmd := exec.Command("docker", args...)
	b, err := cmd.CombinedOutput()
	return string(b), err
}
