package sales

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales_data.txt")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

func TestReadSalesFile(t *testing.T) {
	content := "TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region\n" +
		"T001|2024-12-01|P101|Laptop|2|45000|C001|North\n" +
		"\n" +
		"T002|2024-12-01|P102|Mouse|5|500|C002|South\n"

	lines, err := ReadSalesFile(writeTempFile(t, []byte(content)))
	if err != nil {
		t.Fatalf("ReadSalesFile() error: %v", err)
	}

	if len(lines) != 2 {
		t.Fatalf("Expected 2 data lines (header and blank skipped), got %d", len(lines))
	}
	if lines[0] != "T001|2024-12-01|P101|Laptop|2|45000|C001|North" {
		t.Errorf("Unexpected first line: %q", lines[0])
	}
}

func TestReadSalesFile_Latin1(t *testing.T) {
	// "Café" with é as Latin-1 0xE9, which is invalid UTF-8.
	data := []byte("header\nT001|2024-12-01|P101|Caf\xe9|2|45000|C001|North\n")

	lines, err := ReadSalesFile(writeTempFile(t, data))
	if err != nil {
		t.Fatalf("ReadSalesFile() error: %v", err)
	}

	if len(lines) != 1 {
		t.Fatalf("Expected 1 data line, got %d", len(lines))
	}
	if lines[0] != "T001|2024-12-01|P101|Café|2|45000|C001|North" {
		t.Errorf("Expected Latin-1 transcoding, got %q", lines[0])
	}
}

func TestReadSalesFile_Missing(t *testing.T) {
	_, err := ReadSalesFile(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestReadSalesFile_HeaderOnly(t *testing.T) {
	lines, err := ReadSalesFile(writeTempFile(t, []byte("TransactionID|Date\n")))
	if err != nil {
		t.Fatalf("ReadSalesFile() error: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("Expected 0 data lines, got %d", len(lines))
	}
}
