// Package export renders the saved inventory list into shareable artifacts:
// a CSV file for spreadsheets and a pipe-delimited text table for messaging
// apps.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"stockscan/internal/model"
)

// Timestamps use the same compact layout the filenames do.
const timeLayout = "2006-01-02 15:04:05"

// utf8BOM makes Excel open the CSV as UTF-8; the headers are Korean.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes the product-number log as CSV with a 품번,인식시간
// (product number, recognized time) header.
func WriteCSV(w io.Writer, items []model.InventoryItem) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write CSV: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"품번", "인식시간"}); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}
	for _, it := range items {
		record := []string{it.ProductNumber, it.CreatedAt.Format(timeLayout)}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write CSV record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTable writes a pipe-delimited text table:
// 품번 | 수량 | 단위 | 유통기한 (product number, quantity, unit, expiration).
func WriteTable(w io.Writer, items []model.InventoryItem) error {
	var b strings.Builder
	b.WriteString("품번 | 수량 | 단위 | 유통기한\n")
	for _, it := range items {
		expiration := it.ExpirationDate
		if expiration == "" {
			expiration = "-"
		}
		fmt.Fprintf(&b, "%s | %d | %s | %s\n",
			it.ProductNumber, it.Quantity, it.PackagingUnit, expiration)
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}

// CSVFilename returns the timestamp-suffixed CSV filename for an export at t.
func CSVFilename(t time.Time) string {
	return fmt.Sprintf("품번목록_%s.csv", t.Format("20060102_150405"))
}

// TableFilename returns the timestamp-suffixed text filename for an export at t.
func TableFilename(t time.Time) string {
	return fmt.Sprintf("재고목록_%s.txt", t.Format("20060102_150405"))
}
