package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Jafanakings/RFM-SEGMENTATION/internal/normalize"
)

// Column names recognized in the CSV header, after normalization to
// snake_case. Extra columns are silently skipped.
const (
	colCustomerID  = "customer_id"
	colOrderID     = "order_id"
	colOrderDate   = "order_date"
	colSalesAmount = "sales_amount"
	colQuantity    = "quantity"
)

// ReadCSV parses CSV data into raw rows for the normalizer. The first record
// must be a header naming the five required columns; column order does not
// matter and unknown columns are ignored.
func ReadCSV(r io.Reader) ([]normalize.RawRow, error) {
	reader := csv.NewReader(r)

	headers, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[toSnakeCase(strings.TrimSpace(h))] = i
	}
	for _, col := range []string{colCustomerID, colOrderID, colOrderDate, colSalesAmount, colQuantity} {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}

	var rows []normalize.RawRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}
		rows = append(rows, normalize.RawRow{
			CustomerID:  record[index[colCustomerID]],
			OrderID:     record[index[colOrderID]],
			OrderDate:   record[index[colOrderDate]],
			SalesAmount: record[index[colSalesAmount]],
			Quantity:    record[index[colQuantity]],
		})
	}
	return rows, nil
}

// ReadFile reads raw rows from a CSV file on disk.
func ReadFile(path string) ([]normalize.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return rows, nil
}

// toSnakeCase lowercases a header and replaces separators so "Order Date",
// "order-date" and "OrderDate" all map to "order_date".
func toSnakeCase(s string) string {
	var b strings.Builder
	var prevLower bool
	for _, r := range s {
		switch {
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('_')
			prevLower = false
		case r >= 'A' && r <= 'Z':
			if prevLower {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			prevLower = false
		default:
			b.WriteRune(r)
			prevLower = r >= 'a' && r <= 'z' || r >= '0' && r <= '9'
		}
	}
	return b.String()
}
