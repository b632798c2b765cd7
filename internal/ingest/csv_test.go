package ingest

import (
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	data := `customer_id,order_id,order_date,sales_amount,quantity
C001,O-1,15/03/23,199.99,2
C002,O-2,01/01/24,50,1
`
	rows, err := ReadCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].CustomerID != "C001" || rows[0].OrderDate != "15/03/23" {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
}

func TestReadCSV_HeaderVariantsAndColumnOrder(t *testing.T) {
	data := `Quantity,Sales Amount,OrderDate,Order-ID,CustomerID
3,75.50,20/06/23,O-9,C009
`
	rows, err := ReadCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	r := rows[0]
	if r.CustomerID != "C009" || r.OrderID != "O-9" || r.Quantity != "3" || r.SalesAmount != "75.50" {
		t.Errorf("header mapping failed: %+v", r)
	}
}

func TestReadCSV_MissingColumn(t *testing.T) {
	data := `customer_id,order_id,order_date
C001,O-1,15/03/23
`
	if _, err := ReadCSV(strings.NewReader(data)); err == nil {
		t.Error("expected error for missing columns")
	}
}

func TestReadCSV_ExtraColumnsIgnored(t *testing.T) {
	data := `customer_id,product,order_id,order_date,sales_amount,quantity
C001,widget,O-1,15/03/23,10,1
`
	rows, err := ReadCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if rows[0].OrderID != "O-1" {
		t.Errorf("extra column shifted mapping: %+v", rows[0])
	}
}

func TestReadCSV_EmptyInput(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader(""))
	if err != nil {
		t.Fatalf("expected no error for empty input, got %v", err)
	}
	if rows != nil {
		t.Errorf("expected nil rows, got %v", rows)
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"CustomerID":   "customer_id",
		"Order Date":   "order_date",
		"order-date":   "order_date",
		"SALES_AMOUNT": "sales_amount",
		"quantity":     "quantity",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
