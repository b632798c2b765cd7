package normalize

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizeBatch_ValidRows(t *testing.T) {
	rows := []RawRow{
		{CustomerID: "C001", OrderID: "O-1", OrderDate: "15/03/23", SalesAmount: "199.99", Quantity: "2"},
		{CustomerID: "C002", OrderID: "O-2", OrderDate: "01/01/24", SalesAmount: "50", Quantity: "1"},
	}

	lines, err := New().NormalizeBatch(rows)
	if err != nil {
		t.Fatalf("NormalizeBatch failed: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	want := time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC)
	if !lines[0].OrderDate.Equal(want) {
		t.Errorf("OrderDate mismatch: got %v, want %v", lines[0].OrderDate, want)
	}
	if lines[0].SalesAmount != 199.99 {
		t.Errorf("SalesAmount mismatch: got %f", lines[0].SalesAmount)
	}
	if lines[1].Quantity != 1 {
		t.Errorf("Quantity mismatch: got %d", lines[1].Quantity)
	}
}

func TestNormalizeBatch_EmptyInput(t *testing.T) {
	lines, err := New().NormalizeBatch(nil)
	if err != nil {
		t.Fatalf("NormalizeBatch failed: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected empty result, got %d lines", len(lines))
	}
}

func TestNormalizeBatch_MalformedDateAborts(t *testing.T) {
	rows := []RawRow{
		{CustomerID: "C001", OrderID: "O-1", OrderDate: "2023-03-15", SalesAmount: "10", Quantity: "1"},
	}

	_, err := New().NormalizeBatch(rows)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if parseErr.Field != "order_date" {
		t.Errorf("expected order_date field, got %s", parseErr.Field)
	}
	if parseErr.Index != 0 {
		t.Errorf("expected index 0, got %d", parseErr.Index)
	}
}

func TestNormalizeBatch_CalendarInvalidDate(t *testing.T) {
	// 31 April does not exist; the layout alone would accept it.
	rows := []RawRow{
		{CustomerID: "C001", OrderID: "O-1", OrderDate: "31/04/23", SalesAmount: "10", Quantity: "1"},
	}

	_, err := New().NormalizeBatch(rows)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError for invalid calendar date, got %v", err)
	}
}

func TestNormalizeBatch_AbortStopsAtFirstBadRow(t *testing.T) {
	rows := []RawRow{
		{CustomerID: "C001", OrderID: "O-1", OrderDate: "15/03/23", SalesAmount: "10", Quantity: "1"},
		{CustomerID: "C002", OrderID: "O-2", OrderDate: "bad", SalesAmount: "10", Quantity: "1"},
		{CustomerID: "C003", OrderID: "O-3", OrderDate: "16/03/23", SalesAmount: "10", Quantity: "1"},
	}

	lines, err := New().NormalizeBatch(rows)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if lines != nil {
		t.Errorf("expected nil lines on abort, got %d", len(lines))
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if parseErr.Index != 1 {
		t.Errorf("expected failure at row 1, got %d", parseErr.Index)
	}
}

func TestNormalizeBatch_SkipPolicyCountsBadRows(t *testing.T) {
	rows := []RawRow{
		{CustomerID: "C001", OrderID: "O-1", OrderDate: "15/03/23", SalesAmount: "10", Quantity: "1"},
		{CustomerID: "C002", OrderID: "O-2", OrderDate: "99/99/99", SalesAmount: "10", Quantity: "1"},
		{CustomerID: "C003", OrderID: "O-3", OrderDate: "16/03/23", SalesAmount: "x", Quantity: "1"},
		{CustomerID: "C004", OrderID: "O-4", OrderDate: "17/03/23", SalesAmount: "10", Quantity: "3"},
	}

	n := New().WithPolicy(PolicySkip)
	lines, err := n.NormalizeBatch(rows)
	if err != nil {
		t.Fatalf("NormalizeBatch failed: %v", err)
	}
	if len(lines) != 2 {
		t.Errorf("expected 2 surviving lines, got %d", len(lines))
	}
	if n.Skipped != 2 {
		t.Errorf("expected 2 skipped rows, got %d", n.Skipped)
	}
}

func TestNormalizeBatch_NegativeAmountPassesThrough(t *testing.T) {
	// No guardrails on amounts: refunds/corrections pass through unchanged.
	rows := []RawRow{
		{CustomerID: "C001", OrderID: "O-1", OrderDate: "15/03/23", SalesAmount: "-25.50", Quantity: "1"},
	}

	lines, err := New().NormalizeBatch(rows)
	if err != nil {
		t.Fatalf("NormalizeBatch failed: %v", err)
	}
	if lines[0].SalesAmount != -25.50 {
		t.Errorf("expected -25.50 passed through, got %f", lines[0].SalesAmount)
	}
}

func TestParseOrderDate_TwoDigitYearWindow(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"01/01/99", time.Date(1999, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"31/12/23", time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)},
		{"29/02/24", time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)}, // leap day
	}

	for _, tt := range tests {
		got, err := ParseOrderDate(tt.in)
		if err != nil {
			t.Errorf("ParseOrderDate(%q) failed: %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseOrderDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseOrderDate_NonLeapFebruary(t *testing.T) {
	if _, err := ParseOrderDate("29/02/23"); err == nil {
		t.Error("expected error for 29/02/23 (not a leap year)")
	}
}
