package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Jafanakings/RFM-SEGMENTATION/internal/domain"
)

// dateLayout is the source date format: day/month/2-digit-year.
// time.Parse with this layout also rejects calendar-invalid dates
// (e.g. 31/04/23), which is exactly the validation the normalizer needs.
const dateLayout = "02/01/06"

// RawRow is an order-line row as received from the loading collaborator,
// before any typing. All fields are strings, CSV-shaped.
type RawRow struct {
	CustomerID  string
	OrderID     string
	OrderDate   string // DD/MM/YY
	SalesAmount string
	Quantity    string
}

// ParseError reports a row that could not be normalized. Index is the
// 0-based position of the row within the batch.
type ParseError struct {
	Index int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: parse %s %q: %v", e.Index, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Policy controls how a batch reacts to an unparseable row.
type Policy int

const (
	// PolicyAbort fails the whole batch on the first bad row. This is the
	// default: silently dropping rows would corrupt every downstream
	// aggregate sum.
	PolicyAbort Policy = iota

	// PolicySkip drops bad rows and counts them, keeping the rest of the
	// batch. Callers opting in must surface the skip count themselves.
	PolicySkip
)

// Normalizer converts raw rows into typed order lines.
type Normalizer struct {
	policy Policy

	// Skipped counts rows dropped under PolicySkip. Zero under PolicyAbort.
	Skipped int
}

// New creates a Normalizer with the abort-on-error policy.
func New() *Normalizer {
	return &Normalizer{policy: PolicyAbort}
}

// WithPolicy sets the bad-row policy.
func (n *Normalizer) WithPolicy(p Policy) *Normalizer {
	n.policy = p
	return n
}

// NormalizeBatch converts a batch of raw rows into order lines. Under
// PolicyAbort the first bad row fails the batch with a ParseError; under
// PolicySkip bad rows are dropped and counted in n.Skipped. An empty batch
// yields an empty slice, no error.
func (n *Normalizer) NormalizeBatch(rows []RawRow) ([]domain.OrderLine, error) {
	lines := make([]domain.OrderLine, 0, len(rows))
	for i, row := range rows {
		line, err := normalizeRow(i, row)
		if err != nil {
			if n.policy == PolicySkip {
				n.Skipped++
				continue
			}
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// normalizeRow parses a single raw row. Only date validity and numeric shape
// are checked: negative amounts pass through unchanged, matching the source
// dataset's lack of guardrails.
func normalizeRow(index int, row RawRow) (domain.OrderLine, error) {
	date, err := ParseOrderDate(row.OrderDate)
	if err != nil {
		return domain.OrderLine{}, &ParseError{Index: index, Field: "order_date", Value: row.OrderDate, Err: err}
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(row.SalesAmount), 64)
	if err != nil {
		return domain.OrderLine{}, &ParseError{Index: index, Field: "sales_amount", Value: row.SalesAmount, Err: err}
	}

	qty, err := strconv.ParseInt(strings.TrimSpace(row.Quantity), 10, 64)
	if err != nil {
		return domain.OrderLine{}, &ParseError{Index: index, Field: "quantity", Value: row.Quantity, Err: err}
	}

	return domain.OrderLine{
		CustomerID:  row.CustomerID,
		OrderID:     row.OrderID,
		OrderDate:   date,
		SalesAmount: amount,
		Quantity:    qty,
	}, nil
}

// ParseOrderDate parses a DD/MM/YY date string into a midnight-UTC time.
// Rejects both malformed strings and calendar-invalid dates.
func ParseOrderDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
