package domain

import "time"

// OrderLine represents one normalized order-line row from the sales dataset.
// Corresponds to the order_lines table in PostgreSQL.
// Multiple lines may share a customer_id and/or order_id.
type OrderLine struct {
	CustomerID  string    // exact-match grouping key, case-sensitive
	OrderID     string    // opaque key, used only for distinct-order counting
	OrderDate   time.Time // calendar date, normalized to midnight UTC
	SalesAmount float64   // passed through unvalidated, negatives allowed
	Quantity    int64     // units ordered
}
