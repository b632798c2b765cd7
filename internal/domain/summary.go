package domain

import "time"

// CustomerSummary holds the per-customer RFM base metrics, one per distinct
// customer_id. Derived entirely from the order-line batch; never mutated after
// creation - recomputation from scratch is the only update path.
type CustomerSummary struct {
	CustomerID    string
	LastOrderDate time.Time // max order date over the customer's lines
	RecencyDays   int       // dataset max order date minus LastOrderDate, >= 0
	Frequency     int       // distinct order_id count, >= 1
	Monetary      float64   // sum of sales amounts, rounded half away from zero
}
