package domain

// Segment is a named customer category derived from the combination code.
type Segment string

// Segment labels. SegmentOther is the closed-world catch-all for any code not
// present in the classification table; it is a valid outcome, not an error.
// SegmentUnknown only appears in order-volume aggregation when an order line's
// customer has no classification (left-join miss).
const (
	SegmentChampions          Segment = "Champions"
	SegmentLoyalCustomers     Segment = "Loyal Customers"
	SegmentPotentialLoyalists Segment = "Potential Loyalists"
	SegmentPromisingCustomers Segment = "Promising Customers"
	SegmentNeedsAttention     Segment = "Needs Attention"
	SegmentAboutToSleep       Segment = "About to Sleep"
	SegmentOther              Segment = "OTHER"
	SegmentUnknown            Segment = "UNKNOWN"
)
