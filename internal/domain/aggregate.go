package domain

// SegmentMonetaryAggregate is the per-segment rollup over classified
// customers: how much revenue each segment holds and its per-customer average.
type SegmentMonetaryAggregate struct {
	Segment         Segment
	Customers       int
	TotalMonetary   float64
	AverageMonetary float64
}

// SegmentVolumeAggregate is the per-segment rollup over raw order lines joined
// to segments via customer_id: unit and revenue volume per segment.
type SegmentVolumeAggregate struct {
	Segment          Segment
	OrderLines       int
	TotalQuantity    int64
	TotalSalesAmount float64
}
