package reporting

import (
	"time"

	"github.com/Jafanakings/RFM-SEGMENTATION/internal/domain"
)

// Report is the complete segmentation report assembled from the stored
// derived views.
type Report struct {
	GeneratedAt time.Time
	BatchID     string

	DataSummary DataSummary
	Scores      []ScoreRow
	Monetary    []domain.SegmentMonetaryAggregate
	Volume      []domain.SegmentVolumeAggregate
}

// DataSummary describes the scored batch at a glance.
type DataSummary struct {
	OrderLines     int
	Customers      int
	Segments       int
	DateRangeStart time.Time // earliest order date in the batch
	DateRangeEnd   time.Time // latest order date; recency is relative to this
	TotalMonetary  float64
}

// ScoreRow is one customer's line in the per-customer score table.
type ScoreRow struct {
	CustomerID      string
	RecencyDays     int
	Frequency       int
	Monetary        float64
	RScore          int
	FScore          int
	MScore          int
	TotalScore      int
	CombinationCode int
	Segment         domain.Segment
}
