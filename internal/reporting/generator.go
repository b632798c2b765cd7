package reporting

import (
	"context"
	"time"

	"github.com/Jafanakings/RFM-SEGMENTATION/internal/domain"
	"github.com/Jafanakings/RFM-SEGMENTATION/internal/idhash"
	"github.com/Jafanakings/RFM-SEGMENTATION/internal/storage"
)

// Generator produces reports from stored data.
type Generator struct {
	orderLineStore  storage.OrderLineStore
	classifiedStore storage.ClassifiedCustomerStore
	aggregateStore  storage.SegmentAggregateStore
	now             func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(
	orderLineStore storage.OrderLineStore,
	classifiedStore storage.ClassifiedCustomerStore,
	aggStore storage.SegmentAggregateStore,
) *Generator {
	return &Generator{
		orderLineStore:  orderLineStore,
		classifiedStore: classifiedStore,
		aggregateStore:  aggStore,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate produces a complete segmentation report.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	lines, err := g.orderLineStore.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	classified, err := g.classifiedStore.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	monetary, err := g.aggregateStore.GetMonetary(ctx)
	if err != nil {
		return nil, err
	}

	volume, err := g.aggregateStore.GetVolume(ctx)
	if err != nil {
		return nil, err
	}

	return &Report{
		GeneratedAt: g.now(),
		BatchID:     idhash.ComputeBatchID(lines),
		DataSummary: generateDataSummary(lines, classified, monetary),
		Scores:      generateScoreRows(classified),
		Monetary:    monetary,
		Volume:      volume,
	}, nil
}

// generateDataSummary computes the batch summary from lines and aggregates.
func generateDataSummary(
	lines []domain.OrderLine,
	classified []domain.ClassifiedCustomer,
	monetary []domain.SegmentMonetaryAggregate,
) DataSummary {
	summary := DataSummary{
		OrderLines: len(lines),
		Customers:  len(classified),
		Segments:   len(monetary),
	}

	if len(lines) > 0 {
		summary.DateRangeStart = lines[0].OrderDate
		summary.DateRangeEnd = lines[0].OrderDate
		for _, l := range lines {
			if l.OrderDate.Before(summary.DateRangeStart) {
				summary.DateRangeStart = l.OrderDate
			}
			if l.OrderDate.After(summary.DateRangeEnd) {
				summary.DateRangeEnd = l.OrderDate
			}
		}
	}

	for _, a := range monetary {
		summary.TotalMonetary += a.TotalMonetary
	}

	return summary
}

// generateScoreRows flattens classified customers into report rows. Input is
// already ordered by customer_id; the order is preserved.
func generateScoreRows(classified []domain.ClassifiedCustomer) []ScoreRow {
	rows := make([]ScoreRow, len(classified))
	for i, c := range classified {
		rows[i] = ScoreRow{
			CustomerID:      c.CustomerID,
			RecencyDays:     c.RecencyDays,
			Frequency:       c.Frequency,
			Monetary:        c.Monetary,
			RScore:          c.RScore,
			FScore:          c.FScore,
			MScore:          c.MScore,
			TotalScore:      c.TotalScore,
			CombinationCode: c.CombinationCode,
			Segment:         c.Segment,
		}
	}
	return rows
}
