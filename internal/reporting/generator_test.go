package reporting

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Jafanakings/RFM-SEGMENTATION/internal/domain"
	"github.com/Jafanakings/RFM-SEGMENTATION/internal/storage/memory"
)

func seededGenerator(t *testing.T) *Generator {
	t.Helper()
	ctx := context.Background()

	lines := memory.NewOrderLineStore()
	classified := memory.NewClassifiedCustomerStore()
	aggs := memory.NewSegmentAggregateStore()

	err := lines.InsertBulk(ctx, []domain.OrderLine{
		{CustomerID: "C1", OrderID: "O1", OrderDate: time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC), SalesAmount: 100, Quantity: 2},
		{CustomerID: "C2", OrderID: "O2", OrderDate: time.Date(2023, 3, 5, 0, 0, 0, 0, time.UTC), SalesAmount: 250, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("insert lines: %v", err)
	}

	err = classified.InsertBulk(ctx, []domain.ClassifiedCustomer{
		{
			RfmScore:        domain.RfmScore{CustomerID: "C1", RecencyDays: 54, Frequency: 1, Monetary: 100, RScore: 1, FScore: 1, MScore: 1},
			TotalScore:      3,
			CombinationCode: 111,
			Segment:         domain.SegmentAboutToSleep,
		},
		{
			RfmScore:        domain.RfmScore{CustomerID: "C2", RecencyDays: 0, Frequency: 1, Monetary: 250, RScore: 5, FScore: 5, MScore: 5},
			TotalScore:      15,
			CombinationCode: 555,
			Segment:         domain.SegmentChampions,
		},
	})
	if err != nil {
		t.Fatalf("insert classified: %v", err)
	}

	err = aggs.InsertMonetary(ctx, []domain.SegmentMonetaryAggregate{
		{Segment: domain.SegmentChampions, Customers: 1, TotalMonetary: 250, AverageMonetary: 250},
		{Segment: domain.SegmentAboutToSleep, Customers: 1, TotalMonetary: 100, AverageMonetary: 100},
	})
	if err != nil {
		t.Fatalf("insert monetary: %v", err)
	}
	err = aggs.InsertVolume(ctx, []domain.SegmentVolumeAggregate{
		{Segment: domain.SegmentChampions, OrderLines: 1, TotalQuantity: 1, TotalSalesAmount: 250},
		{Segment: domain.SegmentAboutToSleep, OrderLines: 1, TotalQuantity: 2, TotalSalesAmount: 100},
	})
	if err != nil {
		t.Fatalf("insert volume: %v", err)
	}

	fixed := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	return NewGenerator(lines, classified, aggs).WithClock(func() time.Time { return fixed })
}

func TestGenerate(t *testing.T) {
	g := seededGenerator(t)

	report, err := g.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if report.GeneratedAt != time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC) {
		t.Errorf("clock not applied: %v", report.GeneratedAt)
	}
	if report.BatchID == "" {
		t.Error("batch ID missing")
	}
	if report.DataSummary.OrderLines != 2 || report.DataSummary.Customers != 2 || report.DataSummary.Segments != 2 {
		t.Errorf("unexpected data summary: %+v", report.DataSummary)
	}
	if !report.DataSummary.DateRangeStart.Equal(time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("wrong date range start: %v", report.DataSummary.DateRangeStart)
	}
	if !report.DataSummary.DateRangeEnd.Equal(time.Date(2023, 3, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("wrong date range end: %v", report.DataSummary.DateRangeEnd)
	}
	if report.DataSummary.TotalMonetary != 350 {
		t.Errorf("wrong total monetary: %v", report.DataSummary.TotalMonetary)
	}
	if len(report.Scores) != 2 || report.Scores[0].CustomerID != "C1" {
		t.Errorf("unexpected score rows: %+v", report.Scores)
	}
	// Monetary aggregates keep store order: total monetary descending.
	if report.Monetary[0].Segment != domain.SegmentChampions {
		t.Errorf("monetary aggregates out of order: %+v", report.Monetary)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	g := seededGenerator(t)
	ctx := context.Background()

	first, err := g.Generate(ctx)
	if err != nil {
		t.Fatalf("first Generate failed: %v", err)
	}
	second, err := g.Generate(ctx)
	if err != nil {
		t.Fatalf("second Generate failed: %v", err)
	}

	if RenderMarkdown(first) != RenderMarkdown(second) {
		t.Error("markdown output differs between identical runs")
	}
}

func TestRenderMarkdown(t *testing.T) {
	g := seededGenerator(t)

	report, err := g.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	md := RenderMarkdown(report)
	for _, want := range []string{
		"# RFM Segmentation Report",
		"## Data Summary",
		"## Segment Monetary",
		"## Segment Volume",
		"## Customer Scores",
		"| Champions | 1 | 250.00 | 250.00 |",
		"| C2 | 0 | 1 | 250.00 | 5 | 5 | 5 | 15 | 555 | Champions |",
		"Generated: 2023-06-01T12:00:00Z",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestRenderMarkdown_EmptyReport(t *testing.T) {
	md := RenderMarkdown(&Report{GeneratedAt: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)})
	for _, want := range []string{
		"No monetary aggregates available.",
		"No volume aggregates available.",
		"No customer scores available.",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestRenderCSVs(t *testing.T) {
	g := seededGenerator(t)

	report, err := g.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	scores := RenderScoresCSV(report.Scores)
	if !strings.HasPrefix(scores, "customer_id,recency_days,frequency,monetary,r_score,f_score,m_score,total_score,combination_code,segment\n") {
		t.Errorf("bad scores header:\n%s", scores)
	}
	if !strings.Contains(scores, "C2,0,1,250.00,5,5,5,15,555,Champions\n") {
		t.Errorf("missing score row:\n%s", scores)
	}

	monetary := RenderMonetaryCSV(report.Monetary)
	if !strings.Contains(monetary, "Champions,1,250.00,250.00\n") {
		t.Errorf("missing monetary row:\n%s", monetary)
	}

	volume := RenderVolumeCSV(report.Volume)
	if !strings.Contains(volume, "About to Sleep,1,2,100.00\n") {
		t.Errorf("missing volume row:\n%s", volume)
	}
}
