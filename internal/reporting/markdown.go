package reporting

import (
	"fmt"
	"strings"
	"time"
)

const dateFormat = "2006-01-02"

// RenderMarkdown renders the report as a Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# RFM Segmentation Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Batch: %s\n\n", r.BatchID))

	// Data Summary
	sb.WriteString("## Data Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Order Lines | %d |\n", r.DataSummary.OrderLines))
	sb.WriteString(fmt.Sprintf("| Customers | %d |\n", r.DataSummary.Customers))
	sb.WriteString(fmt.Sprintf("| Segments | %d |\n", r.DataSummary.Segments))
	sb.WriteString(fmt.Sprintf("| Date Range Start | %s |\n", r.DataSummary.DateRangeStart.Format(dateFormat)))
	sb.WriteString(fmt.Sprintf("| Date Range End | %s |\n", r.DataSummary.DateRangeEnd.Format(dateFormat)))
	sb.WriteString(fmt.Sprintf("| Total Monetary | %.2f |\n", r.DataSummary.TotalMonetary))
	sb.WriteString("\n")

	// Segment Monetary
	sb.WriteString("## Segment Monetary\n\n")
	if len(r.Monetary) > 0 {
		sb.WriteString("| Segment | Customers | Total Monetary | Avg Monetary |\n")
		sb.WriteString("|---------|-----------|----------------|--------------|\n")
		for _, a := range r.Monetary {
			sb.WriteString(fmt.Sprintf("| %s | %d | %.2f | %.2f |\n",
				a.Segment, a.Customers, a.TotalMonetary, a.AverageMonetary))
		}
	} else {
		sb.WriteString("No monetary aggregates available.\n")
	}
	sb.WriteString("\n")

	// Segment Volume
	sb.WriteString("## Segment Volume\n\n")
	if len(r.Volume) > 0 {
		sb.WriteString("| Segment | Order Lines | Total Quantity | Total Sales |\n")
		sb.WriteString("|---------|-------------|----------------|-------------|\n")
		for _, a := range r.Volume {
			sb.WriteString(fmt.Sprintf("| %s | %d | %d | %.2f |\n",
				a.Segment, a.OrderLines, a.TotalQuantity, a.TotalSalesAmount))
		}
	} else {
		sb.WriteString("No volume aggregates available.\n")
	}
	sb.WriteString("\n")

	// Customer Scores
	sb.WriteString("## Customer Scores\n\n")
	if len(r.Scores) > 0 {
		sb.WriteString("| Customer | Recency | Frequency | Monetary | R | F | M | Total | Code | Segment |\n")
		sb.WriteString("|----------|---------|-----------|----------|---|---|---|-------|------|--------|\n")
		for _, s := range r.Scores {
			sb.WriteString(fmt.Sprintf("| %s | %d | %d | %.2f | %d | %d | %d | %d | %d | %s |\n",
				s.CustomerID, s.RecencyDays, s.Frequency, s.Monetary,
				s.RScore, s.FScore, s.MScore, s.TotalScore, s.CombinationCode, s.Segment))
		}
	} else {
		sb.WriteString("No customer scores available.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}
