package reporting

import (
	"fmt"
	"strings"

	"github.com/Jafanakings/RFM-SEGMENTATION/internal/domain"
)

// RenderScoresCSV renders per-customer score rows as a CSV string.
func RenderScoresCSV(scores []ScoreRow) string {
	var sb strings.Builder

	sb.WriteString("customer_id,recency_days,frequency,monetary,")
	sb.WriteString("r_score,f_score,m_score,total_score,combination_code,segment\n")

	for _, s := range scores {
		sb.WriteString(fmt.Sprintf("%s,%d,%d,%.2f,%d,%d,%d,%d,%d,%s\n",
			s.CustomerID,
			s.RecencyDays,
			s.Frequency,
			s.Monetary,
			s.RScore,
			s.FScore,
			s.MScore,
			s.TotalScore,
			s.CombinationCode,
			s.Segment,
		))
	}

	return sb.String()
}

// RenderMonetaryCSV renders segment monetary aggregates as a CSV string.
func RenderMonetaryCSV(aggs []domain.SegmentMonetaryAggregate) string {
	var sb strings.Builder

	sb.WriteString("segment,customers,total_monetary,average_monetary\n")
	for _, a := range aggs {
		sb.WriteString(fmt.Sprintf("%s,%d,%.2f,%.2f\n",
			a.Segment, a.Customers, a.TotalMonetary, a.AverageMonetary))
	}

	return sb.String()
}

// RenderVolumeCSV renders segment volume aggregates as a CSV string.
func RenderVolumeCSV(aggs []domain.SegmentVolumeAggregate) string {
	var sb strings.Builder

	sb.WriteString("segment,order_lines,total_quantity,total_sales_amount\n")
	for _, a := range aggs {
		sb.WriteString(fmt.Sprintf("%s,%d,%d,%.2f\n",
			a.Segment, a.OrderLines, a.TotalQuantity, a.TotalSalesAmount))
	}

	return sb.String()
}
