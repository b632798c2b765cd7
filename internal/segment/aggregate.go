package segment

import (
	"sort"

	"github.com/Jafanakings/RFM-SEGMENTATION/internal/domain"
)

// AggregateMonetary rolls classified customers up by segment: customer count,
// monetary sum, and per-customer average. Result is ordered by total monetary
// descending, segment name ascending on ties.
func AggregateMonetary(customers []domain.ClassifiedCustomer) []domain.SegmentMonetaryAggregate {
	if len(customers) == 0 {
		return nil
	}

	bysegment := make(map[domain.Segment]*domain.SegmentMonetaryAggregate)
	for _, c := range customers {
		agg, ok := bysegment[c.Segment]
		if !ok {
			agg = &domain.SegmentMonetaryAggregate{Segment: c.Segment}
			bysegment[c.Segment] = agg
		}
		agg.Customers++
		agg.TotalMonetary += c.Monetary
	}

	out := make([]domain.SegmentMonetaryAggregate, 0, len(bysegment))
	for _, agg := range bysegment {
		agg.AverageMonetary = agg.TotalMonetary / float64(agg.Customers)
		out = append(out, *agg)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalMonetary != out[j].TotalMonetary {
			return out[i].TotalMonetary > out[j].TotalMonetary
		}
		return out[i].Segment < out[j].Segment
	})
	return out
}

// AggregateVolume re-joins the original order lines to segments via customer
// id and rolls quantity and sales amount up by segment. Left-join semantics:
// a line whose customer has no classification lands in the UNKNOWN group
// (cannot happen in a closed pipeline run, but defined). Result is ordered by
// total sales amount descending, segment name ascending on ties.
func AggregateVolume(lines []domain.OrderLine, customers []domain.ClassifiedCustomer) []domain.SegmentVolumeAggregate {
	if len(lines) == 0 {
		return nil
	}

	segmentOf := make(map[string]domain.Segment, len(customers))
	for _, c := range customers {
		segmentOf[c.CustomerID] = c.Segment
	}

	bysegment := make(map[domain.Segment]*domain.SegmentVolumeAggregate)
	for _, l := range lines {
		seg, ok := segmentOf[l.CustomerID]
		if !ok {
			seg = domain.SegmentUnknown
		}
		agg, exists := bysegment[seg]
		if !exists {
			agg = &domain.SegmentVolumeAggregate{Segment: seg}
			bysegment[seg] = agg
		}
		agg.OrderLines++
		agg.TotalQuantity += l.Quantity
		agg.TotalSalesAmount += l.SalesAmount
	}

	out := make([]domain.SegmentVolumeAggregate, 0, len(bysegment))
	for _, agg := range bysegment {
		out = append(out, *agg)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalSalesAmount != out[j].TotalSalesAmount {
			return out[i].TotalSalesAmount > out[j].TotalSalesAmount
		}
		return out[i].Segment < out[j].Segment
	})
	return out
}
