package summarize

import (
	"math"
	"sort"
	"time"

	"github.com/Jafanakings/RFM-SEGMENTATION/internal/domain"
)

// Customers groups order lines by customer and derives the three RFM base
// metrics per group. Recency is measured against the maximum order date
// observed across the whole batch, never the wall clock. Empty input yields
// an empty result, no error. Output is sorted by customer id for
// reproducible downstream processing.
func Customers(lines []domain.OrderLine) []domain.CustomerSummary {
	if len(lines) == 0 {
		return nil
	}

	maxDate, _ := MaxOrderDate(lines)

	type group struct {
		lastOrderDate time.Time
		orderIDs      map[string]struct{}
		salesTotal    float64
	}

	groups := make(map[string]*group)
	for _, l := range lines {
		g, ok := groups[l.CustomerID]
		if !ok {
			g = &group{orderIDs: make(map[string]struct{})}
			groups[l.CustomerID] = g
		}
		if l.OrderDate.After(g.lastOrderDate) {
			g.lastOrderDate = l.OrderDate
		}
		g.orderIDs[l.OrderID] = struct{}{}
		g.salesTotal += l.SalesAmount
	}

	summaries := make([]domain.CustomerSummary, 0, len(groups))
	for customerID, g := range groups {
		summaries = append(summaries, domain.CustomerSummary{
			CustomerID:    customerID,
			LastOrderDate: g.lastOrderDate,
			RecencyDays:   daysBetween(g.lastOrderDate, maxDate),
			Frequency:     len(g.orderIDs),
			Monetary:      roundHalfAwayFromZero(g.salesTotal),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CustomerID < summaries[j].CustomerID
	})
	return summaries
}

// MaxOrderDate returns the latest order date in the batch. The second return
// is false for an empty batch.
func MaxOrderDate(lines []domain.OrderLine) (time.Time, bool) {
	if len(lines) == 0 {
		return time.Time{}, false
	}
	max := lines[0].OrderDate
	for _, l := range lines[1:] {
		if l.OrderDate.After(max) {
			max = l.OrderDate
		}
	}
	return max, true
}

// daysBetween returns the whole-day count from earlier to later. Order dates
// are midnight-UTC so the division is exact.
func daysBetween(earlier, later time.Time) int {
	return int(later.Sub(earlier) / (24 * time.Hour))
}

// roundHalfAwayFromZero rounds to 0 decimal places with halves moving away
// from zero (2.5 -> 3, -2.5 -> -3), matching the source's ROUND semantics.
func roundHalfAwayFromZero(x float64) float64 {
	return math.Round(x)
}
