package scoring

import (
	"sort"

	"github.com/Jafanakings/RFM-SEGMENTATION/internal/domain"
)

// Score assigns the three quintile scores to every customer summary. The
// whole summary set must be materialized first: quintile boundaries depend on
// the global N and global sort order, so no score is final until every
// customer has been seen.
//
// Each metric is ranked independently:
//   - recency: recencyDays descending, so the stalest fifth gets RScore 1 and
//     the most recent fifth gets RScore 5
//   - frequency: ascending, highest fifth gets FScore 5
//   - monetary: ascending, highest fifth gets MScore 5
//
// Ties on a metric are broken by customer id ascending, making the whole
// pipeline deterministic for any fixed input.
func Score(summaries []domain.CustomerSummary) []domain.RfmScore {
	n := len(summaries)
	if n == 0 {
		return nil
	}

	scores := make([]domain.RfmScore, n)
	for i, s := range summaries {
		scores[i] = domain.RfmScore{
			CustomerID:  s.CustomerID,
			RecencyDays: s.RecencyDays,
			Frequency:   s.Frequency,
			Monetary:    s.Monetary,
		}
	}

	// Recency: larger day counts are staler and rank first (bin 1).
	rank(scores, func(a, b *domain.RfmScore) bool {
		return a.RecencyDays > b.RecencyDays
	}, func(s *domain.RfmScore, bin int) {
		s.RScore = bin
	})

	rank(scores, func(a, b *domain.RfmScore) bool {
		return a.Frequency < b.Frequency
	}, func(s *domain.RfmScore, bin int) {
		s.FScore = bin
	})

	rank(scores, func(a, b *domain.RfmScore) bool {
		return a.Monetary < b.Monetary
	}, func(s *domain.RfmScore, bin int) {
		s.MScore = bin
	})

	return scores
}

// rank sorts the score set by one metric and assigns each entry its quintile
// bin. less orders the metric only; customer id ascending is the fixed
// secondary key.
func rank(scores []domain.RfmScore, less func(a, b *domain.RfmScore) bool, assign func(s *domain.RfmScore, bin int)) {
	n := len(scores)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	sort.Slice(order, func(i, j int) bool {
		a, b := &scores[order[i]], &scores[order[j]]
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		return a.CustomerID < b.CustomerID
	})

	for pos, idx := range order {
		assign(&scores[idx], binForRank(pos+1, n))
	}
}

// binForRank maps a 1-based rank to its quintile bin: ceil(rank * 5 / n).
// Earlier ranks get smaller bins; with n < 5 some bin values never occur.
func binForRank(rank, n int) int {
	return (rank*5 + n - 1) / n
}
