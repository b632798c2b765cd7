package segment

import "github.com/Jafanakings/RFM-SEGMENTATION/internal/domain"

// Classify maps a combination code to its segment. Codes absent from the
// table resolve to OTHER; that is the defined fallback, not an error.
func Classify(combinationCode int) domain.Segment {
	if seg, ok := codeToSegment[combinationCode]; ok {
		return seg
	}
	return domain.SegmentOther
}

// ClassifyAll derives the full per-customer RFM view from a scored batch:
// combination code, total score, and segment label per customer. Order of
// the input is preserved.
func ClassifyAll(scores []domain.RfmScore) []domain.ClassifiedCustomer {
	if len(scores) == 0 {
		return nil
	}

	classified := make([]domain.ClassifiedCustomer, len(scores))
	for i, s := range scores {
		code := s.CombinationCode()
		classified[i] = domain.ClassifiedCustomer{
			RfmScore:        s,
			TotalScore:      s.TotalScore(),
			CombinationCode: code,
			Segment:         Classify(code),
		}
	}
	return classified
}
