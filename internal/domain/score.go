package domain

// RfmScore holds the three quintile scores for one customer alongside the raw
// metrics they were derived from. Each score is in {1..5}: 5 rewards the most
// recent, most frequent, or highest-spending fifth of the customer base.
type RfmScore struct {
	CustomerID  string
	RecencyDays int
	Frequency   int
	Monetary    float64

	RScore int
	FScore int
	MScore int
}

// CombinationCode concatenates the three scores as decimal digits in R,F,M
// order, e.g. r=4 f=5 m=5 -> 455.
func (s RfmScore) CombinationCode() int {
	return s.RScore*100 + s.FScore*10 + s.MScore
}

// TotalScore is the sum of the three scores, range 3-15.
func (s RfmScore) TotalScore() int {
	return s.RScore + s.FScore + s.MScore
}

// ClassifiedCustomer is the full per-customer RFM view: score, derived code,
// and the segment label assigned from the classification table.
type ClassifiedCustomer struct {
	RfmScore
	TotalScore      int
	CombinationCode int
	Segment         Segment
}
