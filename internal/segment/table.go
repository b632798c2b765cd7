package segment

import "github.com/Jafanakings/RFM-SEGMENTATION/internal/domain"

// The classification table is hand-curated business judgment, not a derivable
// formula: it deliberately covers only part of the 125 possible codes, and
// everything else falls through to OTHER. Keep the code lists verbatim.
var segmentCodes = map[domain.Segment][]int{
	domain.SegmentChampions: {
		455, 542, 544, 552, 553, 452, 545, 554, 555,
	},
	domain.SegmentLoyalCustomers: {
		344, 345, 353, 354, 355, 443, 451, 342, 351, 352,
		441, 442, 444, 445, 453, 454, 541, 543, 515, 551,
	},
	domain.SegmentPotentialLoyalists: {
		513, 413, 511, 411, 512, 341, 412, 343, 514,
	},
	domain.SegmentPromisingCustomers: {
		414, 415, 214, 211, 212, 213, 241, 251, 312, 314,
		311, 313, 315, 243, 245, 252, 253, 255, 242, 244, 254,
	},
	domain.SegmentNeedsAttention: {
		141, 142, 143, 144, 151, 152, 155, 145, 153, 154, 215,
	},
	domain.SegmentAboutToSleep: {
		113, 111, 112, 114, 115,
	},
}

// codeToSegment is the flat lookup built once at process start.
var codeToSegment = buildTable()

func buildTable() map[int]domain.Segment {
	table := make(map[int]domain.Segment)
	for segment, codes := range segmentCodes {
		for _, code := range codes {
			table[code] = segment
		}
	}
	return table
}

// TableCodes returns every combination code present in the classification
// table with its segment. Exposed so the full table stays separately
// auditable and testable from the ranking logic.
func TableCodes() map[int]domain.Segment {
	out := make(map[int]domain.Segment, len(codeToSegment))
	for code, seg := range codeToSegment {
		out[code] = seg
	}
	return out
}
