package analysis

import "inscan/internal/domain"

// CoverageBandFor grades how much of a source document yielded usable text.
// Returns ok=false when no pages were counted, in which case no band applies.
func CoverageBandFor(stats domain.ExtractionStats) (domain.CoverageBand, bool) {
	if stats.TotalPages <= 0 {
		return "", false
	}
	ratio := float64(stats.PagesWithText) / float64(stats.TotalPages)
	switch {
	case ratio >= 0.90:
		return domain.CoverageBandHigh, true
	case ratio >= 0.70:
		return domain.CoverageBandMedium, true
	default:
		return domain.CoverageBandLow, true
	}
}
