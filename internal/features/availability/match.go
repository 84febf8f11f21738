package availability

import "math"

// MaxSelections is the interest-tag cap per profile; it is also the fixed
// divisor for match scoring so a sparse profile cannot inflate its score.
const MaxSelections = 5

// MatchScore returns a 0-100 compatibility percentage between two
// interest-selection sets.
func MatchScore(selections, otherSelections []string) int {
	if len(selections) == 0 || len(otherSelections) == 0 {
		return 0
	}

	other := make(map[string]struct{}, len(otherSelections))
	for _, s := range otherSelections {
		other[s] = struct{}{}
	}

	common := 0
	seen := make(map[string]struct{}, len(selections))
	for _, s := range selections {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		if _, ok := other[s]; ok {
			common++
		}
	}

	return int(math.Round(float64(common) / MaxSelections * 100))
}
