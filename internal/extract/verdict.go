package extract

import "strings"

// Markers lists the substrings that decide a yes/no verdict. Matching is a
// case-insensitive substring search; affirmative markers are checked first.
type Markers struct {
	Affirmative []string
	Negative    []string
	// DefaultNegative treats text without an affirmative marker as "no".
	DefaultNegative bool
}

// ExtractVerdict returns true for an affirmative answer and false for a
// negative one.
func ExtractVerdict(answer string, markers Markers) (bool, error) {
	lower := strings.ToLower(answer)
	for _, marker := range markers.Affirmative {
		if strings.Contains(lower, marker) {
			return true, nil
		}
	}
	if markers.DefaultNegative {
		return false, nil
	}
	for _, marker := range markers.Negative {
		if strings.Contains(lower, marker) {
			return false, nil
		}
	}
	return false, unparseable("verdict", "no yes/no marker")
}
