// Package groundtruth maps free-text historical vote strings onto the
// canonical candidate labels used by the metrics engine. Rows whose
// text marks a missing, refused or inapplicable answer are reported as
// absent and excluded from metrics, never coerced to a default label.
package groundtruth

import "strings"

// missingMarkers are substrings that mark a row as having no usable
// ground truth, regardless of year.
var missingMarkers = []string{
	"missing, no vote for pres",
	"no vote for pres",
	"no vote for president",
	"did not vote for pres",
	"did not report vote for pres",
	"did not report vote",
	"did not report",
	"post/no post",
	"no post-election data",
	"inapplicable",
	"refused",
}

// Normalize maps a raw vote string to a canonical label for a study
// year. The second return is false when the row should be treated as
// absent. Total and side-effect-free: unknown years and unrecognized
// text simply come back absent.
func Normalize(raw string, year int) (string, bool) {
	rv := strings.ToLower(strings.TrimSpace(raw))
	if rv == "" {
		return "", false
	}

	for _, m := range missingMarkers {
		if strings.Contains(rv, m) {
			return "", false
		}
	}

	switch year {
	case 2012:
		switch {
		case strings.Contains(rv, "obama"):
			return "obama", true
		case strings.Contains(rv, "romney"):
			return "romney", true
		case strings.HasPrefix(rv, "other"):
			return "other", true
		}
	case 2016:
		switch {
		case strings.Contains(rv, "donald") && strings.Contains(rv, "trump"):
			return "trump", true
		case strings.Contains(rv, "hillary") && strings.Contains(rv, "clinton"):
			return "clinton", true
		case strings.Contains(rv, "jill") && strings.Contains(rv, "stein"):
			return "other", true
		case strings.Contains(rv, "gary") && strings.Contains(rv, "johnson"):
			return "other", true
		case strings.Contains(rv, "other candidate"):
			return "other", true
		}
	case 2020:
		switch {
		case strings.Contains(rv, "donald") && strings.Contains(rv, "trump"):
			return "trump", true
		case strings.Contains(rv, "joe") && strings.Contains(rv, "biden"):
			return "biden", true
		case strings.Contains(rv, "jo jorgensen"):
			return "other", true
		case strings.Contains(rv, "howie") && strings.Contains(rv, "hawkins"):
			return "other", true
		}
	}
	return "", false
}
