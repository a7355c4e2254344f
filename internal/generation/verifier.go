package generation

import (
	"regexp"
	"strconv"
)

var (
	reviewBlockRe = regexp.MustCompile(`\[\[\[REVIEW_SCHEME\]\]\]\s*=\s*\{([^}]*)\}`)
	scorePairRe   = regexp.MustCompile(`['"]?([A-Za-z_]+)['"]?\s*:\s*(-?\d+(?:\.\d+)?)`)
)

// extractScore locates the trailing review block in free-form critique
// text and computes the weighted rubric score. A missing or malformed
// block scores 0 and never fails: the penalty drives another attempt
// instead of crashing the workflow.
func extractScore(text string, rubric Rubric) float64 {
	m := reviewBlockRe.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	pairs := scorePairRe.FindAllStringSubmatch(m[1], -1)
	if len(pairs) == 0 {
		return 0
	}
	scores := make(map[string]float64, len(pairs))
	for _, p := range pairs {
		v, err := strconv.ParseFloat(p[2], 64)
		if err != nil {
			return 0
		}
		scores[p[1]] = v
	}
	return rubric.Score(scores)
}

// plateaued reports whether the last three recorded scores are identical,
// meaning further generation attempts are not improving the draft.
func plateaued(scores []float64) bool {
	n := len(scores)
	if n < 3 {
		return false
	}
	return scores[n-1] == scores[n-2] && scores[n-2] == scores[n-3]
}
