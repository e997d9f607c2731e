package match

import "fmt"

// MinSimilarity is the normalized similarity a candidate needs to be
// suggested.
const MinSimilarity = 0.6

// Suggest returns the candidate name is most likely a misspelling of.
// Candidates equal to name are skipped. Ties go to the earlier candidate.
func Suggest(name string, candidates []string) (string, bool) {
	norm := NormalizeIdent(name)

	var (
		best      string
		bestScore float64
	)

	for _, c := range candidates {
		if c == name {
			continue
		}

		score := Similarity(norm, NormalizeIdent(c))
		if score >= MinSimilarity && score > bestScore {
			best, bestScore = c, score
		}
	}

	return best, bestScore > 0
}

// DidYouMean renders the suggestion for name as a message suffix, e.g.
// "; did you mean `Velocity`?", or "" when nothing is close.
func DidYouMean(name string, candidates []string) string {
	s, ok := Suggest(name, candidates)
	if !ok {
		return ""
	}

	return fmt.Sprintf("; did you mean `%s`?", s)
}
