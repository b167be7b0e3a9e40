package match

import "sort"

// DefaultMinScore is the minimum normalized similarity for a suggestion.
const DefaultMinScore = 0.6

// Suggestion is a known name ranked against an unknown one.
type Suggestion struct {
	Name  string
	Score float64
}

// Rank scores every known name against name and returns them best first.
// Ties keep the order of known so the result is deterministic.
func Rank(name string, known []string) []Suggestion {
	out := make([]Suggestion, 0, len(known))
	for _, k := range known {
		out = append(out, Suggestion{Name: k, Score: Similarity(name, k)})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	return out
}

// Suggest returns the closest known name when it scores at least DefaultMinScore.
func Suggest(name string, known []string) (string, bool) {
	ranked := Rank(name, known)
	if len(ranked) == 0 || ranked[0].Score < DefaultMinScore {
		return "", false
	}

	return ranked[0].Name, true
}
