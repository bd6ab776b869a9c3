package titles

import (
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
)

// prefixBonus lifts candidates that start with the query, which is what
// autocomplete users expect to see first.
const prefixBonus = 0.15

// Match is one ranked candidate.
type Match struct {
	Index int     // position in the candidate slice
	Title string  // original candidate title
	Score float64 // similarity in [0, 1+prefixBonus]
}

// Rank scores candidates against query with Jaro-Winkler similarity on the
// cleaned forms and returns at most limit matches, best first. Candidates with
// a score below minScore are dropped. limit <= 0 returns every match.
func Rank(query string, candidates []string, limit int, minScore float64) []Match {
	q := CleanTitle(query)
	if q == "" {
		return nil
	}

	qLen := len([]rune(q))
	matches := make([]Match, 0, len(candidates))
	for i, c := range candidates {
		cleaned := CleanTitle(c)
		if cleaned == "" {
			continue
		}
		// Compare against the candidate prefix of the same length so a short
		// query is not penalised for the rest of a long title.
		target := cleaned
		if r := []rune(target); len(r) > qLen {
			target = string(r[:qLen])
		}
		s := float64(edlib.JaroWinklerSimilarity(q, target))
		if strings.HasPrefix(cleaned, q) {
			s += prefixBonus
		}
		if s < minScore {
			continue
		}
		matches = append(matches, Match{Index: i, Title: c, Score: s})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
