package namematch

import (
	"strings"

	"github.com/agext/levenshtein"
)

// AgreementThreshold is the minimum pairwise score at which two pages are
// taken to name the same person.
const AgreementThreshold = 0.6

// compoundCutoff switches the blend: when the space-free forms of the two
// names are equal or near-equal, the compound signal dominates the score.
// That is what makes "ramkumar dubey" agree with "ram kumar dubey" even
// though they share only one token.
const compoundCutoff = 0.8

// Similarity scores two normalized names in [0,1]. It is symmetric.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	ta, tb := strings.Fields(a), strings.Fields(b)
	overlap := overlapCoefficient(ta, tb)
	jaccard := jaccardIndex(ta, tb)
	edit := levenshtein.Similarity(a, b, levenshtein.NewParams())
	compound := compoundScore(a, b)

	if compound >= compoundCutoff {
		return 0.6*compound + 0.2*overlap + 0.1*jaccard + 0.1*edit
	}
	return 0.4*overlap + 0.3*jaccard + 0.2*edit + 0.1*compound
}

// overlapCoefficient is |A∩B| over the smaller set's size.
func overlapCoefficient(a, b []string) float64 {
	inter := intersection(a, b)
	min := len(a)
	if len(b) < min {
		min = len(b)
	}
	if min == 0 {
		return 0
	}
	return float64(inter) / float64(min)
}

func jaccardIndex(a, b []string) float64 {
	inter := intersection(a, b)
	union := len(tokenSet(a)) + len(tokenSet(b)) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// compoundScore compares the two names with all spaces removed. Equal
// space-free forms score 1; when one form is a substring of the other the
// score is the ratio of their lengths; otherwise 0.
func compoundScore(a, b string) float64 {
	na := strings.ReplaceAll(a, " ", "")
	nb := strings.ReplaceAll(b, " ", "")
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		min, max := len(na), len(nb)
		if min > max {
			min, max = max, min
		}
		return float64(min) / float64(max)
	}
	return 0
}

func intersection(a, b []string) int {
	set := tokenSet(a)
	n := 0
	for tok := range tokenSet(b) {
		if _, ok := set[tok]; ok {
			n++
		}
	}
	return n
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
