package rank

import (
	"math"

	"github.com/cognicore/lectern/pkg/lectern/analytics"
)

const (
	// significantCount filters single-occurrence noise out of the reference.
	significantCount = 2
	// minTermLen is the rune length a term needs to count for coverage.
	minTermLen = 3
)

// Similarity holds both comparison metrics as percentages in [0, 100].
type Similarity struct {
	Coverage float64
	Cosine   float64
}

// Compare computes coverage and cosine similarity of comparator against reference.
func Compare(reference, comparator analytics.Bag) Similarity {
	return Similarity{
		Coverage: Coverage(reference, comparator),
		Cosine:   Cosine(reference, comparator),
	}
}

// Coverage returns the percentage of the reference's significant terms that
// occur in comparator. Significant terms are those with count >= 2 and at
// least three letters; when there are none, every term of three letters or
// more counts. It is asymmetric: it asks whether comparator has what
// reference needs.
func Coverage(reference, comparator analytics.Bag) float64 {
	testSet := reference.Vocabulary(significantCount, minTermLen)
	if len(testSet) == 0 {
		testSet = reference.Vocabulary(1, minTermLen)
	}
	if len(testSet) == 0 {
		return 0
	}

	// testSet terms already pass the length rule.
	hits := 0
	for tok := range testSet {
		if comparator.Has(tok) {
			hits++
		}
	}
	return 100 * float64(hits) / float64(len(testSet))
}

// Cosine returns the cosine similarity of the two bags as count vectors,
// scaled to a percentage. Empty bags or zero norms give 0.
func Cosine(a, b analytics.Bag) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	var dot float64
	for tok, cs := range small {
		if cl, ok := large[tok]; ok {
			dot += float64(cs) * float64(cl)
		}
	}

	na, nb := norm(a), norm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	return clampPercent(dot / (na * nb) * 100)
}

func norm(b analytics.Bag) float64 {
	var sum float64
	for _, c := range b {
		sum += float64(c) * float64(c)
	}
	return math.Sqrt(sum)
}

// clampPercent absorbs float rounding such as 100.00000000000001.
func clampPercent(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
