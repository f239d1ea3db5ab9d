package rank

import (
	"cmp"
	"slices"
	"unicode/utf8"

	"github.com/cognicore/lectern/pkg/lectern/analytics"
)

// Defaults for keyword and missing-term lists.
const (
	DefaultTopKeywords  = 50
	DefaultMissingLimit = 60
	DefaultMinTokenLen  = 3
)

// DocScore is one row of the per-document ranking.
type DocScore struct {
	Name       string
	Similarity Similarity
	TokenTotal int
}

// RankDocuments scores every document against reference and orders the
// result by coverage desc, cosine desc, then name asc.
func RankDocuments(reference analytics.Bag, docs []analytics.Document) []DocScore {
	scores := make([]DocScore, 0, len(docs))
	for _, d := range docs {
		scores = append(scores, DocScore{
			Name:       d.Name,
			Similarity: Compare(reference, d.Tokens),
			TokenTotal: d.TokenTotal(),
		})
	}
	SortScores(scores)
	return scores
}

// SortScores applies the ranking order in place.
func SortScores(scores []DocScore) {
	slices.SortStableFunc(scores, compareScores)
}

func compareScores(a, b DocScore) int {
	if c := cmp.Compare(b.Similarity.Coverage, a.Similarity.Coverage); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Similarity.Cosine, a.Similarity.Cosine); c != 0 {
		return c
	}
	return cmp.Compare(a.Name, b.Name)
}

// TopKeywords returns up to k terms of at least minLen letters, by count
// desc then token asc. k <= 0 returns all of them.
func TopKeywords(b analytics.Bag, k, minLen int) []analytics.TermCount {
	terms := b.Filter(func(tok string, _ int) bool {
		return utf8.RuneCountInString(tok) >= minLen
	})
	if k > 0 && len(terms) > k {
		terms = terms[:k]
	}
	return terms
}

// Missing returns the reference terms of at least three letters that the
// corpus vocabulary lacks, by count desc then token asc.
func Missing(reference, corpus analytics.Bag) []analytics.TermCount {
	return reference.Filter(func(tok string, _ int) bool {
		return !corpus.Has(tok) && utf8.RuneCountInString(tok) >= minTermLen
	})
}
