package stopwords

import (
	"cmp"
	"errors"
	"slices"

	"github.com/cognicore/lectern/pkg/lectern/analytics"
	"github.com/cognicore/lectern/pkg/lectern/stoplist"
)

// Candidate is a token frequent enough across the corpus to be noise.
type Candidate struct {
	Token     string
	DFPercent float64 // share of corpus documents containing the token
	Count     int     // total occurrences across the corpus
}

// Thresholds bound which tokens are suggested.
type Thresholds struct {
	MinDFPercent float64
	MinDocs      int // corpora smaller than this produce no suggestions
}

// DefaultThresholds flags tokens present in at least 80% of three or more documents.
func DefaultThresholds() Thresholds {
	return Thresholds{MinDFPercent: 80, MinDocs: 3}
}

// AutoTuner produces ranked stopword suggestions from corpus statistics.
type AutoTuner struct {
	Manager    *stoplist.Manager
	Thresholds Thresholds
}

// Run returns tokens of stats that are not stopwords yet and pass the
// thresholds, by document share desc, then count desc, then token asc.
func (t *AutoTuner) Run(stats analytics.Stats) ([]Candidate, error) {
	if t.Manager == nil {
		return nil, errors.New("stopwords autotune: nil manager")
	}
	th := t.thresholdsOrDefault()
	if stats.TotalDocs == 0 || stats.TotalDocs < th.MinDocs {
		return nil, nil
	}

	var out []Candidate
	for tok, df := range stats.DocFreq {
		if t.Manager.IsStop(tok) {
			continue
		}
		pct := 100 * float64(df) / float64(stats.TotalDocs)
		if pct < th.MinDFPercent {
			continue
		}
		out = append(out, Candidate{Token: tok, DFPercent: pct, Count: stats.Counts[tok]})
	}

	slices.SortFunc(out, func(a, b Candidate) int {
		if c := cmp.Compare(b.DFPercent, a.DFPercent); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Token, b.Token)
	})
	return out, nil
}

func (t *AutoTuner) thresholdsOrDefault() Thresholds {
	if t.Thresholds == (Thresholds{}) {
		return DefaultThresholds()
	}
	return t.Thresholds
}
