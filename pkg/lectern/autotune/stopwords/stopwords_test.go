package stopwords

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/lectern/pkg/lectern/analytics"
	"github.com/cognicore/lectern/pkg/lectern/stoplist"
)

func statsOf(bags ...analytics.Bag) analytics.Stats {
	agg := analytics.NewAggregator()
	for _, b := range bags {
		agg.Process(b)
	}
	return agg.Snapshot()
}

func TestAutoTunerRun_Defaults(t *testing.T) {
	stats := statsOf(
		analytics.Bag{"slajd": 3, "pętla": 2},
		analytics.Bag{"slajd": 1, "wykład": 4, "lista": 1},
		analytics.Bag{"slajd": 2, "wykład": 1},
		analytics.Bag{"wykład": 1, "slajd": 1},
		analytics.Bag{"klasa": 1},
	)

	tuner := AutoTuner{Manager: stoplist.NewManager(nil)}
	cands, err := tuner.Run(stats)
	require.NoError(t, err)

	require.Len(t, cands, 1)
	assert.Equal(t, "slajd", cands[0].Token)
	assert.InDelta(t, 80.0, cands[0].DFPercent, 1e-9)
	assert.Equal(t, 7, cands[0].Count)
}

func TestAutoTunerRun_SkipsKnownStopwords(t *testing.T) {
	stats := statsOf(
		analytics.Bag{"slajd": 1, "agenda": 1},
		analytics.Bag{"slajd": 1, "agenda": 2},
		analytics.Bag{"slajd": 1, "agenda": 1},
	)

	tuner := AutoTuner{Manager: stoplist.NewManager([]string{"slajd"})}
	cands, err := tuner.Run(stats)
	require.NoError(t, err)

	require.Len(t, cands, 1)
	assert.Equal(t, "agenda", cands[0].Token)
}

func TestAutoTunerRun_Ordering(t *testing.T) {
	stats := statsOf(
		analytics.Bag{"beta": 1, "alpha": 1, "gamma": 5},
		analytics.Bag{"beta": 1, "alpha": 1, "gamma": 1},
	)

	tuner := AutoTuner{
		Manager:    stoplist.NewManager(nil),
		Thresholds: Thresholds{MinDFPercent: 50, MinDocs: 1},
	}
	cands, err := tuner.Run(stats)
	require.NoError(t, err)

	var tokens []string
	for _, c := range cands {
		tokens = append(tokens, c.Token)
	}
	assert.Equal(t, []string{"gamma", "alpha", "beta"}, tokens)
}

func TestAutoTunerRun_SmallCorpus(t *testing.T) {
	stats := statsOf(analytics.Bag{"slajd": 1}, analytics.Bag{"slajd": 1})

	cands, err := (&AutoTuner{Manager: stoplist.NewManager(nil)}).Run(stats)
	require.NoError(t, err)
	assert.Empty(t, cands)
}

func TestAutoTunerRun_NilManager(t *testing.T) {
	_, err := (&AutoTuner{}).Run(statsOf(analytics.Bag{"a": 1}))
	assert.Error(t, err)
}
