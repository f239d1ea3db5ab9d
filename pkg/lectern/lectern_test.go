package lectern

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/lectern/pkg/lectern/autotune/stopwords"
	"github.com/cognicore/lectern/pkg/lectern/extract"
	"github.com/cognicore/lectern/pkg/lectern/internalerr"
	"github.com/cognicore/lectern/pkg/lectern/store/memstore"
)

var txtPattern = Pattern{Prefix: "W", MaxDigits: 2, Extension: ".txt"}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func courseDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"test.txt":  "Pętla pętla, lista lista; funkcja i wyjątek.",
		"W1.txt":    "pętla klasa",
		"W2.txt":    "Pętla\flista\ffunkcja",
		"W10.txt":   "obiekty",
		"W100.txt":  "pętla lista funkcja wyjątek",
		"notes.txt": "wyjątek",
	})
	return dir
}

func newEngine(dir string, opts Options) *Lectern {
	opts.Dir = dir
	if opts.Reference == "" {
		opts.Reference = "test.txt"
	}
	opts.Pattern = txtPattern
	return New(opts)
}

func TestAnalyzeEndToEnd(t *testing.T) {
	dir := courseDir(t)

	res, err := newEngine(dir, Options{}).Analyze(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Skipped)

	rep := res.Report
	assert.Equal(t, "W1–W10", rep.CorpusLabel)
	assert.Equal(t, "test.txt", rep.ReferenceName)
	assert.Equal(t, 6, rep.ReferenceTokens)
	assert.Equal(t, 3, rep.CorpusFiles)
	assert.Equal(t, 6, rep.CorpusTokens)
	assert.InDelta(t, 100.0, rep.Global.Coverage, 1e-9)
	assert.Greater(t, rep.Global.Cosine, 0.0)

	require.Len(t, rep.Ranking, 3)
	assert.Equal(t, "W2.txt", rep.Ranking[0].Name)
	assert.InDelta(t, 100.0, rep.Ranking[0].Similarity.Coverage, 1e-9)
	assert.Equal(t, 3, rep.Ranking[0].TokenTotal)
	assert.Equal(t, "W1.txt", rep.Ranking[1].Name)
	assert.InDelta(t, 50.0, rep.Ranking[1].Similarity.Coverage, 1e-9)
	assert.Equal(t, "W10.txt", rep.Ranking[2].Name)
	assert.Zero(t, rep.Ranking[2].Similarity.Coverage)
	assert.Zero(t, rep.Ranking[2].Similarity.Cosine)

	require.Len(t, rep.Keywords, 4)
	assert.Equal(t, "lista", rep.Keywords[0].Token)
	assert.Equal(t, 2, rep.Keywords[0].Count)
	assert.Equal(t, "pętla", rep.Keywords[1].Token)

	require.Len(t, rep.Missing, 1)
	assert.Equal(t, "wyjątek", rep.Missing[0].Token)
}

func TestAnalyzeMissingReference(t *testing.T) {
	dir := courseDir(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "test.txt")))

	_, err := newEngine(dir, Options{}).Analyze(context.Background())
	assert.ErrorIs(t, err, internalerr.ErrMissingInput)

	var mie *internalerr.MissingInputError
	require.True(t, errors.As(err, &mie))
	assert.Equal(t, filepath.Join(dir, "test.txt"), mie.Path)
}

func TestAnalyzeEmptyCorpus(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"test.txt": "pętla pętla"})

	_, err := newEngine(dir, Options{}).Analyze(context.Background())
	assert.ErrorIs(t, err, internalerr.ErrMissingInput)
}

func TestAnalyzeUnreadableDocumentIsFatalByDefault(t *testing.T) {
	dir := courseDir(t)
	writeFiles(t, dir, map[string]string{"W3.txt": "broken \xff\xfe"})

	_, err := newEngine(dir, Options{}).Analyze(context.Background())
	assert.ErrorIs(t, err, internalerr.ErrExtraction)
}

func TestAnalyzeSkipUnreadable(t *testing.T) {
	dir := courseDir(t)
	writeFiles(t, dir, map[string]string{"W3.txt": "broken \xff\xfe"})

	for _, workers := range []int{1, 3} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			res, err := newEngine(dir, Options{SkipUnreadable: true, Workers: workers}).Analyze(context.Background())
			require.NoError(t, err)
			assert.Equal(t, []string{"W3.txt"}, res.Skipped)
			assert.Equal(t, 3, res.Report.CorpusFiles)
		})
	}
}

func TestAnalyzeUnreadableReferenceAlwaysFatal(t *testing.T) {
	dir := courseDir(t)
	writeFiles(t, dir, map[string]string{"test.txt": "\xff\xfe"})

	_, err := newEngine(dir, Options{SkipUnreadable: true}).Analyze(context.Background())
	assert.ErrorIs(t, err, internalerr.ErrExtraction)
}

func TestAnalyzeAllCorpusSkipped(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"test.txt": "pętla pętla",
		"W1.txt":   "\xff",
		"W2.txt":   "\xfe",
	})

	_, err := newEngine(dir, Options{SkipUnreadable: true}).Analyze(context.Background())
	assert.ErrorIs(t, err, internalerr.ErrMissingInput)
}

func TestAnalyzeParallelMatchesSequential(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{"test.txt": "zmienna zmienna pętla pętla lista funkcja klasa obiekt moduł"}
	words := []string{"zmienna", "pętla", "lista", "funkcja", "klasa", "obiekt", "moduł", "słownik"}
	for i := 1; i <= 15; i++ {
		var body string
		for j := 0; j < i; j++ {
			body += words[(i+j)%len(words)] + " "
		}
		files[fmt.Sprintf("W%d.txt", i)] = body
	}
	writeFiles(t, dir, files)

	seq, err := newEngine(dir, Options{Workers: 1}).Analyze(context.Background())
	require.NoError(t, err)
	par, err := newEngine(dir, Options{Workers: 6}).Analyze(context.Background())
	require.NoError(t, err)

	assert.Equal(t, seq.Report.Markdown(), par.Report.Markdown())
	assert.Equal(t, "W1–W15", par.Report.CorpusLabel)
}

func TestAnalyzeReferenceNotInCorpus(t *testing.T) {
	dir := courseDir(t)

	res, err := newEngine(dir, Options{Reference: "W1.txt"}).Analyze(context.Background())
	require.NoError(t, err)

	for _, s := range res.Report.Ranking {
		assert.NotEqual(t, "W1.txt", s.Name)
	}
	assert.Equal(t, "W2–W10", res.Report.CorpusLabel)
}

func TestAnalyzeUsesExtractionCache(t *testing.T) {
	dir := courseDir(t)
	cache := memstore.New()
	src := extract.NewSource(nil, cache, nil)

	first, err := newEngine(dir, Options{Source: src}).Analyze(context.Background())
	require.NoError(t, err)
	second, err := newEngine(dir, Options{Source: src}).Analyze(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Report.Markdown(), second.Report.Markdown())
	hits, misses := cache.Stats()
	assert.Equal(t, 4, misses)
	assert.Equal(t, 4, hits)
}

func TestAnalyzeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newEngine(courseDir(t), Options{SkipUnreadable: true}).Analyze(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestKeywords(t *testing.T) {
	dir := courseDir(t)

	kw, err := newEngine(dir, Options{}).Keywords(context.Background(), filepath.Join(dir, "test.txt"), 2)
	require.NoError(t, err)
	require.Len(t, kw, 2)
	assert.Equal(t, "lista", kw[0].Token)
	assert.Equal(t, "pętla", kw[1].Token)

	_, err = newEngine(dir, Options{}).Keywords(context.Background(), filepath.Join(dir, "none.txt"), 2)
	assert.ErrorIs(t, err, internalerr.ErrMissingInput)
}

func TestSuggestStopwords(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"W1.txt": "slajd pętla",
		"W2.txt": "slajd lista",
		"W3.txt": "slajd klasa Python",
		"W4.txt": "agenda python",
	})

	cands, err := newEngine(dir, Options{}).SuggestStopwords(context.Background(), stopwords.Thresholds{MinDFPercent: 75, MinDocs: 2})
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, "slajd", cands[0].Token)
	assert.Equal(t, 3, cands[0].Count)

	_, err = newEngine(t.TempDir(), Options{}).SuggestStopwords(context.Background(), stopwords.Thresholds{})
	assert.ErrorIs(t, err, internalerr.ErrMissingInput)
}
