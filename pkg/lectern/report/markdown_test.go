package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/lectern/pkg/lectern/analytics"
	"github.com/cognicore/lectern/pkg/lectern/rank"
)

func sampleReport() Report {
	return Report{
		CorpusLabel:      "W1–W2",
		ReferenceName:    "test_python.pdf",
		ReferenceTextLen: 12345,
		ReferenceTokens:  1234,
		CorpusFiles:      2,
		CorpusTokens:     1234567,
		Global:           rank.Similarity{Coverage: 85.25, Cosine: 42.06},
		Ranking: []rank.DocScore{
			{Name: "W2.pdf", Similarity: rank.Similarity{Coverage: 60, Cosine: 31.44}, TokenTotal: 2000},
			{Name: "W1.pdf", Similarity: rank.Similarity{Coverage: 40, Cosine: 12.5}, TokenTotal: 999},
		},
		Keywords: []analytics.TermCount{{Token: "class", Count: 5}, {Token: "loop", Count: 3}},
		Missing:  []analytics.TermCount{{Token: "async", Count: 4}},
	}
}

func TestWriteMarkdownSections(t *testing.T) {
	out := sampleReport().Markdown()

	want := `# Coverage report: W1–W2 vs test_python.pdf

- Reference: **test_python.pdf** (characters: 12,345, tokens: 1,234)
- Corpus: **2 files** (tokens total: 1,234,567)

## Global result

- Keyword coverage of the reference by the corpus: **85.2%**
- Cosine similarity (token frequencies): **42.1%**

## Best covering documents (ranking)

| Document | Coverage | Similarity | Tokens |
|---|---:|---:|---:|
| W2.pdf | 60.0% | 31.4% | 2,000 |
| W1.pdf | 40.0% | 12.5% | 999 |

## Top keywords in the reference

- class (5)
- loop (3)

## Top missing terms (frequent in the reference, absent from W1–W2)

- async (4)
`
	assert.Equal(t, want, out)
}

func TestWriteMarkdownSectionOrder(t *testing.T) {
	out := sampleReport().Markdown()

	headers := []string{
		"# Coverage report",
		"- Reference:",
		"## Global result",
		"## Best covering documents",
		"## Top keywords",
		"## Top missing terms",
	}
	last := -1
	for _, h := range headers {
		idx := strings.Index(out, h)
		require.GreaterOrEqualf(t, idx, 0, "missing header %q", h)
		assert.Greaterf(t, idx, last, "header %q out of order", h)
		last = idx
	}
}

func TestWriteMarkdownCapsMissing(t *testing.T) {
	r := sampleReport()
	r.Missing = nil
	for i := 0; i < 80; i++ {
		r.Missing = append(r.Missing, analytics.TermCount{Token: fmt.Sprintf("term%03d", i), Count: 1})
	}
	r.MissingLimit = 60

	out := r.Markdown()
	section := out[strings.Index(out, "## Top missing terms"):]
	assert.Equal(t, 60, strings.Count(section, "\n- "))
	assert.Contains(t, section, "term059")
	assert.NotContains(t, section, "term060")
}

func TestWriteMarkdownEscapesPipes(t *testing.T) {
	r := sampleReport()
	r.Ranking = []rank.DocScore{{Name: "W|1.pdf"}}

	assert.Contains(t, r.Markdown(), `| W\|1.pdf | 0.0% | 0.0% | 0 |`)
}

func TestWriteFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "COVERAGE_REPORT.md")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer than before"), 0o644))

	r := sampleReport()
	require.NoError(t, WriteFile(path, r))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, r.Markdown(), string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestWriteFileMissingDirectory(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "nope", "r.md"), sampleReport())
	assert.Error(t, err)
}

func TestWriteMarkdownListCountsUnformatted(t *testing.T) {
	r := sampleReport()
	r.Keywords = []analytics.TermCount{{Token: "loop", Count: 1234}}
	r.Missing = []analytics.TermCount{{Token: "async", Count: 56789}}
	r.CorpusTokens = 1234

	out := r.Markdown()
	assert.Contains(t, out, "- loop (1234)\n")
	assert.Contains(t, out, "- async (56789)\n")
	assert.Contains(t, out, "(tokens total: 1,234)")
}
