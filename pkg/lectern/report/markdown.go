// Package report renders coverage analysis results as Markdown.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cognicore/lectern/pkg/lectern/analytics"
	"github.com/cognicore/lectern/pkg/lectern/rank"
)

// Report is everything one analysis run renders.
type Report struct {
	CorpusLabel string // e.g. "W1–W11"

	ReferenceName    string
	ReferenceTextLen int
	ReferenceTokens  int

	CorpusFiles  int
	CorpusTokens int

	Global   rank.Similarity
	Ranking  []rank.DocScore
	Keywords []analytics.TermCount
	Missing  []analytics.TermCount

	// MissingLimit caps the missing-term section; <= 0 means no cap.
	MissingLimit int
}

// WriteMarkdown renders the report. Sections always appear in the same
// order: title, summary, global metrics, ranking, keywords, missing terms.
func (r Report) WriteMarkdown(w io.Writer) error {
	p := message.NewPrinter(language.English)
	bw := bufio.NewWriter(w)
	line := func(format string, args ...any) {
		p.Fprintf(bw, format, args...)
		bw.WriteByte('\n')
	}

	line("# Coverage report: %s vs %s", r.CorpusLabel, r.ReferenceName)
	line("")
	line("- Reference: **%s** (characters: %d, tokens: %d)", r.ReferenceName, r.ReferenceTextLen, r.ReferenceTokens)
	line("- Corpus: **%d files** (tokens total: %d)", r.CorpusFiles, r.CorpusTokens)
	line("")

	line("## Global result")
	line("")
	line("- Keyword coverage of the reference by the corpus: **%s**", percent(r.Global.Coverage))
	line("- Cosine similarity (token frequencies): **%s**", percent(r.Global.Cosine))
	line("")

	line("## Best covering documents (ranking)")
	line("")
	line("| Document | Coverage | Similarity | Tokens |")
	line("|---|---:|---:|---:|")
	for _, s := range r.Ranking {
		line("| %s | %s | %s | %d |",
			escapeCell(s.Name), percent(s.Similarity.Coverage), percent(s.Similarity.Cosine), s.TokenTotal)
	}
	line("")

	line("## Top keywords in the reference")
	line("")
	for _, k := range r.Keywords {
		fmt.Fprintf(bw, "- %s (%d)\n", k.Token, k.Count)
	}
	line("")

	line("## Top missing terms (frequent in the reference, absent from %s)", r.CorpusLabel)
	line("")
	missing := r.Missing
	if r.MissingLimit > 0 && len(missing) > r.MissingLimit {
		missing = missing[:r.MissingLimit]
	}
	for _, m := range missing {
		fmt.Fprintf(bw, "- %s (%d)\n", m.Token, m.Count)
	}

	return bw.Flush()
}

// Markdown returns the rendered report as a string.
func (r Report) Markdown() string {
	var b strings.Builder
	_ = r.WriteMarkdown(&b)
	return b.String()
}

// WriteFile renders the report to path, replacing any previous file.
// The report is written to a temporary file in the same directory first,
// so a failed run never leaves a truncated report behind.
func WriteFile(path string, r Report) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := r.WriteMarkdown(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace report: %w", err)
	}
	return nil
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
