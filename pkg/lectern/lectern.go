// Package lectern measures how well a corpus of lecture documents covers a
// reference document and renders the result as a Markdown report.
package lectern

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/cognicore/lectern/internal/logging"
	"github.com/cognicore/lectern/pkg/lectern/analytics"
	"github.com/cognicore/lectern/pkg/lectern/autotune/stopwords"
	"github.com/cognicore/lectern/pkg/lectern/extract"
	"github.com/cognicore/lectern/pkg/lectern/ingest"
	"github.com/cognicore/lectern/pkg/lectern/internalerr"
	"github.com/cognicore/lectern/pkg/lectern/rank"
	"github.com/cognicore/lectern/pkg/lectern/report"
	"github.com/cognicore/lectern/pkg/lectern/stoplist"
)

// Lectern is the coverage analysis engine facade
type Lectern struct {
	dir            string
	reference      string
	pattern        Pattern
	topKeywords    int
	missingLimit   int
	minTokenLen    int
	workers        int
	skipUnreadable bool
	pipeline       *ingest.Pipeline
	source         *extract.Source
	logger         *slog.Logger
}

// Options configures a Lectern instance. Zero values take the defaults.
type Options struct {
	Dir       string
	Reference string // resolved against Dir unless absolute
	Pattern   Pattern

	TopKeywords  int
	MissingLimit int // < 0 disables the cap
	MinTokenLen  int

	Workers        int
	SkipUnreadable bool

	Pipeline *ingest.Pipeline
	Source   *extract.Source
	Logger   *slog.Logger
}

// New creates a Lectern instance with the given dependencies
func New(opts Options) *Lectern {
	l := &Lectern{
		dir:            opts.Dir,
		reference:      opts.Reference,
		pattern:        opts.Pattern,
		topKeywords:    opts.TopKeywords,
		missingLimit:   opts.MissingLimit,
		minTokenLen:    opts.MinTokenLen,
		workers:        opts.Workers,
		skipUnreadable: opts.SkipUnreadable,
		pipeline:       opts.Pipeline,
		source:         opts.Source,
		logger:         opts.Logger,
	}
	if l.dir == "" {
		l.dir = "."
	}
	if l.reference == "" {
		l.reference = "test_python.pdf"
	}
	if l.pattern == (Pattern{}) {
		l.pattern = DefaultPattern
	}
	if l.topKeywords <= 0 {
		l.topKeywords = rank.DefaultTopKeywords
	}
	if l.missingLimit == 0 {
		l.missingLimit = rank.DefaultMissingLimit
	}
	if l.minTokenLen <= 0 {
		l.minTokenLen = rank.DefaultMinTokenLen
	}
	if l.workers <= 0 {
		l.workers = 1
	}
	if l.logger == nil {
		l.logger = logging.Discard()
	}
	if l.pipeline == nil {
		l.pipeline = ingest.NewPipeline(
			ingest.NewTokenizerWithStoplist(stoplist.Default(), ingest.DefaultNormalizer()))
	}
	if l.source == nil {
		l.source = extract.NewSource(nil, nil, l.logger)
	}
	return l
}

// Result is the outcome of one analysis run.
type Result struct {
	Report  report.Report
	Skipped []string // corpus documents left out because they could not be read
}

// Analyze runs the full analysis: discovery, extraction, statistics and
// report assembly. Nothing is extracted when an input is missing.
func (l *Lectern) Analyze(ctx context.Context) (*Result, error) {
	refPath := l.referencePath()
	if info, err := os.Stat(refPath); err != nil || info.IsDir() {
		return nil, &internalerr.MissingInputError{What: "reference document", Path: refPath}
	}

	files, err := Discover(l.dir, l.pattern, l.excludedName(refPath))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, &internalerr.MissingInputError{
			What: "corpus documents",
			Path: filepath.Join(l.dir, l.pattern.Prefix+"<n>"+l.pattern.Extension),
		}
	}
	l.logger.Info("discovered corpus", "dir", l.dir, "documents", len(files))

	ref, err := l.document(ctx, filepath.Base(refPath), refPath)
	if err != nil {
		return nil, fmt.Errorf("reference: %w", err)
	}

	docs, skipped, err := l.corpus(ctx, files)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, &internalerr.MissingInputError{What: "readable corpus documents", Path: l.dir}
	}

	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}
	aggregate := analytics.Aggregate(docs)

	rep := report.Report{
		CorpusLabel:      CorpusLabel(names),
		ReferenceName:    ref.Name,
		ReferenceTextLen: ref.TextLen,
		ReferenceTokens:  ref.TokenTotal(),
		CorpusFiles:      len(docs),
		CorpusTokens:     aggregate.Total(),
		Global:           rank.Compare(ref.Tokens, aggregate),
		Ranking:          rank.RankDocuments(ref.Tokens, docs),
		Keywords:         rank.TopKeywords(ref.Tokens, l.topKeywords, l.minTokenLen),
		Missing:          rank.Missing(ref.Tokens, aggregate),
		MissingLimit:     l.missingLimit,
	}
	return &Result{Report: rep, Skipped: skipped}, nil
}

// Keywords returns the top keywords of a single document.
func (l *Lectern) Keywords(ctx context.Context, path string, k int) ([]analytics.TermCount, error) {
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return nil, &internalerr.MissingInputError{What: "document", Path: path}
	}
	doc, err := l.document(ctx, filepath.Base(path), path)
	if err != nil {
		return nil, err
	}
	if k <= 0 {
		k = l.topKeywords
	}
	return rank.TopKeywords(doc.Tokens, k, l.minTokenLen), nil
}

// SuggestStopwords extracts the corpus and returns tokens that appear in
// so many documents that they say little about any lecture.
func (l *Lectern) SuggestStopwords(ctx context.Context, th stopwords.Thresholds) ([]stopwords.Candidate, error) {
	files, err := Discover(l.dir, l.pattern, l.excludedName(l.referencePath()))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, &internalerr.MissingInputError{What: "corpus documents", Path: l.dir}
	}
	docs, _, err := l.corpus(ctx, files)
	if err != nil {
		return nil, err
	}

	agg := analytics.NewAggregator()
	for _, d := range docs {
		agg.Process(d.Tokens)
	}
	tuner := stopwords.AutoTuner{Manager: l.pipeline.Tokenizer().Stoplist(), Thresholds: th}
	return tuner.Run(agg.Snapshot())
}

func (l *Lectern) referencePath() string {
	if filepath.IsAbs(l.reference) {
		return l.reference
	}
	return filepath.Join(l.dir, l.reference)
}

// excludedName is the reference file name when the reference lives in the
// corpus directory, so it never counts as a corpus document.
func (l *Lectern) excludedName(refPath string) string {
	refDir, err1 := filepath.Abs(filepath.Dir(refPath))
	dir, err2 := filepath.Abs(l.dir)
	if err1 != nil || err2 != nil || refDir != dir {
		return ""
	}
	return filepath.Base(refPath)
}

func (l *Lectern) document(ctx context.Context, name, path string) (analytics.Document, error) {
	text, err := l.source.Text(ctx, path)
	if err != nil {
		return analytics.Document{}, err
	}
	doc := l.pipeline.Process(name, text)
	l.logger.Debug("processed document", "name", name, "chars", doc.TextLen, "tokens", doc.TokenTotal())
	return doc, nil
}

// corpus extracts every corpus file. Documents keep discovery order
// regardless of the number of workers.
func (l *Lectern) corpus(ctx context.Context, files []CorpusFile) ([]analytics.Document, []string, error) {
	slots := make([]*analytics.Document, len(files))

	load := func(ctx context.Context, i int) error {
		doc, err := l.document(ctx, files[i].Name, files[i].Path)
		if err != nil {
			if ctx.Err() == nil && l.skipUnreadable && errors.Is(err, internalerr.ErrExtraction) {
				l.logger.Warn("skipping unreadable document", "name", files[i].Name, "error", err)
				return nil
			}
			return err
		}
		slots[i] = &doc
		return nil
	}

	if l.workers <= 1 {
		for i := range files {
			if err := load(ctx, i); err != nil {
				return nil, nil, err
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(l.workers)
		for i := range files {
			g.Go(func() error { return load(gctx, i) })
		}
		if err := g.Wait(); err != nil {
			return nil, nil, err
		}
	}

	docs := make([]analytics.Document, 0, len(files))
	var skipped []string
	for i, d := range slots {
		if d == nil {
			skipped = append(skipped, files[i].Name)
			continue
		}
		docs = append(docs, *d)
	}
	return docs, skipped, nil
}
