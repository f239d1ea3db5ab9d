package config

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cognicore/lectern/pkg/lectern/extract"
	"github.com/cognicore/lectern/pkg/lectern/ingest"
	"github.com/cognicore/lectern/pkg/lectern/stoplist"
	"github.com/cognicore/lectern/pkg/lectern/store"
	"github.com/cognicore/lectern/pkg/lectern/store/sqlite"
)

// Loader constructs the analysis components a Config describes
type Loader struct {
	Config *Config
	Logger *slog.Logger
}

// Components holds all loaded configuration components
type Components struct {
	Tokenizer *ingest.Tokenizer
	Pipeline  *ingest.Pipeline
	Source    *extract.Source
	Cache     store.Cache // nil when caching is disabled
}

// Close releases the extraction cache, if any.
func (c *Components) Close() error {
	if c.Cache == nil {
		return nil
	}
	return c.Cache.Close()
}

// Load reads stoplist files, opens the cache and returns initialized components
func (l *Loader) Load(ctx context.Context) (*Components, error) {
	cfg := l.Config
	if cfg == nil {
		cfg = Default()
	}
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}

	stops := stoplist.Default()
	for _, path := range cfg.Stoplists {
		sl, err := LoadStoplist(cfg.Path(path))
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		stops.AddAll(sl.Terms, stoplist.OriginFile)
		logger.Debug("loaded stoplist", "path", path, "terms", len(sl.Terms))
	}
	stops.AddAll(cfg.ExtraStopwords, stoplist.OriginConfig)

	norm := ingest.Normalizer{ComposeUnicode: cfg.Analysis.UnicodeNFC}
	tokenizer := ingest.NewTokenizerWithStoplist(stops, norm)

	comp := &Components{
		Tokenizer: tokenizer,
		Pipeline:  ingest.NewPipeline(tokenizer),
	}

	if cfg.Cache.Path != "" {
		cache, err := sqlite.OpenSQLite(ctx, cfg.Cache.Path)
		if err != nil {
			return nil, fmt.Errorf("open extraction cache: %w", err)
		}
		comp.Cache = cache
		logger.Debug("extraction cache enabled", "path", cfg.Cache.Path)
	}

	comp.Source = extract.NewSource(extract.NewRegistry(), comp.Cache, logger)
	return comp, nil
}
