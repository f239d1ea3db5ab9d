// Package extract pulls page-structured plain text out of documents.
package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cognicore/lectern/internal/logging"
	"github.com/cognicore/lectern/pkg/lectern/internalerr"
	"github.com/cognicore/lectern/pkg/lectern/store"
)

// Extractor returns the text of every page of a document, in page order.
// Failures are reported as *internalerr.ExtractionError.
type Extractor interface {
	Pages(ctx context.Context, path string) ([]string, error)
}

// Registry dispatches to an extractor by file extension.
type Registry struct {
	byExt map[string]Extractor
}

// NewRegistry returns a registry with the PDF, plain text and HTML
// extractors registered.
func NewRegistry() *Registry {
	r := &Registry{byExt: make(map[string]Extractor)}
	r.Register(".pdf", PDF{})
	r.Register(".txt", Text{})
	html := HTML{}
	r.Register(".html", html)
	r.Register(".htm", html)
	return r
}

// Register binds ext (with or without the leading dot) to e.
func (r *Registry) Register(ext string, e Extractor) {
	r.byExt[normalizeExt(ext)] = e
}

// Extensions lists the registered extensions in ascending order.
func (r *Registry) Extensions() []string {
	out := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Pages implements Extractor.
func (r *Registry) Pages(ctx context.Context, path string) ([]string, error) {
	ext := normalizeExt(filepath.Ext(path))
	e, ok := r.byExt[ext]
	if !ok {
		return nil, &internalerr.ExtractionError{
			Path: path,
			Err:  fmt.Errorf("unsupported document type %q", ext),
		}
	}
	pages, err := e.Pages(ctx, path)
	if err != nil {
		return nil, asExtractionError(path, err)
	}
	return pages, nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// JoinPages concatenates the non-empty pages with a newline.
func JoinPages(pages []string) string {
	nonEmpty := make([]string, 0, len(pages))
	for _, p := range pages {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "\n")
}

// Source extracts document text, optionally through a cache.
type Source struct {
	extractor Extractor
	cache     store.Cache
	logger    *slog.Logger
}

// NewSource wraps an extractor. cache and logger may be nil.
func NewSource(e Extractor, cache store.Cache, logger *slog.Logger) *Source {
	if e == nil {
		e = NewRegistry()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Source{extractor: e, cache: cache, logger: logger}
}

// Text returns the document text: its non-empty pages joined by newlines.
func (s *Source) Text(ctx context.Context, path string) (string, error) {
	pages, err := s.Pages(ctx, path)
	if err != nil {
		return "", err
	}
	return JoinPages(pages), nil
}

// Pages returns per-page text, consulting the cache first when one is set.
// Cache failures are logged and never fail the extraction.
func (s *Source) Pages(ctx context.Context, path string) ([]string, error) {
	if s.cache == nil {
		return s.extract(ctx, path)
	}

	key, err := store.KeyFor(path)
	if err != nil {
		return nil, asExtractionError(path, err)
	}
	if pages, ok, err := s.cache.GetPages(ctx, key); err != nil {
		s.logger.Warn("extraction cache read failed", "path", path, "error", err)
	} else if ok {
		s.logger.Debug("extraction cache hit", "path", path, "pages", len(pages))
		return pages, nil
	}

	pages, err := s.extract(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := s.cache.PutPages(ctx, key, pages); err != nil {
		s.logger.Warn("extraction cache write failed", "path", path, "error", err)
	}
	return pages, nil
}

func (s *Source) extract(ctx context.Context, path string) ([]string, error) {
	pages, err := s.extractor.Pages(ctx, path)
	if err != nil {
		return nil, asExtractionError(path, err)
	}
	s.logger.Debug("extracted document", "path", path, "pages", len(pages))
	return pages, nil
}

func asExtractionError(path string, err error) error {
	var ee *internalerr.ExtractionError
	if errors.As(err, &ee) {
		return err
	}
	return &internalerr.ExtractionError{Path: path, Err: err}
}
