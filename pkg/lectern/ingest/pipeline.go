package ingest

import (
	"unicode/utf8"

	"github.com/cognicore/lectern/pkg/lectern/analytics"
)

// Pipeline turns extracted text into an analysed document:
// text → normalization → tokenization → frequency bag
type Pipeline struct {
	tokenizer *Tokenizer
}

// NewPipeline creates an ingestion pipeline around a tokenizer
func NewPipeline(tokenizer *Tokenizer) *Pipeline {
	if tokenizer == nil {
		tokenizer = NewTokenizer(nil)
	}
	return &Pipeline{tokenizer: tokenizer}
}

// Tokenizer returns the pipeline's tokenizer.
func (p *Pipeline) Tokenizer() *Tokenizer {
	return p.tokenizer
}

// Process builds the document for name from its raw extracted text.
// TextLen counts characters of the raw text, before normalization.
func (p *Pipeline) Process(name, text string) analytics.Document {
	return analytics.Document{
		Name:    name,
		TextLen: utf8.RuneCountInString(text),
		Tokens:  p.tokenizer.Bag(text),
	}
}
