package ingest

import (
	"strings"
	"unicode/utf8"

	"github.com/cognicore/lectern/pkg/lectern/analytics"
	"github.com/cognicore/lectern/pkg/lectern/stoplist"
)

const (
	// minRunLen is the shortest letter run considered a candidate.
	minRunLen = 2
	// MinTokenLen is the shortest token kept after filtering.
	MinTokenLen = 3
)

// polishLetters are the accented letters accepted besides ASCII.
// Uppercase forms are listed too, but text is lowercased before scanning.
const polishLetters = "ĄĆĘŁŃÓŚŹŻąćęłńóśźż"

// Tokenizer handles text tokenization and normalization
type Tokenizer struct {
	stops      *stoplist.Manager
	normalizer Normalizer
}

// NewTokenizer creates a tokenizer with the given stopword list and the
// default normalizer.
func NewTokenizer(stopwords []string) *Tokenizer {
	return NewTokenizerWithStoplist(stoplist.NewManager(stopwords), DefaultNormalizer())
}

// NewTokenizerWithStoplist creates a tokenizer over an existing stoplist.
func NewTokenizerWithStoplist(stops *stoplist.Manager, n Normalizer) *Tokenizer {
	if stops == nil {
		stops = stoplist.NewManager(nil)
	}
	return &Tokenizer{stops: stops, normalizer: n}
}

// Stoplist exposes the active stopword set.
func (t *Tokenizer) Stoplist() *stoplist.Manager {
	return t.stops
}

// Tokenize normalizes and lowercases text, then returns the maximal runs
// of letters and underscores in document order, minus stopwords and runs
// shorter than MinTokenLen. Digits and punctuation split runs.
func (t *Tokenizer) Tokenize(text string) []string {
	text = strings.ToLower(t.normalizer.Normalize(text))

	var tokens []string
	start := -1
	for i, r := range text {
		if isTokenRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = t.appendToken(tokens, text[start:i])
			start = -1
		}
	}

	// Don't forget the last token
	if start >= 0 {
		tokens = t.appendToken(tokens, text[start:])
	}

	return tokens
}

// Bag tokenizes text and counts the tokens.
func (t *Tokenizer) Bag(text string) analytics.Bag {
	return analytics.BagOf(t.Tokenize(text))
}

func (t *Tokenizer) appendToken(tokens []string, run string) []string {
	n := utf8.RuneCountInString(run)
	if n < minRunLen {
		return tokens
	}
	if t.stops.IsStop(run) {
		return tokens
	}
	if n < MinTokenLen {
		return tokens
	}
	return append(tokens, run)
}

func isTokenRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		return true
	case r < utf8.RuneSelf:
		return false
	}
	return strings.ContainsRune(polishLetters, r)
}

// IsTokenRune reports whether r may appear inside a token.
func IsTokenRune(r rune) bool {
	return isTokenRune(r)
}
