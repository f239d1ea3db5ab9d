package ingest

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const softHyphen = '\u00ad'

var dashReplacer = strings.NewReplacer("\u2013", "-", "\u2014", "-")

// Normalizer cleans extraction artifacts out of raw document text.
// Line breaks and letter case are left untouched.
type Normalizer struct {
	// ComposeUnicode applies NFC composition, so that "e" + U+0328 becomes "ę".
	ComposeUnicode bool
}

// DefaultNormalizer composes Unicode after cleaning.
func DefaultNormalizer() Normalizer {
	return Normalizer{ComposeUnicode: true}
}

// Normalize removes soft hyphens, maps en/em dashes to '-' and collapses
// runs of spaces and tabs into a single space. It is idempotent.
func (n Normalizer) Normalize(s string) string {
	s = strings.ReplaceAll(s, string(softHyphen), "")
	s = dashReplacer.Replace(s)
	s = collapseHorizontalSpace(s)
	// Composition runs last: a removed soft hyphen can leave a base letter
	// next to its combining mark.
	if n.ComposeUnicode {
		s = norm.NFC.String(s)
	}
	return s
}

// Normalize runs the default normalizer.
func Normalize(s string) string {
	return DefaultNormalizer().Normalize(s)
}

func collapseHorizontalSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inRun := false
	for _, r := range s {
		if r == ' ' || r == '\t' {
			if !inRun {
				b.WriteByte(' ')
				inRun = true
			}
			continue
		}
		inRun = false
		b.WriteRune(r)
	}
	return b.String()
}
