package lectern

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

// Pattern describes corpus file names: Prefix, 1..MaxDigits digits, Extension.
type Pattern struct {
	Prefix    string
	MaxDigits int
	Extension string
}

// DefaultPattern matches W1.pdf through W99.pdf.
var DefaultPattern = Pattern{Prefix: "W", MaxDigits: 2, Extension: ".pdf"}

func (p Pattern) regexp() (*regexp.Regexp, error) {
	digits := p.MaxDigits
	if digits <= 0 {
		digits = DefaultPattern.MaxDigits
	}
	expr := fmt.Sprintf(`^%s([0-9]{1,%d})%s$`, regexp.QuoteMeta(p.Prefix), digits, regexp.QuoteMeta(p.Extension))
	return regexp.Compile(expr)
}

// CorpusFile is one discovered corpus document.
type CorpusFile struct {
	Name string
	Path string

	digits int
}

// Discover lists the corpus files in dir matching p, ordered by number of
// digits and then by name. Only regular files (or links to them) count, and
// the file named exclude is skipped.
func Discover(dir string, p Pattern, exclude string) ([]CorpusFile, error) {
	re, err := p.regexp()
	if err != nil {
		return nil, fmt.Errorf("corpus pattern: %w", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read corpus dir: %w", err)
	}

	var files []CorpusFile
	for _, e := range entries {
		if e.Name() == exclude {
			continue
		}
		m := re.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		path := filepath.Join(dir, e.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, CorpusFile{
			Name:   e.Name(),
			Path:   path,
			digits: len(m[1]),
		})
	}

	slices.SortFunc(files, func(a, b CorpusFile) int {
		if c := cmp.Compare(a.digits, b.digits); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return files, nil
}

// CorpusLabel names a corpus by its first and last document, e.g. "W1–W11".
func CorpusLabel(names []string) string {
	if len(names) == 0 {
		return ""
	}
	first := stem(names[0])
	last := stem(names[len(names)-1])
	if first == last {
		return first
	}
	return first + "–" + last
}

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
