package extract

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	"rsc.io/pdf"

	"github.com/cognicore/lectern/pkg/lectern/internalerr"
)

// PDF extracts text with rsc.io/pdf. Pages without a page object are
// skipped; fragments are laid out into lines by their baseline.
type PDF struct{}

// Pages implements Extractor.
func (PDF) Pages(ctx context.Context, path string) (pages []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &internalerr.ExtractionError{Path: path, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &internalerr.ExtractionError{Path: path, Err: err}
	}

	// rsc.io/pdf panics on some malformed streams.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = &internalerr.ExtractionError{Path: path, Err: fmt.Errorf("malformed pdf: %v", r)}
		}
	}()

	r, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return nil, &internalerr.ExtractionError{Path: path, Err: err}
	}

	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pages = append(pages, layoutText(page.Content().Text))
	}
	return pages, nil
}

// layoutText joins text fragments, starting a new line when the baseline
// moves and inserting a space across horizontal gaps.
func layoutText(texts []pdf.Text) string {
	var b strings.Builder
	for i, t := range texts {
		if i > 0 {
			prev := texts[i-1]
			size := math.Max(prev.FontSize, 1)
			switch {
			case math.Abs(t.Y-prev.Y) > size*0.5:
				b.WriteByte('\n')
			case t.X-(prev.X+prev.W) > size*0.15:
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.S)
	}
	return b.String()
}
