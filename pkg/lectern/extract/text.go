package extract

import (
	"context"
	"errors"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/cognicore/lectern/pkg/lectern/internalerr"
)

// Text reads UTF-8 plain text; form feeds separate pages.
type Text struct{}

// Pages implements Extractor.
func (Text) Pages(ctx context.Context, path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &internalerr.ExtractionError{Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return nil, &internalerr.ExtractionError{Path: path, Err: errors.New("text is not valid UTF-8")}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return strings.Split(string(data), "\f"), nil
}
