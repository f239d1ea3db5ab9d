package extract

import (
	"context"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/cognicore/lectern/pkg/lectern/internalerr"
)

// HTML extracts the visible text of an HTML document as a single page.
type HTML struct{}

// Pages implements Extractor.
func (HTML) Pages(ctx context.Context, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &internalerr.ExtractionError{Path: path, Err: err}
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return nil, &internalerr.ExtractionError{Path: path, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var b strings.Builder
	collectText(doc, &b)
	return []string{strings.TrimSpace(b.String())}, nil
}

func collectText(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if skipElement(n.DataAtom) {
			return
		}
	}

	block := n.Type == html.ElementNode && isBlock(n.DataAtom)
	if block {
		b.WriteByte('\n')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
	if block {
		b.WriteByte('\n')
	}
}

func skipElement(a atom.Atom) bool {
	switch a {
	case atom.Head, atom.Script, atom.Style, atom.Noscript, atom.Template:
		return true
	}
	return false
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Br, atom.Li, atom.Ul, atom.Ol, atom.Pre,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Table, atom.Tr, atom.Td, atom.Th, atom.Section, atom.Article,
		atom.Blockquote, atom.Header, atom.Footer, atom.Hr:
		return true
	}
	return false
}
