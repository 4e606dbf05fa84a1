package markdown

import (
	"strings"

	"github.com/yuin/goldmark/ast"
)

// ExpectChildren fails unless n has exactly count children.
func (d *Document) ExpectChildren(n ast.Node, count int) error {
	if IsText(n) {
		return d.Errorf(n, "%s cannot have children", KindName(n))
	}
	if got := n.ChildCount(); got != count {
		return d.Errorf(n, "expected %s to have %d children, but got %d", KindName(n), count, got)
	}
	return nil
}

// Heading checks that n is a heading of the given level whose content is
// plain text and returns that text. A non-empty want must match exactly.
func (d *Document) Heading(n ast.Node, level int, want string) (string, error) {
	h, ok := n.(*ast.Heading)
	if !ok {
		return "", d.Errorf(n, "expected heading, but got %s", KindName(n))
	}
	if h.Level != level {
		return "", d.Errorf(n, "expected heading at depth %d, but got %d", level, h.Level)
	}
	title, err := d.plainText(n)
	if err != nil {
		return "", err
	}
	if want != "" && title != want {
		return "", d.Errorf(n, "expected heading %q, but got %q", want, title)
	}
	return title, nil
}

// ParagraphText checks that n is a paragraph whose content is plain text and
// returns that text. Tight list items hold a text block instead of a
// paragraph; both are accepted.
func (d *Document) ParagraphText(n ast.Node) (string, error) {
	if !IsParagraph(n) {
		return "", d.Errorf(n, "expected paragraph, but got %s", KindName(n))
	}
	return d.plainText(n)
}

// IsParagraph reports whether n is a paragraph or a text block.
func IsParagraph(n ast.Node) bool {
	switch n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return true
	}
	return false
}

// plainText joins the text children of n. goldmark splits a run of text at
// delimiter characters that did not form emphasis, so adjacent text nodes
// count as the single text child the dialect expects.
func (d *Document) plainText(n ast.Node) (string, error) {
	if n.ChildCount() == 0 {
		return "", d.Errorf(n, "expected %s to have a text child", KindName(n))
	}
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if !IsText(c) {
			return "", d.Errorf(c, "expected text in %s, but got %s", KindName(n), KindName(c))
		}
		b.WriteString(d.TextValue(c))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
