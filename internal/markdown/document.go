// Package markdown wraps the goldmark parser for the recipe dialect. It owns
// the document AST, a forward-only cursor over top-level blocks, the
// structural assertions used to validate sections, and the shared Error type.
package markdown

import (
	"bytes"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Document is a parsed markdown source. It is immutable and safe for
// concurrent reads.
type Document struct {
	source     []byte
	root       ast.Node
	lineStarts []int
}

// Parse builds the AST for source. Only CommonMark constructs plus a leading
// frontmatter block are recognised.
func Parse(source []byte) (*Document, error) {
	if !utf8.Valid(source) {
		return nil, Errorf("document is not valid UTF-8")
	}
	root := newEngine().Parser().Parse(text.NewReader(source))
	return &Document{
		source:     source,
		root:       root,
		lineStarts: lineStarts(source),
	}, nil
}

func newEngine() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(FrontmatterExtension),
	)
}

// Source returns the raw document bytes.
func (d *Document) Source() []byte { return d.source }

// Root returns the document node.
func (d *Document) Root() ast.Node { return d.root }

// Blocks returns the top-level block nodes in document order.
func (d *Document) Blocks() []ast.Node {
	var blocks []ast.Node
	for c := d.root.FirstChild(); c != nil; c = c.NextSibling() {
		blocks = append(blocks, c)
	}
	return blocks
}

// Position returns the source position of the first byte covered by n. A
// block that covers no source text, such as a thematic break, is located
// from its siblings. Position returns nil when n cannot be located.
func (d *Document) Position(n ast.Node) *Position {
	offset, ok := firstOffset(n)
	if !ok {
		offset, ok = d.blockStart(n)
	}
	if !ok {
		return nil
	}
	return d.PositionAt(offset)
}

// blockStart finds a segment-less block on the first non-blank line after
// its previous sibling, falling back to the start of its next sibling.
func (d *Document) blockStart(n ast.Node) (int, bool) {
	if n.Type() != ast.TypeBlock {
		return 0, false
	}
	if prev := n.PreviousSibling(); prev != nil {
		if end, ok := d.blockEnd(prev); ok {
			return d.skipBlankLines(end), true
		}
	} else if parent := n.Parent(); parent != nil && parent.Kind() == ast.KindDocument {
		return d.skipBlankLines(0), true
	}
	if next := n.NextSibling(); next != nil {
		return firstOffset(next)
	}
	return 0, false
}

// blockEnd returns the start of the line after the last line of n.
func (d *Document) blockEnd(n ast.Node) (int, bool) {
	if fm, ok := n.(*Frontmatter); ok && fm.Closed {
		// Opening delimiter, content lines, closing delimiter.
		return d.lineStart(fm.Lines().Len() + 2), true
	}
	if stop, ok := lastOffset(n); ok && stop > 0 {
		return d.lineAfter(stop - 1), true
	}
	if start, ok := d.blockStart(n); ok {
		return d.lineAfter(start), true
	}
	return 0, false
}

// lineAfter returns the start of the line following the one holding offset.
func (d *Document) lineAfter(offset int) int {
	line := sort.Search(len(d.lineStarts), func(i int) bool {
		return d.lineStarts[i] > offset
	})
	return d.lineStart(line)
}

func (d *Document) lineStart(line int) int {
	if line < len(d.lineStarts) {
		return d.lineStarts[line]
	}
	return len(d.source)
}

// skipBlankLines moves offset, a line start, past blank lines and leading
// indentation.
func (d *Document) skipBlankLines(offset int) int {
	for offset < len(d.source) {
		end := bytes.IndexByte(d.source[offset:], '\n')
		if end < 0 {
			end = len(d.source) - offset
		}
		line := d.source[offset : offset+end]
		if trimmed := bytes.TrimLeft(line, " \t\r"); len(trimmed) > 0 {
			return offset + len(line) - len(trimmed)
		}
		offset += end + 1
	}
	return len(d.source)
}

// PositionAt converts a byte offset into a Position.
func (d *Document) PositionAt(offset int) *Position {
	if offset < 0 || offset > len(d.source) {
		return nil
	}
	line := sort.Search(len(d.lineStarts), func(i int) bool {
		return d.lineStarts[i] > offset
	}) - 1
	start := d.lineStarts[line]
	return &Position{
		Line:   line + 1,
		Column: utf8.RuneCount(d.source[start:offset]) + 1,
	}
}

// Errorf builds an Error located at n.
func (d *Document) Errorf(n ast.Node, format string, args ...any) *Error {
	e := Errorf(format, args...)
	e.Pos = d.Position(n)
	return e
}

// Wrap builds an Error around cause located at n.
func (d *Document) Wrap(n ast.Node, cause error, format string, args ...any) *Error {
	e := Wrap(cause, format, args...)
	e.Pos = d.Position(n)
	return e
}

// IsText reports whether n is an inline node that carries plain text.
func IsText(n ast.Node) bool {
	switch n.(type) {
	case *ast.Text, *ast.String:
		return true
	}
	return false
}

// TextValue returns the text of a text node with backslash escapes and
// entity references decoded. Soft and hard line breaks at the end of the
// node are rendered as "\n".
func (d *Document) TextValue(n ast.Node) string {
	switch t := n.(type) {
	case *ast.Text:
		value := t.Segment.Value(d.source)
		if !t.IsRaw() {
			value = decodeText(value)
		}
		s := string(value)
		if t.SoftLineBreak() || t.HardLineBreak() {
			s += "\n"
		}
		return s
	case *ast.String:
		return string(t.Value)
	}
	return ""
}

// decodeText resolves escapes the way goldmark's HTML renderer does.
func decodeText(value []byte) []byte {
	value = util.UnescapePunctuations(value)
	value = util.ResolveNumericReferences(value)
	return util.ResolveEntityNames(value)
}

// KindName returns a readable name for n's kind, used in error messages.
func KindName(n ast.Node) string {
	if n == nil {
		return "nothing"
	}
	if h, ok := n.(*ast.Heading); ok {
		return "heading (level " + strconv.Itoa(h.Level) + ")"
	}
	return strings.ToLower(n.Kind().String())
}

func firstOffset(n ast.Node) (int, bool) {
	if t, ok := n.(*ast.Text); ok {
		return t.Segment.Start, true
	}
	if n.Type() == ast.TypeBlock {
		if lines := n.Lines(); lines != nil && lines.Len() > 0 {
			return lines.At(0).Start, true
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if offset, ok := firstOffset(c); ok {
			return offset, true
		}
	}
	return 0, false
}

func lastOffset(n ast.Node) (int, bool) {
	if t, ok := n.(*ast.Text); ok {
		return t.Segment.Stop, true
	}
	if n.Type() == ast.TypeBlock {
		if lines := n.Lines(); lines != nil && lines.Len() > 0 {
			return lines.At(lines.Len() - 1).Stop, true
		}
	}
	for c := n.LastChild(); c != nil; c = c.PreviousSibling() {
		if offset, ok := lastOffset(c); ok {
			return offset, true
		}
	}
	return 0, false
}

func lineStarts(source []byte) []int {
	starts := []int{0}
	for i, b := range source {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}
