package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindFrontmatter is the node kind of a leading "---" delimited block.
var KindFrontmatter = ast.NewNodeKind("Frontmatter")

// Frontmatter is a raw metadata block at the very top of a document. Its
// lines are kept verbatim and are never parsed as markdown.
type Frontmatter struct {
	ast.BaseBlock
	// Raw is the block content without the delimiter lines.
	Raw []byte
	// Closed reports whether the closing delimiter was found.
	Closed bool
}

func (n *Frontmatter) Kind() ast.NodeKind { return KindFrontmatter }

func (n *Frontmatter) IsRaw() bool { return true }

func (n *Frontmatter) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Closed": boolString(n.Closed),
	}, nil)
}

type frontmatterParser struct{}

func (p *frontmatterParser) Trigger() []byte {
	return []byte{'-'}
}

func (p *frontmatterParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	lineNum, _ := reader.Position()
	if lineNum != 0 {
		return nil, parser.NoChildren
	}
	line, _ := reader.PeekLine()
	if !isDelimiter(line) {
		return nil, parser.NoChildren
	}
	return &Frontmatter{}, parser.NoChildren
}

func (p *frontmatterParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, segment := reader.PeekLine()
	if isDelimiter(line) {
		node.(*Frontmatter).Closed = true
		// Leave the newline so nothing else opens on this line.
		n := segment.Len()
		if bytes.HasSuffix(line, []byte{'\n'}) {
			n--
		}
		reader.Advance(n)
		return parser.Close
	}
	node.Lines().Append(segment)
	return parser.Continue | parser.NoChildren
}

func (p *frontmatterParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {
	fm := node.(*Frontmatter)
	var buf bytes.Buffer
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		buf.Write(segment.Value(reader.Source()))
	}
	fm.Raw = buf.Bytes()
}

func (p *frontmatterParser) CanInterruptParagraph() bool { return false }

func (p *frontmatterParser) CanAcceptIndentedLine() bool { return false }

// isDelimiter matches a line made of three dashes and surrounding blanks.
func isDelimiter(line []byte) bool {
	return bytes.Equal(util.TrimRightSpace(util.TrimLeftSpace(line)), []byte("---"))
}

type frontmatterExtension struct{}

// FrontmatterExtension registers the frontmatter block parser ahead of the
// thematic break and setext heading parsers, which also trigger on '-'.
var FrontmatterExtension goldmark.Extender = &frontmatterExtension{}

func (e *frontmatterExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(util.Prioritized(&frontmatterParser{}, 0)),
	)
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
