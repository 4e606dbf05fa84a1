// Package preview renders recipe sources for the terminal.
package preview

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/glamour"

	"github.com/gerunddev/mdrecipe/internal/markdown"
)

// DefaultWidth is the word wrap used when the caller has no terminal width
const DefaultWidth = 100

// Render renders a recipe document with glamour. A leading frontmatter block
// is shown as a YAML code block instead of a thematic break. The source is
// returned unrendered if glamour fails.
func Render(source []byte, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	md := Markdown(source)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		// Fallback to plain source if glamour fails
		return md
	}

	rendered, err := renderer.Render(md)
	if err != nil {
		// Fallback to plain source if rendering fails
		return md
	}

	return rendered
}

// Markdown returns the markdown that Render feeds to glamour.
func Markdown(source []byte) string {
	doc, err := markdown.Parse(source)
	if err != nil {
		return string(source)
	}
	blocks := doc.Blocks()
	if len(blocks) == 0 {
		return string(source)
	}
	fm, ok := blocks[0].(*markdown.Frontmatter)
	if !ok || !fm.Closed {
		return string(source)
	}

	// Opening delimiter, content lines, closing delimiter.
	body := skipLines(source, fm.Lines().Len()+2)
	return fmt.Sprintf("```yaml\n%s```\n\n%s", fm.Raw, body)
}

func skipLines(source []byte, n int) []byte {
	for i := 0; i < n; i++ {
		idx := bytes.IndexByte(source, '\n')
		if idx < 0 {
			return nil
		}
		source = source[idx+1:]
	}
	return source
}
