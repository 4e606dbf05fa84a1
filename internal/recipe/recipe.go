// Package recipe reads recipe documents: a markdown file with optional YAML
// frontmatter, a title, an ingredient section and an instruction section.
//
//	---
//	tags: ["#dessert"]
//	quantity: 4
//	size | pan: 24cm°
//	---
//	# Crepes
//	## Ingredients
//	- Flour, 250 g
//	- Milk, 500 mL | Oat milk, 500 mL
//	## Instructions
//	- Whisk the *flour* with the *milk*.
//	- Rest for **30 min**.
package recipe

import (
	"errors"

	"github.com/gerunddev/mdrecipe/internal/markdown"
)

const sectionIngredients = "Ingredients"

// Recipe is a fully validated recipe document.
type Recipe struct {
	Name         string
	Metadata     Metadata
	Ingredients  Ingredients
	Instructions Instructions
}

// Parse reads a recipe with the default options.
func Parse(source []byte) (*Recipe, error) {
	return ParseWithOptions(source, DefaultOptions())
}

// ParseWithOptions reads a recipe. The first problem found is returned as a
// *markdown.Error; nothing is returned alongside it.
func ParseWithOptions(source []byte, opts Options) (*Recipe, error) {
	doc, err := markdown.Parse(source)
	if err != nil {
		return nil, err
	}
	blocks := doc.Blocks()
	if len(blocks) == 0 {
		return nil, markdown.Errorf("empty document")
	}

	r := &Recipe{Metadata: DefaultMetadata()}
	cur := markdown.NewCursor(blocks)

	if n, _ := cur.Peek(); n != nil {
		if fm, ok := n.(*markdown.Frontmatter); ok {
			_, _ = cur.Next()
			if r.Metadata, err = parseFrontmatter(doc, fm, opts); err != nil {
				return nil, err
			}
		}
	}

	n, err := cur.Next()
	if err != nil {
		return nil, markdown.Wrap(err, "missing recipe title")
	}
	if r.Name, err = doc.Heading(n, 1, ""); err != nil {
		return nil, err
	}

	if err := expectSection(doc, cur, sectionIngredients); err != nil {
		return nil, err
	}
	if r.Ingredients, err = parseIngredients(doc, cur.ConsumeToNextHeading(2)); err != nil {
		return nil, err
	}

	if err := expectSection(doc, cur, opts.Dialect.Heading()); err != nil {
		return nil, err
	}
	if r.Instructions, err = parseInstructions(doc, cur.ConsumeToNextHeading(2)); err != nil {
		return nil, err
	}

	if rest := cur.Remaining(); len(rest) > 0 {
		return nil, doc.Errorf(rest[0], "unexpected %s after %s section", markdown.KindName(rest[0]), opts.Dialect.Heading())
	}
	return r, nil
}

func expectSection(doc *markdown.Document, cur *markdown.Cursor, title string) error {
	n, err := cur.Next()
	if errors.Is(err, markdown.ErrEOF) {
		return markdown.Wrap(err, "missing %q section", title)
	}
	if err != nil {
		return err
	}
	_, err = doc.Heading(n, 2, title)
	return err
}

func parseFrontmatter(doc *markdown.Document, fm *markdown.Frontmatter, opts Options) (Metadata, error) {
	// The opening delimiter is always the first line of the document.
	pos := doc.PositionAt(0)
	if !fm.Closed {
		return Metadata{}, &markdown.Error{Msg: "unterminated frontmatter block", Pos: pos}
	}
	p := metadataParser{opts: opts, lineOffset: pos.Line}
	return p.parse(fm.Raw)
}
