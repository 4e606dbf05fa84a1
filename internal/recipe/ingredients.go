package recipe

import (
	"github.com/yuin/goldmark/ast"

	"github.com/gerunddev/mdrecipe/internal/markdown"
)

// IngredientsKind tells which shape an ingredient section has.
type IngredientsKind int

const (
	// FlatList is a single bullet list.
	FlatList IngredientsKind = iota
	// Grouped is a sequence of H3 headings, each followed by a list.
	Grouped
)

func (k IngredientsKind) String() string {
	if k == Grouped {
		return "grouped"
	}
	return "flat"
}

// Ingredients holds either Flat or Groups, never both.
type Ingredients struct {
	Flat   []IngredientOptions
	Groups []IngredientGroup
}

// IngredientGroup is a named list of ingredient lines.
type IngredientGroup struct {
	Name        string
	Ingredients []IngredientOptions
}

// Kind reports whether the section was grouped.
func (in Ingredients) Kind() IngredientsKind {
	if in.Groups != nil {
		return Grouped
	}
	return FlatList
}

// Lines returns every ingredient line in document order.
func (in Ingredients) Lines() []IngredientOptions {
	if in.Kind() == FlatList {
		return in.Flat
	}
	var lines []IngredientOptions
	for _, g := range in.Groups {
		lines = append(lines, g.Ingredients...)
	}
	return lines
}

func parseIngredients(doc *markdown.Document, nodes []ast.Node) (Ingredients, error) {
	switch len(nodes) {
	case 0:
		return Ingredients{Flat: []IngredientOptions{}}, nil
	case 1:
		flat, err := parseIngredientList(doc, nodes[0])
		if err != nil {
			return Ingredients{}, err
		}
		return Ingredients{Flat: flat}, nil
	}

	groups := make([]IngredientGroup, 0, len(nodes)/2)
	for i := 0; i < len(nodes); i += 2 {
		if i+1 == len(nodes) {
			return Ingredients{}, doc.Errorf(nodes[i], "malformed ingredient group: %s is not followed by a list", markdown.KindName(nodes[i]))
		}
		name, err := doc.Heading(nodes[i], 3, "")
		if err != nil {
			return Ingredients{}, err
		}
		lines, err := parseIngredientList(doc, nodes[i+1])
		if err != nil {
			return Ingredients{}, err
		}
		groups = append(groups, IngredientGroup{Name: name, Ingredients: lines})
	}
	return Ingredients{Groups: groups}, nil
}

func parseIngredientList(doc *markdown.Document, n ast.Node) ([]IngredientOptions, error) {
	if _, ok := n.(*ast.List); !ok {
		return nil, doc.Errorf(n, "ingredients must be a list, but got %s", markdown.KindName(n))
	}
	lines := make([]IngredientOptions, 0, n.ChildCount())
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		opts, err := parseIngredientItem(doc, item)
		if err != nil {
			return nil, err
		}
		lines = append(lines, opts)
	}
	return lines, nil
}

func parseIngredientItem(doc *markdown.Document, item ast.Node) (IngredientOptions, error) {
	if _, ok := item.(*ast.ListItem); !ok {
		return IngredientOptions{}, doc.Errorf(item, "expected list item, but got %s", markdown.KindName(item))
	}
	if err := doc.ExpectChildren(item, 1); err != nil {
		return IngredientOptions{}, err
	}
	text, err := doc.ParagraphText(item.FirstChild())
	if err != nil {
		return IngredientOptions{}, err
	}
	opts, err := ParseIngredientOptions(text)
	if err != nil {
		return IngredientOptions{}, markdown.At(err, doc.Position(item))
	}
	return opts, nil
}
