package recipe

import (
	"strings"

	"github.com/yuin/goldmark/ast"

	"github.com/gerunddev/mdrecipe/internal/markdown"
	"github.com/gerunddev/mdrecipe/internal/units"
)

// Instructions is the ordered step tree of a recipe.
type Instructions struct {
	Steps []Step
}

// Step is one bullet of the instruction list. Both fields may be empty.
type Step struct {
	Description []TextElem
	Substeps    []Step
}

// Depth returns the number of step levels rooted at s, counting s.
func (s Step) Depth() int {
	deepest := 0
	for _, sub := range s.Substeps {
		if d := sub.Depth(); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

// Count returns the number of steps in the tree, substeps included.
func (in Instructions) Count() int {
	return countSteps(in.Steps)
}

func countSteps(steps []Step) int {
	n := len(steps)
	for _, s := range steps {
		n += countSteps(s.Substeps)
	}
	return n
}

// TextElem is an inline piece of a step description: Text, IngredientRef or
// Timer.
type TextElem interface {
	String() string
	textElem()
}

// Text is plain description text. Soft line breaks are kept as "\n".
type Text string

// IngredientRef names an ingredient, written as *emphasis*.
type IngredientRef string

// Timer is a duration, written as **strong** text.
type Timer struct {
	Quantity units.QuantityOf[units.Time]
}

func (t Text) String() string          { return string(t) }
func (r IngredientRef) String() string { return string(r) }
func (t Timer) String() string         { return t.Quantity.String() }

func (Text) textElem()          {}
func (IngredientRef) textElem() {}
func (Timer) textElem()         {}

func parseInstructions(doc *markdown.Document, nodes []ast.Node) (Instructions, error) {
	switch len(nodes) {
	case 0:
		return Instructions{Steps: []Step{}}, nil
	case 1:
		steps, err := parseSteps(doc, nodes[0])
		if err != nil {
			return Instructions{}, err
		}
		return Instructions{Steps: steps}, nil
	default:
		return Instructions{}, doc.Errorf(nodes[1], "expected a single list for instructions, but got %d nodes", len(nodes))
	}
}

func parseSteps(doc *markdown.Document, n ast.Node) ([]Step, error) {
	if _, ok := n.(*ast.List); !ok {
		return nil, doc.Errorf(n, "instructions must be a list, but got %s", markdown.KindName(n))
	}
	steps := make([]Step, 0, n.ChildCount())
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		step, err := parseStep(doc, item)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func parseStep(doc *markdown.Document, item ast.Node) (Step, error) {
	if _, ok := item.(*ast.ListItem); !ok {
		return Step{}, doc.Errorf(item, "expected list item, but got %s", markdown.KindName(item))
	}

	var step Step
	switch item.ChildCount() {
	case 0:
		return step, nil
	case 1, 2:
	default:
		return Step{}, doc.Errorf(item, "expected step to have at most 2 children, but got %d", item.ChildCount())
	}

	desc, err := parseDescription(doc, item.FirstChild())
	if err != nil {
		return Step{}, err
	}
	step.Description = desc

	if sub := item.FirstChild().NextSibling(); sub != nil {
		if _, ok := sub.(*ast.List); !ok {
			return Step{}, doc.Errorf(sub, "expected substeps to be a list, but got %s", markdown.KindName(sub))
		}
		if step.Substeps, err = parseSteps(doc, sub); err != nil {
			return Step{}, err
		}
	}
	return step, nil
}

func parseDescription(doc *markdown.Document, n ast.Node) ([]TextElem, error) {
	if !markdown.IsParagraph(n) {
		return nil, doc.Errorf(n, "expected step description paragraph, but got %s", markdown.KindName(n))
	}

	var elems []TextElem
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			elems = append(elems, Text(text.String()))
			text.Reset()
		}
	}

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if markdown.IsText(c) {
			text.WriteString(doc.TextValue(c))
			continue
		}
		flush()
		elem, err := parseInline(doc, c)
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
	}
	flush()
	return elems, nil
}

func parseInline(doc *markdown.Document, n ast.Node) (TextElem, error) {
	em, ok := n.(*ast.Emphasis)
	if !ok || em.Level > 2 {
		return nil, doc.Errorf(n, "unsupported element %s in step description", markdown.KindName(n))
	}

	content, err := emphasisText(doc, em)
	if err != nil {
		return nil, err
	}
	if em.Level == 1 || em.ChildCount() == 0 {
		return IngredientRef(content), nil
	}

	q, err := units.ParseQuantityOf[units.Time](content)
	if err != nil {
		return nil, doc.Wrap(em, err, "expected time information, but got %q", content)
	}
	return Timer{Quantity: q}, nil
}

// emphasisText returns the text inside an emphasis node. goldmark may split
// the text at stray delimiters, so adjacent text children are joined.
func emphasisText(doc *markdown.Document, em *ast.Emphasis) (string, error) {
	var b strings.Builder
	for c := em.FirstChild(); c != nil; c = c.NextSibling() {
		if !markdown.IsText(c) {
			return "", doc.Errorf(c, "expected text inside %s, but got %s", emphasisName(em), markdown.KindName(c))
		}
		b.WriteString(doc.TextValue(c))
	}
	return b.String(), nil
}

func emphasisName(em *ast.Emphasis) string {
	if em.Level == 2 {
		return "timer"
	}
	return "ingredient reference"
}
