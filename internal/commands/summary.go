package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"github.com/gerunddev/mdrecipe/internal/recipe"
	"github.com/gerunddev/mdrecipe/internal/styles"
	"github.com/gerunddev/mdrecipe/internal/units"
)

// SummaryOptions controls how a recipe summary is written
type SummaryOptions struct {
	// Sanitize converts every quantity to the base unit of its family
	Sanitize bool
	// Styled colors the summary. Styles degrade to plain text when the
	// output is not a terminal.
	Styled bool
}

// WriteSummary writes a structured summary of r. Ingredient references are
// shown as [name] and timers as {duration}.
func WriteSummary(w io.Writer, r *recipe.Recipe, opts SummaryOptions) error {
	s := summary{opts: opts}
	s.title(r.Name)
	s.metadata(r.Metadata)
	s.ingredients(r.Ingredients)
	s.instructions(r.Instructions)
	_, err := io.WriteString(w, s.b.String())
	return err
}

type summary struct {
	b    strings.Builder
	opts SummaryOptions
}

func (s *summary) line(format string, args ...any) {
	fmt.Fprintf(&s.b, format, args...)
	s.b.WriteByte('\n')
}

// paint renders text with style when the summary is styled.
func (s *summary) paint(style lipgloss.Style, text string) string {
	if !s.opts.Styled {
		return text
	}
	return style.Render(text)
}

func (s *summary) label(name string) string {
	return s.paint(styles.LabelStyle, name+":")
}

func (s *summary) title(name string) {
	s.line("%s", s.paint(styles.TitleStyle, name))
	s.line("%s", s.paint(styles.DimStyle, strings.Repeat("=", len([]rune(name)))))
}

func (s *summary) metadata(md recipe.Metadata) {
	s.line("%s %s", s.label("Yield"), s.paint(styles.QuantityStyle, s.quantity(md.Quantity)))
	if len(md.Tags) > 0 {
		tags := make([]string, len(md.Tags))
		for i, tag := range md.Tags {
			tags[i] = s.paint(styles.TagStyle, "#"+tag)
		}
		s.line("%s %s", s.label("Tags"), strings.Join(tags, " "))
	}
	if len(md.Sizes) > 0 {
		s.line("%s", s.label("Sizes"))
		for _, name := range sortedKeys(md.Sizes) {
			s.line("  %s: %s", name, s.paint(styles.QuantityStyle, s.size(md.Sizes[name])))
		}
	}
	for _, key := range sortedKeys(md.Others) {
		s.line("%s %s", s.label(key), s.paint(styles.ValueStyle, md.Others[key]))
	}
}

func (s *summary) ingredients(in recipe.Ingredients) {
	s.line("")
	s.line("%s", s.paint(styles.LabelStyle, fmt.Sprintf("Ingredients (%d)", len(in.Lines()))))
	if in.Kind() == recipe.FlatList {
		for _, opt := range in.Flat {
			s.line("  - %s", s.options(opt))
		}
		return
	}
	for _, g := range in.Groups {
		s.line("  %s", s.paint(styles.HighlightStyle, g.Name+":"))
		for _, opt := range g.Ingredients {
			s.line("    - %s", s.options(opt))
		}
	}
}

func (s *summary) instructions(in recipe.Instructions) {
	s.line("")
	s.line("%s", s.paint(styles.LabelStyle, fmt.Sprintf("Instructions (%d)", in.Count())))
	s.steps(in.Steps, "", 1)
}

func (s *summary) steps(steps []recipe.Step, prefix string, depth int) {
	indent := strings.Repeat("  ", depth)
	for i, step := range steps {
		number := fmt.Sprintf("%s%d.", prefix, i+1)
		s.line("%s%s %s", indent, s.paint(styles.DimStyle, number), s.description(step.Description))
		s.steps(step.Substeps, number, depth+1)
	}
}

// description folds line breaks so each step stays on one line.
func (s *summary) description(elems []recipe.TextElem) string {
	var b strings.Builder
	for _, elem := range elems {
		switch e := elem.(type) {
		case recipe.IngredientRef:
			b.WriteString(s.paint(styles.IngredientStyle, "["+fold(string(e))+"]"))
		case recipe.Timer:
			b.WriteString(s.paint(styles.TimerStyle, "{"+s.quantity(e.Quantity.Quantity())+"}"))
		default:
			b.WriteString(fold(elem.String()))
		}
	}
	return strings.TrimSpace(b.String())
}

// fold collapses every whitespace run in text to a single space.
func fold(text string) string {
	folded := strings.Join(strings.Fields(text), " ")
	if folded == "" {
		if text != "" {
			return " "
		}
		return ""
	}
	if strings.TrimLeftFunc(text, unicode.IsSpace) != text {
		folded = " " + folded
	}
	if strings.TrimRightFunc(text, unicode.IsSpace) != text {
		folded += " "
	}
	return folded
}

// options renders an ingredient line in the grammar it was written in
func (s *summary) options(opt recipe.IngredientOptions) string {
	parts := make([]string, 0, 1+len(opt.Alternatives))
	for _, ing := range opt.All() {
		parts = append(parts, s.ingredient(ing))
	}
	return strings.Join(parts, " | ")
}

func (s *summary) ingredient(ing recipe.Ingredient) string {
	text := ing.Name
	if ing.Quantity != nil {
		qs := []string{s.quantity(*ing.Quantity)}
		for _, alt := range ing.AltQuantities {
			qs = append(qs, s.quantity(alt))
		}
		text += ", " + s.paint(styles.QuantityStyle, strings.Join(qs, "/"))
	}
	if ing.Info != "" {
		text += " " + s.paint(styles.DimStyle, "("+ing.Info+")")
	}
	return text
}

func (s *summary) size(info recipe.SizeInfo) string {
	if !s.opts.Sanitize {
		return info.String()
	}
	text := info.Quantity.Quantity().Sanitize().String()
	if info.Modifier == recipe.RadialDistance {
		text += "°"
	}
	return text
}

func (s *summary) quantity(q units.Quantity) string {
	if s.opts.Sanitize {
		q = q.Sanitize()
	}
	return q.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
