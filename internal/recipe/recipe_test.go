package recipe

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gerunddev/mdrecipe/internal/markdown"
	"github.com/gerunddev/mdrecipe/internal/units"
)

const crepes = `---
tags:
  - "#dessert"
  - "#french"
quantity: 8
size | pan: 24 cm°
source: family notebook
---
# Crepes

## Ingredients

### Batter
- Flour, 250 g
- Milk, 500 mL | Oat milk, 500 mL
- Eggs, 3

### Filling
- Sugar, 2 tbsp / 25 g (or more)
- Lemon

## Instructions

- Whisk the *Flour* with the *Milk*.
  - Add the *Eggs* one at a time.
- Rest the batter for **30 min**.
- Cook each crepe for **1 minute** per side.
`

func TestParseFullRecipe(t *testing.T) {
	r, err := Parse([]byte(crepes))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	expected := &Recipe{
		Name: "Crepes",
		Metadata: Metadata{
			Tags:     []string{"dessert", "french"},
			Quantity: units.Quantity{Unit: units.Nominal{}, Amount: 8},
			Sizes: map[string]SizeInfo{
				"pan": {
					Quantity: units.QuantityOf[units.Distance]{Unit: units.Centimeter, Amount: 24},
					Modifier: RadialDistance,
				},
			},
			Others: map[string]string{"source": "family notebook"},
		},
		Ingredients: Ingredients{Groups: []IngredientGroup{
			{
				Name: "Batter",
				Ingredients: []IngredientOptions{
					{Primary: Ingredient{Name: "Flour", Quantity: qty(units.Gram, 250)}},
					{
						Primary:      Ingredient{Name: "Milk", Quantity: qty(units.Milliliter, 500)},
						Alternatives: []Ingredient{{Name: "Oat milk", Quantity: qty(units.Milliliter, 500)}},
					},
					{Primary: Ingredient{Name: "Eggs", Quantity: qty(units.Nominal{}, 3)}},
				},
			},
			{
				Name: "Filling",
				Ingredients: []IngredientOptions{
					{Primary: Ingredient{
						Name:          "Sugar",
						Quantity:      qty(units.Tablespoon, 2),
						AltQuantities: []units.Quantity{{Unit: units.Gram, Amount: 25}},
						Info:          "or more",
					}},
					{Primary: Ingredient{Name: "Lemon"}},
				},
			},
		}},
		Instructions: Instructions{Steps: []Step{
			{
				Description: []TextElem{Text("Whisk the "), IngredientRef("Flour"), Text(" with the "), IngredientRef("Milk"), Text(".")},
				Substeps: []Step{
					{Description: []TextElem{Text("Add the "), IngredientRef("Eggs"), Text(" one at a time.")}},
				},
			},
			{
				Description: []TextElem{
					Text("Rest the batter for "),
					Timer{Quantity: units.QuantityOf[units.Time]{Unit: units.Minute, Amount: 30}},
					Text("."),
				},
			},
			{
				Description: []TextElem{
					Text("Cook each crepe for "),
					Timer{Quantity: units.QuantityOf[units.Time]{Unit: units.Minute, Amount: 1}},
					Text(" per side."),
				},
			},
		}},
	}

	if diff := cmp.Diff(expected, r); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
	if r.Ingredients.Kind() != Grouped {
		t.Errorf("Kind() = %v, want grouped", r.Ingredients.Kind())
	}
	if n := len(r.Ingredients.Lines()); n != 5 {
		t.Errorf("Lines() returned %d lines, want 5", n)
	}
}

func TestParseWithoutFrontmatter(t *testing.T) {
	content := `# Toast
## Ingredients
- Bread, 2
## Instructions
- Toast the *Bread*.
`
	r, err := Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if diff := cmp.Diff(DefaultMetadata(), r.Metadata); diff != "" {
		t.Errorf("metadata should be the default (-want +got):\n%s", diff)
	}
	if r.Ingredients.Kind() != FlatList || len(r.Ingredients.Flat) != 1 {
		t.Errorf("Ingredients = %+v, want one flat line", r.Ingredients)
	}
}

func TestParseEmptySections(t *testing.T) {
	r, err := Parse([]byte("# Nothing\n## Ingredients\n## Instructions\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if r.Ingredients.Kind() != FlatList || r.Ingredients.Flat == nil || len(r.Ingredients.Flat) != 0 {
		t.Errorf("Ingredients = %#v, want an empty flat list", r.Ingredients)
	}
	if r.Instructions.Steps == nil || len(r.Instructions.Steps) != 0 {
		t.Errorf("Steps = %#v, want an empty list", r.Instructions.Steps)
	}
}

func TestParseStepsDialect(t *testing.T) {
	content := "# Toast\n## Ingredients\n- Bread, 2\n## Steps\n- Toast it.\n"

	if _, err := Parse([]byte(content)); err == nil {
		t.Error("the default dialect should reject a Steps section")
	}

	r, err := ParseWithOptions([]byte(content), Options{Dialect: DialectSteps})
	if err != nil {
		t.Fatalf("ParseWithOptions(DialectSteps) failed: %v", err)
	}
	if len(r.Instructions.Steps) != 1 {
		t.Errorf("got %d steps, want 1", len(r.Instructions.Steps))
	}
}

func TestParseStructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
		line    int
	}{
		{
			name:    "empty document",
			content: "",
			wantErr: "empty document",
		},
		{
			name:    "missing title",
			content: "## Ingredients\n",
			wantErr: "expected heading at depth 1, but got 2",
			line:    1,
		},
		{
			name:    "missing ingredients heading",
			content: "# Toast\n## Instructions\n- Toast.\n",
			wantErr: `expected heading "Ingredients", but got "Instructions"`,
			line:    2,
		},
		{
			name:    "headings out of order",
			content: "# Toast\n## Instructions\n- Toast.\n## Ingredients\n- Bread, 2\n",
			wantErr: `expected heading "Ingredients", but got "Instructions"`,
			line:    2,
		},
		{
			name:    "paragraph instead of ingredients heading",
			content: "# Toast\nSome intro.\n## Ingredients\n",
			wantErr: "expected heading, but got paragraph",
			line:    2,
		},
		{
			name:    "thematic break instead of ingredients heading",
			content: "# Toast\n---\n## Ingredients\n## Instructions\n",
			wantErr: "expected heading, but got thematicbreak",
			line:    2,
		},
		{
			name:    "thematic break after frontmatter",
			content: "---\nservings: 2\n---\n\n***\n# Toast\n",
			wantErr: "expected heading, but got thematicbreak",
			line:    5,
		},
		{
			name:    "missing instructions section",
			content: "# Toast\n## Ingredients\n- Bread, 2\n",
			wantErr: `missing "Instructions" section`,
		},
		{
			name:    "title only",
			content: "# Toast\n",
			wantErr: `missing "Ingredients" section`,
		},
		{
			name:    "trailing section",
			content: "# Toast\n## Ingredients\n## Instructions\n## Notes\n",
			wantErr: "unexpected heading (level 2) after Instructions section",
			line:    4,
		},
		{
			name:    "bad ingredient line",
			content: "# Toast\n## Ingredients\n- Bread, 2\n- , 1\n## Instructions\n",
			wantErr: "name must not be empty",
			line:    4,
		},
		{
			name:    "ingredient item with two paragraphs",
			content: "# Toast\n## Ingredients\n- Bread, 2\n\n  more\n## Instructions\n",
			wantErr: "expected listitem to have 1 children, but got 2",
			line:    3,
		},
		{
			name:    "malformed group",
			content: "# Toast\n## Ingredients\n### Base\n- Bread, 2\n### Topping\n## Instructions\n",
			wantErr: "malformed ingredient group",
			line:    5,
		},
		{
			name:    "group heading at wrong depth",
			content: "# Toast\n## Ingredients\n#### Base\n- Bread, 2\n## Instructions\n",
			wantErr: "expected heading at depth 3, but got 4",
			line:    3,
		},
		{
			name:    "ingredients not a list",
			content: "# Toast\n## Ingredients\nBread and butter.\n## Instructions\n",
			wantErr: "ingredients must be a list",
			line:    3,
		},
		{
			name:    "unterminated frontmatter",
			content: "---\ntags: []\n# Toast\n",
			wantErr: "unterminated frontmatter block",
			line:    1,
		},
		{
			name:    "bad tag",
			content: "---\ntags:\n  - \"#ok\"\n  - \"not ok\"\n---\n# Toast\n## Ingredients\n## Instructions\n",
			wantErr: "must start with '#'",
			line:    4,
		},
		{
			name:    "frontmatter syntax error",
			content: "---\ntitle: [unclosed\n---\n# Toast\n## Ingredients\n## Instructions\n",
			wantErr: "invalid frontmatter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			if err == nil {
				t.Fatalf("Parse should fail with %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}

			var e *markdown.Error
			if !errors.As(err, &e) {
				t.Fatalf("error should be *markdown.Error, got %T", err)
			}
			if tt.line == 0 {
				return
			}
			if e.Pos == nil {
				t.Fatalf("error should carry a position, got %q", err.Error())
			}
			if e.Pos.Line != tt.line {
				t.Errorf("error line = %d, want %d", e.Pos.Line, tt.line)
			}
		})
	}
}

func TestParseEOFIsDetectable(t *testing.T) {
	_, err := Parse([]byte("# Toast\n"))
	if !errors.Is(err, markdown.ErrEOF) {
		t.Errorf("missing section should wrap markdown.ErrEOF, got %v", err)
	}
}

func TestParseIsSafeForConcurrentUse(t *testing.T) {
	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			_, err := Parse([]byte(crepes))
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		if err := <-done; err != nil {
			t.Errorf("concurrent Parse failed: %v", err)
		}
	}
}
