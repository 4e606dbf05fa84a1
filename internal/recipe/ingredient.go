package recipe

import (
	"strings"

	"github.com/gerunddev/mdrecipe/internal/markdown"
	"github.com/gerunddev/mdrecipe/internal/units"
)

// Ingredient is one choice on an ingredient line.
type Ingredient struct {
	Name string
	// Quantity is nil when the line gives no quantity.
	Quantity      *units.Quantity
	AltQuantities []units.Quantity
	// Info is the trimmed text of a trailing parenthetical, or empty.
	Info string
}

// IngredientOptions is one ingredient line: a primary ingredient and the
// ingredients that may replace it.
type IngredientOptions struct {
	Primary      Ingredient
	Alternatives []Ingredient
}

// All returns the primary ingredient followed by its alternatives.
func (o IngredientOptions) All() []Ingredient {
	return append([]Ingredient{o.Primary}, o.Alternatives...)
}

const (
	nameForbidden     = ",|/()"
	quantityForbidden = ",|/()"
	infoForbidden     = "|()"
)

// ParseIngredient reads "<name>[, <quantity>[/<alt>]*][ (<info>)]".
func ParseIngredient(text string) (Ingredient, error) {
	var ing Ingredient
	rest := strings.TrimSpace(text)

	if strings.HasSuffix(rest, ")") {
		open := strings.LastIndex(rest, "(")
		if open < 0 {
			return Ingredient{}, markdown.Errorf("unmatched ')' in ingredient %q", text)
		}
		info := strings.TrimSpace(rest[open+1 : len(rest)-1])
		if info == "" {
			return Ingredient{}, markdown.Errorf("empty info in ingredient %q", text)
		}
		if strings.ContainsAny(info, infoForbidden) {
			return Ingredient{}, markdown.Errorf("info %q must not contain any of %q", info, infoForbidden)
		}
		ing.Info = info
		rest = rest[:open]
	}

	name, quantities, hasQuantity := strings.Cut(rest, ",")
	if hasQuantity {
		for i, segment := range strings.Split(quantities, "/") {
			q, err := parseQuantitySegment(segment)
			if err != nil {
				return Ingredient{}, err
			}
			if i == 0 {
				ing.Quantity = &q
			} else {
				ing.AltQuantities = append(ing.AltQuantities, q)
			}
		}
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return Ingredient{}, markdown.Errorf("ingredient name must not be empty in %q", text)
	}
	if strings.ContainsAny(name, nameForbidden) {
		return Ingredient{}, markdown.Errorf("ingredient name %q must not contain any of %q", name, nameForbidden)
	}
	ing.Name = name
	return ing, nil
}

func parseQuantitySegment(segment string) (units.Quantity, error) {
	segment = strings.TrimSpace(segment)
	if strings.ContainsAny(segment, quantityForbidden) {
		return units.Quantity{}, markdown.Errorf("quantity %q must not contain any of %q", segment, quantityForbidden)
	}
	q, err := units.ParseQuantity(segment)
	if err != nil {
		return units.Quantity{}, markdown.Wrap(err, "invalid quantity %q", segment)
	}
	return q, nil
}

// ParseIngredientOptions reads a full ingredient line, where "|" separates
// the primary ingredient from its alternatives.
func ParseIngredientOptions(text string) (IngredientOptions, error) {
	pieces := strings.Split(text, "|")

	primary, err := ParseIngredient(pieces[0])
	if err != nil {
		return IngredientOptions{}, err
	}
	opts := IngredientOptions{Primary: primary}
	for _, piece := range pieces[1:] {
		if strings.TrimSpace(piece) == "" {
			return IngredientOptions{}, markdown.Errorf("empty alternative in ingredient %q", text)
		}
		alt, err := ParseIngredient(piece)
		if err != nil {
			return IngredientOptions{}, err
		}
		opts.Alternatives = append(opts.Alternatives, alt)
	}
	return opts, nil
}
