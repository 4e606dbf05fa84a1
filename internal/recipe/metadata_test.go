package recipe

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gerunddev/mdrecipe/internal/markdown"
	"github.com/gerunddev/mdrecipe/internal/units"
)

func TestParseMetadata(t *testing.T) {
	raw := `tags:
  - "#dessert"
  - "#french/classic"
  - "#quick-and_easy"
  - "#dessert"
quantity: 12 pieces
size | pan: 24cm°
"size|tray": 30 mm
size  |  dish : 20 cm
source: grandma
servings: 4
`
	got, err := ParseMetadata([]byte(raw), DefaultOptions())
	if err != nil {
		t.Fatalf("ParseMetadata failed: %v", err)
	}

	expected := Metadata{
		Tags:     []string{"dessert", "french/classic", "quick-and_easy", "dessert"},
		Quantity: units.Quantity{Unit: units.Custom("pieces"), Amount: 12},
		Sizes: map[string]SizeInfo{
			"pan":  {Quantity: units.QuantityOf[units.Distance]{Unit: units.Centimeter, Amount: 24}, Modifier: RadialDistance},
			"tray": {Quantity: units.QuantityOf[units.Distance]{Unit: units.Millimeter, Amount: 30}},
			"dish": {Quantity: units.QuantityOf[units.Distance]{Unit: units.Centimeter, Amount: 20}},
		},
		Others: map[string]string{"source": "grandma", "servings": "4"},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("ParseMetadata mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMetadataEmpty(t *testing.T) {
	got, err := ParseMetadata(nil, DefaultOptions())
	if err != nil {
		t.Fatalf("ParseMetadata(nil) failed: %v", err)
	}
	if diff := cmp.Diff(DefaultMetadata(), got); diff != "" {
		t.Errorf("empty frontmatter should yield defaults (-want +got):\n%s", diff)
	}
}

func TestParseSizeInfoRadialMarker(t *testing.T) {
	want := SizeInfo{
		Quantity: units.QuantityOf[units.Distance]{Unit: units.Centimeter, Amount: 10},
		Modifier: RadialDistance,
	}
	for _, input := range []string{"10cm°", "10 cm °", "  10cm  °  ", "10 cm°"} {
		got, err := ParseSizeInfo(input)
		if err != nil {
			t.Errorf("ParseSizeInfo(%q) failed: %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("ParseSizeInfo(%q) = %+v, want %+v", input, got, want)
		}
	}

	plain, err := ParseSizeInfo("3 in")
	if err != nil {
		t.Fatalf("ParseSizeInfo failed: %v", err)
	}
	if plain.Modifier != NoModifier {
		t.Errorf("Modifier = %v, want none", plain.Modifier)
	}
	if plain.String() != "3 in" {
		t.Errorf("String() = %q, want %q", plain.String(), "3 in")
	}
}

func TestParseSizeInfoUnitError(t *testing.T) {
	_, err := ParseSizeInfo("10 kg")
	var unitErr *units.UnitError
	if !errors.As(err, &unitErr) {
		t.Fatalf("ParseSizeInfo(10 kg) should wrap *units.UnitError, got %v", err)
	}
	if unitErr.Token != "kg" {
		t.Errorf("UnitError.Token = %q, want %q", unitErr.Token, "kg")
	}
}

func TestParseMetadataKeepsScalarSourceText(t *testing.T) {
	// Numbers and booleans are read as the text they were written as.
	raw := `quantity: 4
vegan: true
ratio: 1.50
code: 0x10
`
	got, err := ParseMetadata([]byte(raw), DefaultOptions())
	if err != nil {
		t.Fatalf("ParseMetadata failed: %v", err)
	}

	expected := DefaultMetadata()
	expected.Quantity = units.Quantity{Unit: units.Nominal{}, Amount: 4}
	expected.Others = map[string]string{"vegan": "true", "ratio": "1.50", "code": "0x10"}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("ParseMetadata mismatch (-want +got):\n%s", diff)
	}

	if _, err := ParseMetadata([]byte("quantity: ~\n"), DefaultOptions()); err == nil {
		t.Error("a null quantity should be rejected")
	}
}

func TestParseMetadataFailures(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{"tag without hash", "tags:\n  - \"dessert\"\n", "must start with '#'"},
		{"tag with space", "tags:\n  - \"#des sert\"\n", "forbidden characters"},
		{"double hash", "tags:\n  - \"##dessert\"\n", "forbidden characters"},
		{"tags not a sequence", "tags: \"#dessert\"\n", "expected sequence"},
		{"tag not a string", "tags:\n  - [a]\n", "expected string tag"},
		{"duplicate unknown key", "source: a\nsource: b\n", `duplicate metadata key "source"`},
		{"unknown key with list", "source:\n  - a\n", "only string values"},
		{"unknown key with null", "source:\n", "only string values"},
		{"bad quantity", "quantity: lots\n", "invalid quantity"},
		{"size without name", "size | : 10cm\n", "must have a name"},
		{"size with mass", "size | pan: 10kg\n", "failed to parse size"},
		{"top level sequence", "- a\n- b\n", "expected top-level element to be mapping"},
		{"non string key", "1: a\n", "expected string key"},
		{"two documents", "a: b\n---\nc: d\n", "expected single YAML document"},
		{"syntax error", "a: [b\n", "invalid frontmatter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMetadata([]byte(tt.raw), DefaultOptions())
			if err == nil {
				t.Fatalf("ParseMetadata(%q) should fail", tt.raw)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ParseMetadata(%q) error = %q, want it to contain %q", tt.raw, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestParseMetadataSizeRedeclared(t *testing.T) {
	raw := []byte("size | pan: 10cm\nsize |pan: 20cm\n")

	md, err := ParseMetadata(raw, DefaultOptions())
	if err != nil {
		t.Fatalf("ParseMetadata failed: %v", err)
	}
	if got := md.Sizes["pan"].Quantity.Amount; got != 20 {
		t.Errorf("last declaration should win, got %v", got)
	}

	_, err = ParseMetadata(raw, Options{StrictSizes: true})
	if err == nil || !strings.Contains(err.Error(), `size "pan" declared twice`) {
		t.Errorf("StrictSizes should reject the redeclaration, got %v", err)
	}
}

func TestParseMetadataErrorPosition(t *testing.T) {
	_, err := ParseMetadata([]byte("source: a\ntags:\n  - \"nohash\"\n"), DefaultOptions())
	var e *markdown.Error
	if !errors.As(err, &e) {
		t.Fatalf("error should be *markdown.Error, got %T", err)
	}
	if e.Pos == nil || e.Pos.Line != 3 || e.Pos.Column != 5 {
		t.Errorf("Pos = %v, want 3:5", e.Pos)
	}
}
