package recipe

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/gerunddev/mdrecipe/internal/markdown"
	"github.com/gerunddev/mdrecipe/internal/units"
)

const (
	keyTags     = "tags"
	keyQuantity = "quantity"
	sizePrefix  = "size"
	radialMark  = "°"
)

// Metadata is the frontmatter of a recipe.
type Metadata struct {
	Tags []string
	// Quantity is how much the recipe yields. Defaults to 1.
	Quantity units.Quantity
	// Sizes maps an object name, such as a pan, to its dimension.
	Sizes map[string]SizeInfo
	// Others holds every unrecognised key verbatim.
	Others map[string]string
}

// DefaultMetadata is the metadata of a recipe without frontmatter.
func DefaultMetadata() Metadata {
	return Metadata{
		Tags:     []string{},
		Quantity: units.Quantity{Unit: units.Nominal{}, Amount: 1},
		Sizes:    map[string]SizeInfo{},
		Others:   map[string]string{},
	}
}

// UnitModifier qualifies how a size is measured.
type UnitModifier int

const (
	NoModifier UnitModifier = iota
	// RadialDistance marks a diameter, written with a trailing "°".
	RadialDistance
)

func (m UnitModifier) String() string {
	if m == RadialDistance {
		return "radial"
	}
	return "none"
}

// SizeInfo is the value of a "size | <name>" key.
type SizeInfo struct {
	Quantity units.QuantityOf[units.Distance]
	Modifier UnitModifier
}

func (s SizeInfo) String() string {
	if s.Modifier == RadialDistance {
		return s.Quantity.String() + radialMark
	}
	return s.Quantity.String()
}

// ParseSizeInfo reads a distance with an optional trailing "°".
func ParseSizeInfo(text string) (SizeInfo, error) {
	var info SizeInfo
	text = strings.TrimSpace(text)
	if trimmed, ok := strings.CutSuffix(text, radialMark); ok {
		text = trimmed
		info.Modifier = RadialDistance
	}
	q, err := units.ParseQuantityOf[units.Distance](text)
	if err != nil {
		return SizeInfo{}, markdown.Wrap(err, "failed to parse size %q", text)
	}
	info.Quantity = q
	return info, nil
}

// ParseMetadata decodes a frontmatter payload. Error positions are relative
// to the payload.
func ParseMetadata(raw []byte, opts Options) (Metadata, error) {
	p := metadataParser{opts: opts}
	return p.parse(raw)
}

type metadataParser struct {
	opts Options
	// lineOffset is added to payload line numbers to get document lines.
	lineOffset int
}

func (p metadataParser) parse(raw []byte) (Metadata, error) {
	md := DefaultMetadata()

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return md, nil
		}
		return Metadata{}, p.yamlError(err)
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return Metadata{}, p.errorf(&extra, "expected single YAML document in frontmatter")
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return md, nil
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return Metadata{}, p.errorf(root, "expected top-level element to be mapping")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], resolve(root.Content[i+1])
		if key.Kind != yaml.ScalarNode || key.ShortTag() != "!!str" {
			return Metadata{}, p.errorf(key, "expected string key")
		}

		var err error
		switch name := key.Value; {
		case name == keyTags:
			err = p.parseTags(value, &md)
		case name == keyQuantity:
			err = p.parseQuantity(value, &md)
		case strings.HasPrefix(name, sizePrefix):
			err = p.parseSize(key, value, &md)
		default:
			err = p.parseOther(key, value, &md)
		}
		if err != nil {
			return Metadata{}, err
		}
	}
	return md, nil
}

func (p metadataParser) parseTags(value *yaml.Node, md *Metadata) error {
	if value.Kind != yaml.SequenceNode {
		return p.errorf(value, "expected sequence under %q", keyTags)
	}
	for _, item := range value.Content {
		item = resolve(item)
		if item.Kind != yaml.ScalarNode || item.ShortTag() != "!!str" {
			return p.errorf(item, "expected string tag")
		}
		tag, err := parseTag(item.Value)
		if err != nil {
			return markdown.At(err, p.position(item))
		}
		md.Tags = append(md.Tags, tag)
	}
	return nil
}

// parseTag strips the leading "#" of a tag.
func parseTag(tag string) (string, error) {
	name, ok := strings.CutPrefix(tag, "#")
	if !ok {
		return "", markdown.Errorf("tag %q must start with '#' character", tag)
	}
	if name == "" {
		return "", markdown.Errorf("tag %q is empty", tag)
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '/' && r != '-' && r != '_' {
			return "", markdown.Errorf("tag %q contains forbidden characters", tag)
		}
	}
	return name, nil
}

func (p metadataParser) parseQuantity(value *yaml.Node, md *Metadata) error {
	text, ok := scalar(value)
	if !ok {
		return p.errorf(value, "expected string under %q", keyQuantity)
	}
	q, err := units.ParseQuantity(text)
	if err != nil {
		return markdown.At(markdown.Wrap(err, "invalid %s", keyQuantity), p.position(value))
	}
	md.Quantity = q
	return nil
}

func (p metadataParser) parseSize(key, value *yaml.Node, md *Metadata) error {
	rest := strings.TrimSpace(strings.TrimPrefix(key.Value, sizePrefix))
	rest, ok := strings.CutPrefix(rest, "|")
	if !ok {
		// "sizes", "size_hint" and friends are ordinary keys.
		return p.parseOther(key, value, md)
	}
	name := strings.TrimSpace(rest)
	if name == "" {
		return p.errorf(key, "sized object must have a name")
	}

	text, ok := scalar(value)
	if !ok {
		return p.errorf(value, "expected string size attribute for %q", name)
	}
	info, err := ParseSizeInfo(text)
	if err != nil {
		return markdown.At(err, p.position(value))
	}
	if _, dup := md.Sizes[name]; dup && p.opts.StrictSizes {
		return p.errorf(key, "size %q declared twice", name)
	}
	md.Sizes[name] = info
	return nil
}

func (p metadataParser) parseOther(key, value *yaml.Node, md *Metadata) error {
	text, ok := scalar(value)
	if !ok {
		return p.errorf(value, "for unknown keys, only string values are supported")
	}
	if _, dup := md.Others[key.Value]; dup {
		return p.errorf(key, "duplicate metadata key %q", key.Value)
	}
	md.Others[key.Value] = text
	return nil
}

// scalar returns the source text of a non-null scalar. YAML resolves
// "4" or "true" to numbers and booleans; the dialect keeps them as text.
func scalar(n *yaml.Node) (string, bool) {
	if n.Kind != yaml.ScalarNode || n.ShortTag() == "!!null" {
		return "", false
	}
	return n.Value, true
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func (p metadataParser) position(n *yaml.Node) *markdown.Position {
	if n == nil || n.Line == 0 {
		return nil
	}
	return &markdown.Position{Line: n.Line + p.lineOffset, Column: n.Column}
}

func (p metadataParser) errorf(n *yaml.Node, format string, args ...any) error {
	e := markdown.Errorf(format, args...)
	e.Pos = p.position(n)
	return e
}

var yamlLine = regexp.MustCompile(`^yaml: line (\d+): (.*)$`)

// yamlError moves the line reported by the YAML decoder into the error
// position, shifted to a document line.
func (p metadataParser) yamlError(err error) error {
	m := yamlLine.FindStringSubmatch(err.Error())
	if m == nil {
		return markdown.Wrap(err, "invalid frontmatter")
	}
	line, _ := strconv.Atoi(m[1])
	return &markdown.Error{
		Msg: "invalid frontmatter: " + m[2],
		Pos: &markdown.Position{Line: line + p.lineOffset, Column: 1},
	}
}
