package recipe

import (
	"fmt"
	"strings"
)

// Dialect selects the heading that opens the instruction section.
type Dialect int

const (
	// DialectInstructions expects "## Instructions".
	DialectInstructions Dialect = iota
	// DialectSteps expects "## Steps".
	DialectSteps
)

// Heading returns the H2 title this dialect expects.
func (d Dialect) Heading() string {
	if d == DialectSteps {
		return "Steps"
	}
	return "Instructions"
}

func (d Dialect) String() string {
	return strings.ToLower(d.Heading())
}

// ParseDialect maps a configuration value to a Dialect. The empty string
// selects the default.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "instructions":
		return DialectInstructions, nil
	case "steps":
		return DialectSteps, nil
	default:
		return DialectInstructions, fmt.Errorf("unknown dialect %q (expected \"instructions\" or \"steps\")", s)
	}
}

// Options tune how strictly a document is read.
type Options struct {
	Dialect Dialect
	// StrictSizes rejects a "size | name" key that is declared twice.
	// Otherwise the last declaration wins.
	StrictSizes bool
}

// DefaultOptions returns the options used by Parse.
func DefaultOptions() Options {
	return Options{Dialect: DialectInstructions}
}
