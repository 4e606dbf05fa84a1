package markdown

import "github.com/yuin/goldmark/ast"

// Cursor walks a sequence of block nodes front to back. Nodes are never
// revisited.
type Cursor struct {
	nodes []ast.Node
	idx   int
}

// NewCursor returns a cursor positioned at the first of nodes.
func NewCursor(nodes []ast.Node) *Cursor {
	return &Cursor{nodes: nodes}
}

// Next returns the node at the cursor and advances past it. It fails with an
// error wrapping ErrEOF once every node has been consumed.
func (c *Cursor) Next() (ast.Node, error) {
	if c.idx >= len(c.nodes) {
		return nil, &Error{Err: ErrEOF}
	}
	n := c.nodes[c.idx]
	c.idx++
	return n, nil
}

// Peek returns the node at the cursor without consuming it.
func (c *Cursor) Peek() (ast.Node, bool) {
	if c.idx >= len(c.nodes) {
		return nil, false
	}
	return c.nodes[c.idx], true
}

// ConsumeToNextHeading consumes and returns the nodes from the cursor up to,
// but not including, the next heading of the given level. Without such a
// heading every remaining node is returned.
func (c *Cursor) ConsumeToNextHeading(level int) []ast.Node {
	start := c.idx
	for c.idx < len(c.nodes) {
		if h, ok := c.nodes[c.idx].(*ast.Heading); ok && h.Level == level {
			break
		}
		c.idx++
	}
	return c.nodes[start:c.idx]
}

// Remaining returns the unconsumed nodes without advancing.
func (c *Cursor) Remaining() []ast.Node {
	return c.nodes[c.idx:]
}

// Done reports whether every node has been consumed.
func (c *Cursor) Done() bool {
	return c.idx >= len(c.nodes)
}
