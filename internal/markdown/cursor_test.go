package markdown

import (
	"errors"
	"testing"

	"github.com/yuin/goldmark/ast"
)

func parseDoc(t *testing.T, content string) *Document {
	t.Helper()
	doc, err := Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return doc
}

func TestCursorNext(t *testing.T) {
	doc := parseDoc(t, "# One\n\ntext\n")
	cur := NewCursor(doc.Blocks())

	n, err := cur.Next()
	if err != nil {
		t.Fatalf("Next() failed: %v", err)
	}
	if n.Kind() != ast.KindHeading {
		t.Errorf("first node = %s, want heading", n.Kind())
	}

	n, err = cur.Next()
	if err != nil {
		t.Fatalf("Next() failed: %v", err)
	}
	if n.Kind() != ast.KindParagraph {
		t.Errorf("second node = %s, want paragraph", n.Kind())
	}

	if !cur.Done() {
		t.Error("cursor should be exhausted")
	}
	_, err = cur.Next()
	if !errors.Is(err, ErrEOF) {
		t.Errorf("Next() on exhausted cursor = %v, want ErrEOF", err)
	}
}

func TestCursorConsumeToNextHeading(t *testing.T) {
	content := `# Title
## First
para

- item

### Nested
## Second
tail
`
	doc := parseDoc(t, content)
	cur := NewCursor(doc.Blocks())

	if _, err := cur.Next(); err != nil { // # Title
		t.Fatal(err)
	}
	if _, err := cur.Next(); err != nil { // ## First
		t.Fatal(err)
	}

	section := cur.ConsumeToNextHeading(2)
	kinds := []ast.NodeKind{ast.KindParagraph, ast.KindList, ast.KindHeading}
	if len(section) != len(kinds) {
		t.Fatalf("ConsumeToNextHeading(2) returned %d nodes, want %d", len(section), len(kinds))
	}
	for i, k := range kinds {
		if section[i].Kind() != k {
			t.Errorf("node %d = %s, want %s", i, section[i].Kind(), k)
		}
	}

	next, ok := cur.Peek()
	if !ok {
		t.Fatal("Peek() found nothing")
	}
	if h, ok := next.(*ast.Heading); !ok || h.Level != 2 {
		t.Errorf("cursor should stop at the level 2 heading, got %s", KindName(next))
	}

	if _, err := cur.Next(); err != nil { // ## Second
		t.Fatal(err)
	}
	rest := cur.ConsumeToNextHeading(2)
	if len(rest) != 1 {
		t.Errorf("ConsumeToNextHeading(2) without heading returned %d nodes, want 1", len(rest))
	}
	if !cur.Done() {
		t.Error("cursor should be exhausted")
	}
	if got := cur.ConsumeToNextHeading(2); len(got) != 0 {
		t.Errorf("ConsumeToNextHeading on exhausted cursor returned %d nodes", len(got))
	}
	if got := cur.Remaining(); len(got) != 0 {
		t.Errorf("Remaining() = %d nodes, want 0", len(got))
	}
}

func TestCursorEmpty(t *testing.T) {
	cur := NewCursor(nil)
	if _, ok := cur.Peek(); ok {
		t.Error("Peek() on empty cursor should report nothing")
	}
	if got := cur.ConsumeToNextHeading(1); len(got) != 0 {
		t.Errorf("ConsumeToNextHeading on empty cursor returned %d nodes", len(got))
	}
	if _, err := cur.Next(); !errors.Is(err, ErrEOF) {
		t.Errorf("Next() = %v, want ErrEOF", err)
	}
}
