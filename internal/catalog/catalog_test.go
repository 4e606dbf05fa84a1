package catalog

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gerunddev/mdrecipe/internal/config"
	"github.com/gerunddev/mdrecipe/internal/logger"
	"github.com/gerunddev/mdrecipe/internal/markdown"
	"github.com/gerunddev/mdrecipe/internal/state"
)

const pancakes = `# Pancakes
## Ingredients
- Flour, 200 g
- Milk, 300 mL
## Instructions
- Mix the *Flour* and the *Milk*.
- Fry for **2 min** per side.
`

const broken = `# Broken
## Instructions
- Nothing to cook with.
`

func setup(t *testing.T) (*config.Config, *state.State) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		RecipeDir: dir,
		LogFile:   filepath.Join(dir, "mdrecipe.log"),
		Workers:   2,
	}
	return cfg, state.NewState()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestScan(t *testing.T) {
	cfg, st := setup(t)
	good := filepath.Join(cfg.RecipeDir, "pancakes.md")
	bad := filepath.Join(cfg.RecipeDir, "sub", "broken.md")
	writeFile(t, good, pancakes)
	writeFile(t, bad, broken)
	writeFile(t, filepath.Join(cfg.RecipeDir, "notes.txt"), "not a recipe")

	scanner, err := NewScanner(cfg, st)
	if err != nil {
		t.Fatalf("NewScanner failed: %v", err)
	}

	var logBuf bytes.Buffer
	scanner.SetLogger(logger.New(&logBuf))

	result, err := scanner.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(result.Parsed) != 1 || result.Parsed[0] != good {
		t.Errorf("Parsed = %v, want [%s]", result.Parsed, good)
	}
	if len(result.Failures) != 1 || result.Failures[0].Path != bad {
		t.Fatalf("Failures = %v, want one failure for %s", result.Failures, bad)
	}

	var parseErr *markdown.Error
	if !errors.As(result.Failures[0].Err, &parseErr) {
		t.Errorf("failure should carry a *markdown.Error, got %T", result.Failures[0].Err)
	}

	entry := st.Files[good]
	if entry == nil || entry.Name != "Pancakes" || entry.Steps != 2 || entry.Ingredients != 2 {
		t.Errorf("catalog entry = %+v, want the pancakes summary", entry)
	}
	if failed := st.Files[bad]; failed == nil || failed.OK() {
		t.Errorf("broken recipe should be recorded with its error, got %+v", failed)
	}

	logOutput := logBuf.String()
	if !strings.Contains(logOutput, "recipe parsed") {
		t.Errorf("Expected 'recipe parsed' log message, got: %s", logOutput)
	}
	if !strings.Contains(logOutput, "recipe rejected") {
		t.Errorf("Expected 'recipe rejected' log message, got: %s", logOutput)
	}
	if !strings.Contains(result.String(), "1 recipes parsed") {
		t.Errorf("String() = %q", result.String())
	}
}

func TestScanSkipsUnchanged(t *testing.T) {
	cfg, st := setup(t)
	writeFile(t, filepath.Join(cfg.RecipeDir, "pancakes.md"), pancakes)

	scanner, err := NewScanner(cfg, st)
	if err != nil {
		t.Fatalf("NewScanner failed: %v", err)
	}

	if _, err := scanner.Scan(context.Background()); err != nil {
		t.Fatalf("first Scan failed: %v", err)
	}
	result, err := scanner.Scan(context.Background())
	if err != nil {
		t.Fatalf("second Scan failed: %v", err)
	}
	if len(result.Parsed) != 0 || result.Unchanged != 1 {
		t.Errorf("second scan parsed %d and skipped %d, want 0 and 1", len(result.Parsed), result.Unchanged)
	}
}

func TestScanForgetsDeletedFiles(t *testing.T) {
	cfg, st := setup(t)
	path := filepath.Join(cfg.RecipeDir, "pancakes.md")
	writeFile(t, path, pancakes)

	scanner, err := NewScanner(cfg, st)
	if err != nil {
		t.Fatalf("NewScanner failed: %v", err)
	}
	if _, err := scanner.Scan(context.Background()); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	id := st.Files[path].ID

	if err := os.Remove(path); err != nil {
		t.Fatalf("Failed to remove file: %v", err)
	}
	result, err := scanner.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if result.Removed != 1 {
		t.Errorf("Removed = %d, want 1", result.Removed)
	}
	if _, ok := st.Lookup(id); ok {
		t.Error("deleted recipe should leave the catalog")
	}
}

func TestScanHonoursDialect(t *testing.T) {
	cfg, st := setup(t)
	cfg.Dialect = "steps"
	path := filepath.Join(cfg.RecipeDir, "toast.md")
	writeFile(t, path, "# Toast\n## Ingredients\n- Bread, 2\n## Steps\n- Toast it.\n")

	scanner, err := NewScanner(cfg, st)
	if err != nil {
		t.Fatalf("NewScanner failed: %v", err)
	}
	result, err := scanner.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(result.Parsed) != 1 {
		t.Errorf("Parsed = %v, failures = %v", result.Parsed, result.Failures)
	}
}

func TestNewScannerRejectsBadDialect(t *testing.T) {
	cfg, st := setup(t)
	cfg.Dialect = "method"
	if _, err := NewScanner(cfg, st); err == nil {
		t.Error("NewScanner should reject an unknown dialect")
	}
}

func TestScanCanceled(t *testing.T) {
	cfg, st := setup(t)
	for _, name := range []string{"a.md", "b.md", "c.md"} {
		writeFile(t, filepath.Join(cfg.RecipeDir, name), pancakes)
	}

	scanner, err := NewScanner(cfg, st)
	if err != nil {
		t.Fatalf("NewScanner failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := scanner.Scan(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Scan error = %v, want context.Canceled", err)
	}
	if result == nil || len(result.Parsed) != 0 {
		t.Errorf("a canceled scan should parse nothing, got %+v", result)
	}
}

func TestScanMissingDirectory(t *testing.T) {
	cfg, st := setup(t)
	cfg.RecipeDir = filepath.Join(cfg.RecipeDir, "missing")

	scanner, err := NewScanner(cfg, st)
	if err != nil {
		t.Fatalf("NewScanner failed: %v", err)
	}
	if _, err := scanner.Scan(context.Background()); err == nil {
		t.Error("Scan should fail when the recipe directory does not exist")
	}
}

func TestScanDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	writeFile(t, filepath.Join(tmpDir, "soup.md"), "test")
	writeFile(t, filepath.Join(tmpDir, "salad.md"), "test")
	writeFile(t, filepath.Join(tmpDir, "notes.txt"), "test")
	writeFile(t, filepath.Join(tmpDir, "desserts", "cake.md"), "test")
	writeFile(t, filepath.Join(tmpDir, "drafts", "idea.md"), "test")
	writeFile(t, filepath.Join(tmpDir, "README.md"), "test")

	tests := []struct {
		name     string
		exclude  []string
		expected int
	}{
		{"no exclusions", []string{}, 5},
		{"exclude directory", []string{"drafts"}, 4},
		{"exclude by base name", []string{"README.md"}, 4},
		{"exclude by relative path", []string{"desserts/*.md"}, 4},
		{"exclude several", []string{"drafts", "README.md"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := ScanDirectory(tmpDir, RecipeExt, tt.exclude)
			if err != nil {
				t.Fatalf("ScanDirectory failed: %v", err)
			}
			if len(files) != tt.expected {
				t.Errorf("Expected %d recipe files, got %d: %v", tt.expected, len(files), files)
			}
		})
	}
}
