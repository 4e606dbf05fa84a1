// Package catalog indexes a directory of recipe files. Changed files are
// parsed concurrently and the outcome of each is kept in the catalog state.
package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gerunddev/mdrecipe/internal/config"
	"github.com/gerunddev/mdrecipe/internal/logger"
	"github.com/gerunddev/mdrecipe/internal/recipe"
	"github.com/gerunddev/mdrecipe/internal/state"
)

// RecipeExt is the extension of recipe files
const RecipeExt = ".md"

// Scanner keeps the catalog state in step with the recipe directory
type Scanner struct {
	config *config.Config
	state  *state.State
	opts   recipe.Options
	logger *logger.Logger

	// mu guards state and the result of the scan in progress
	mu sync.Mutex
}

// NewScanner creates a new scanner instance
func NewScanner(cfg *config.Config, st *state.State) (*Scanner, error) {
	opts, err := cfg.ParseOptions()
	if err != nil {
		return nil, err
	}
	return &Scanner{
		config: cfg,
		state:  st,
		opts:   opts,
		logger: logger.Discard(),
	}, nil
}

// SetLogger replaces the scanner's logger
func (s *Scanner) SetLogger(l *logger.Logger) {
	s.logger = l
}

// Failure is a recipe file that could not be parsed or read
type Failure struct {
	Path string
	Err  error
}

// ScanResult represents the result of a scan
type ScanResult struct {
	Parsed    []string
	Unchanged int
	Removed   int
	Failures  []Failure
	StartTime time.Time
	EndTime   time.Time
}

// Scan walks the recipe directory, parses every new or changed file and
// drops catalog entries whose file is gone. A canceled context stops the
// scan; entries recorded so far are kept.
func (s *Scanner) Scan(ctx context.Context) (*ScanResult, error) {
	result := &ScanResult{
		StartTime: time.Now(),
	}
	s.logger.ScanStarted(s.config.RecipeDir, s.config.Workers)

	files, err := ScanDirectory(s.config.RecipeDir, RecipeExt, s.config.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", s.config.RecipeDir, err)
	}

	result.Removed = s.forgetMissing(files)

	var changed []string
	for _, path := range files {
		ok, err := s.state.HasChanged(path)
		if err != nil {
			s.logger.FileError(path, err)
			result.Failures = append(result.Failures, Failure{Path: path, Err: err})
			continue
		}
		if !ok {
			s.logger.Skipped(path, "unchanged")
			result.Unchanged++
			continue
		}
		changed = append(changed, path)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for _, path := range changed {
		path := path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.scanFile(path, result)
			return nil
		})
	}
	err = g.Wait()

	sort.Strings(result.Parsed)
	sort.Slice(result.Failures, func(i, j int) bool {
		return result.Failures[i].Path < result.Failures[j].Path
	})
	result.EndTime = time.Now()
	s.logger.ScanCompleted(len(result.Parsed), result.Unchanged, len(result.Failures), result.EndTime.Sub(result.StartTime))

	return result, err
}

func (s *Scanner) scanFile(path string, result *ScanResult) {
	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.FileError(path, err)
		s.mu.Lock()
		result.Failures = append(result.Failures, Failure{Path: path, Err: err})
		s.mu.Unlock()
		return
	}

	r, parseErr := recipe.ParseWithOptions(data, s.opts)

	s.mu.Lock()
	defer s.mu.Unlock()

	if parseErr != nil {
		s.logger.ParseFailed(path, parseErr)
		result.Failures = append(result.Failures, Failure{Path: path, Err: parseErr})
		if err := s.state.RecordFailure(path, data, parseErr); err != nil {
			s.logger.StateError("record failure", err)
		}
		return
	}

	s.logger.RecipeParsed(path, r.Name, len(r.Ingredients.Lines()), r.Instructions.Count())
	result.Parsed = append(result.Parsed, path)
	if err := s.state.Record(path, data, r); err != nil {
		s.logger.StateError("record", err)
	}
}

// forgetMissing drops entries whose file is no longer part of the scan
func (s *Scanner) forgetMissing(files []string) int {
	present := make(map[string]bool, len(files))
	for _, path := range files {
		present[path] = true
	}

	removed := 0
	for _, path := range s.state.Paths() {
		if present[path] {
			continue
		}
		s.state.Forget(path)
		s.logger.Forgotten(path)
		removed++
	}
	return removed
}

// ScanDirectory scans a directory for files with given extension, skipping
// any file or directory that matches one of the exclude patterns. Patterns
// are matched against both the base name and the path relative to dir.
func ScanDirectory(dir string, ext string, exclude []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != dir && isExcluded(dir, path, exclude) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.IsDir() && filepath.Ext(path) == ext {
			files = append(files, path)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

func isExcluded(root, path string, patterns []string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	base := filepath.Base(path)
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// String returns a human-readable summary of the scan result
func (r *ScanResult) String() string {
	duration := r.EndTime.Sub(r.StartTime)
	return fmt.Sprintf(
		"Scan complete: %d recipes parsed, %d unchanged, %d removed, %d failed (took %v)",
		len(r.Parsed),
		r.Unchanged,
		r.Removed,
		len(r.Failures),
		duration.Round(time.Millisecond),
	)
}
