package state

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/gerunddev/mdrecipe/internal/recipe"
)

// FileState is the catalog entry of one recipe file
type FileState struct {
	ID    string `json:"id"`
	MTime int64  `json:"mtime"`
	Hash  string `json:"hash"`

	Name        string   `json:"name,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Ingredients int      `json:"ingredients"`
	Steps       int      `json:"steps"`
	// Error is the parse error of the last scan, empty when the file parsed
	Error string `json:"error,omitempty"`
}

// OK reports whether the file parsed on its last scan
func (f *FileState) OK() bool {
	return f.Error == ""
}

// State is the recipe catalog. It is not safe for concurrent use.
type State struct {
	Files map[string]*FileState `json:"files"`
	IDMap map[string]string     `json:"id_map"` // catalog id -> path
}

// NewState creates a new empty state
func NewState() *State {
	return &State{
		Files: make(map[string]*FileState),
		IDMap: make(map[string]string),
	}
}

// Load reads state from the state file
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewState(), nil
		}
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state: %w", err)
	}

	if state.Files == nil {
		state.Files = make(map[string]*FileState)
	}
	if state.IDMap == nil {
		state.IDMap = make(map[string]string)
	}

	return &state, nil
}

// Save writes state to the state file
func (s *State) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// ComputeHash computes SHA256 hash of a file
func ComputeHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return formatHash(h.Sum(nil)), nil
}

// HashBytes computes the SHA256 hash of content already in memory
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return formatHash(sum[:])
}

func formatHash(sum []byte) string {
	return fmt.Sprintf("sha256:%x", sum)
}

// HasChanged checks if a file has changed since it was last scanned
// Uses hybrid mtime + hash approach
func (s *State) HasChanged(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	mtime := info.ModTime().Unix()

	fileState, exists := s.Files[path]
	if !exists {
		// New file
		return true, nil
	}

	// Fast path: check mtime first
	if mtime == fileState.MTime {
		return false, nil
	}

	// mtime changed, compute hash to check for actual content changes
	hash, err := ComputeHash(path)
	if err != nil {
		return false, err
	}

	return hash != fileState.Hash, nil
}

// Record stores a successfully parsed recipe. data is the content that was
// parsed.
func (s *State) Record(path string, data []byte, r *recipe.Recipe) error {
	entry, err := s.entry(path, data)
	if err != nil {
		return err
	}
	entry.Name = r.Name
	entry.Tags = r.Metadata.Tags
	entry.Ingredients = len(r.Ingredients.Lines())
	entry.Steps = r.Instructions.Count()
	entry.Error = ""
	return nil
}

// RecordFailure stores the parse error of a recipe file so the file is not
// parsed again until it changes.
func (s *State) RecordFailure(path string, data []byte, parseErr error) error {
	entry, err := s.entry(path, data)
	if err != nil {
		return err
	}
	entry.Name = ""
	entry.Tags = nil
	entry.Ingredients = 0
	entry.Steps = 0
	entry.Error = parseErr.Error()
	return nil
}

func (s *State) entry(path string, data []byte) (*FileState, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	id := s.IDFor(path)
	entry := s.Files[path]
	if entry == nil {
		entry = &FileState{ID: id}
		s.Files[path] = entry
	}
	entry.MTime = info.ModTime().Unix()
	entry.Hash = HashBytes(data)
	return entry, nil
}

// IDFor returns the catalog id of path, assigning a new one on first use
func (s *State) IDFor(path string) string {
	if entry, exists := s.Files[path]; exists && entry.ID != "" {
		return entry.ID
	}
	for id, p := range s.IDMap {
		if p == path {
			return id
		}
	}
	id := uuid.New().String()
	s.IDMap[id] = path
	return id
}

// Lookup returns the path registered under a catalog id
func (s *State) Lookup(id string) (string, bool) {
	path, ok := s.IDMap[id]
	return path, ok
}

// Forget removes a file from the catalog
func (s *State) Forget(path string) {
	if entry, exists := s.Files[path]; exists {
		delete(s.IDMap, entry.ID)
	}
	delete(s.Files, path)
}

// Paths returns the cataloged paths in sorted order
func (s *State) Paths() []string {
	paths := make([]string, 0, len(s.Files))
	for path := range s.Files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// GetMTime returns the modification time recorded for a file
func (s *State) GetMTime(path string) time.Time {
	if fileState, exists := s.Files[path]; exists {
		return time.Unix(fileState.MTime, 0)
	}
	return time.Time{}
}
