// Package recent keeps the list of most recently used journals.
//
// The list is a plain YAML file owned by the caller; nothing here is global.
package recent

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	diaryfs "github.com/aretw0/diary/pkg/adapters/fs"
)

// DefaultLimit is the number of paths kept before the oldest is dropped.
const DefaultLimit = 30

// List is an ordered set of journal paths, oldest first.
type List struct {
	Paths []string `yaml:"paths"`

	path  string
	limit int
}

// DefaultPath returns the per-user location of the recent list.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config dir: %w", err)
	}
	return filepath.Join(dir, "diary", "recent.yaml"), nil
}

// New returns an empty list that will be saved at path.
func New(path string) *List {
	return &List{path: path, limit: DefaultLimit}
}

// Load reads the list at path. A missing file yields an empty list.
func Load(path string) (*List, error) {
	l := New(path)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read recent list: %w", err)
	}
	if err := yaml.Unmarshal(data, l); err != nil {
		return nil, fmt.Errorf("invalid recent list %s: %w", path, err)
	}
	l.trim()
	return l, nil
}

// Path returns where the list is persisted.
func (l *List) Path() string { return l.path }

// SetLimit changes the cap. Values below one are ignored.
func (l *List) SetLimit(n int) {
	if n < 1 {
		return
	}
	l.limit = n
	l.trim()
}

// Touch records a use of path. A path already present keeps its place.
// It reports whether the list changed.
func (l *List) Touch(path string) bool {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if slices.Contains(l.Paths, path) {
		return false
	}
	l.Paths = append(l.Paths, path)
	l.trim()
	return true
}

// Newest returns the paths, most recent first.
func (l *List) Newest() []string {
	out := slices.Clone(l.Paths)
	slices.Reverse(out)
	return out
}

// Save writes the list atomically, creating its directory.
func (l *List) Save() error {
	if l.path == "" {
		return errors.New("recent list has no path")
	}
	data, err := yaml.Marshal(l)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	return diaryfs.WriteFileAtomic(l.path, data, 0644)
}

func (l *List) trim() {
	if over := len(l.Paths) - l.limit; over > 0 {
		l.Paths = slices.Delete(l.Paths, 0, over)
	}
}
