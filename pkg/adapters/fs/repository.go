package fs

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/diary/pkg/core"
)

// DefaultPattern matches every native journal below the root.
const DefaultPattern = "**/*" + DefaultExt

// Repository implements core.Repository on the local filesystem.
type Repository struct {
	Path        string
	config      Config
	cache       *cache
	serializers map[string]Serializer
	readOnly    bool

	mu            sync.RWMutex
	watchers      int
	lastListed    *time.Time
	lastSavedPath string
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path         string // root directory; relative journal paths resolve against it
	MustExist    bool
	ReadOnly     bool
	Strict       bool
	Logger       *slog.Logger
	SystemDir    string        // e.g. ".diary", holds the summary cache
	Debounce     time.Duration // watcher quiet period, zero means 50ms
	ErrorHandler func(error)   // receives watcher runtime errors
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.SystemDir == "" {
		config.SystemDir = ".diary"
	}
	if config.Path == "" {
		config.Path = "."
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	return &Repository{
		Path:        config.Path,
		config:      config,
		cache:       newCache(config.Path, config.SystemDir),
		serializers: DefaultSerializers(config.Strict),
		readOnly:    config.ReadOnly,
	}
}

// RegisterSerializer adds or replaces the serializer for an extension.
func (r *Repository) RegisterSerializer(ext string, s Serializer) {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.serializers[strings.ToLower(ext)] = s
}

// Initialize checks or creates the root directory and loads the cache.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.config.MustExist || r.readOnly {
		info, err := os.Stat(r.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("journal root does not exist: %s", r.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("journal root is not a directory: %s", r.Path)
		}
	} else if err := os.MkdirAll(r.Path, 0755); err != nil {
		return fmt.Errorf("failed to create journal root: %w", err)
	}

	if err := r.cache.Load(); err != nil {
		r.config.Logger.Warn("ignoring unreadable cache", "path", r.cache.Path, "error", err)
	}
	return nil
}

// Load reads and decodes the journal at path. I/O errors are returned
// wrapped but intact, so errors.Is(err, fs.ErrNotExist) keeps working.
func (r *Repository) Load(ctx context.Context, path string) (*core.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	full := r.resolve(path)
	f, err := os.Open(full)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	defer f.Close()

	doc, err := r.serializerFor(full).Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse journal %s: %w", full, err)
	}

	if info, err := f.Stat(); err == nil {
		r.remember(full, doc, info.ModTime())
	}

	r.config.Logger.Debug("journal loaded", "path", full, "entries", doc.Len())
	return doc, nil
}

// Save encodes doc and atomically replaces the file at path.
func (r *Repository) Save(ctx context.Context, doc *core.Document, path string) error {
	if r.readOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	full := r.resolve(path)
	data, err := r.serializerFor(full).Serialize(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize journal: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}
	if err := WriteFileAtomic(full, data, 0644); err != nil {
		return fmt.Errorf("failed to write journal: %w", err)
	}

	if info, err := os.Stat(full); err == nil {
		r.remember(full, doc, info.ModTime())
		if err := r.cache.Save(); err != nil {
			r.config.Logger.Warn("failed to persist cache", "error", err)
		}
	}

	r.mu.Lock()
	r.lastSavedPath = full
	r.mu.Unlock()

	r.config.Logger.Debug("journal saved", "path", full, "bytes", len(data))
	return nil
}

// List summarizes every journal below the root whose slash-separated
// relative path matches pattern. An empty pattern means DefaultPattern.
//
// Unchanged files are served from the cache; files that fail to parse are
// logged and skipped.
func (r *Repository) List(ctx context.Context, pattern string) ([]core.Summary, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern: %q", pattern)
	}

	var out []core.Summary
	seen := make(map[string]bool)

	err := filepath.WalkDir(r.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != r.Path && (d.Name() == r.config.SystemDir || d.Name() == ".git") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), TempFilePrefix) {
			return nil
		}

		rel, err := filepath.Rel(r.Path, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		ok, err := doublestar.Match(pattern, rel)
		if err != nil || !ok {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		seen[rel] = true

		if s, hit := r.cache.Get(rel, info.ModTime()); hit {
			out = append(out, s)
			return nil
		}

		doc, err := r.Load(ctx, filepath.FromSlash(rel))
		if err != nil {
			r.config.Logger.Warn("skipping unreadable journal", "path", rel, "error", err)
			delete(seen, rel)
			return nil
		}
		out = append(out, core.Summarize(rel, doc))
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.cache.Prune(seen)
	if !r.readOnly {
		if err := r.cache.Save(); err != nil {
			r.config.Logger.Warn("failed to persist cache", "error", err)
		}
	}

	now := time.Now()
	r.mu.Lock()
	r.lastListed = &now
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (r *Repository) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(r.Path, path)
}

func (r *Repository) serializerFor(path string) Serializer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.serializers[strings.ToLower(filepath.Ext(path))]; ok {
		return s
	}
	return r.serializers[DefaultExt]
}

// remember caches the summary of a journal that lives below the root.
func (r *Repository) remember(full string, doc *core.Document, mtime time.Time) {
	rel, err := filepath.Rel(r.Path, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return
	}
	rel = filepath.ToSlash(rel)
	r.cache.Set(rel, core.Summarize(rel, doc), mtime)
}

var _ core.Repository = (*Repository)(nil)
var _ core.Lister = (*Repository)(nil)
var _ core.Watchable = (*Repository)(nil)
