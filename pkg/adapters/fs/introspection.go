package fs

import (
	"sort"
	"time"

	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path          string     `json:"path"`
	SystemDir     string     `json:"system_dir"`
	CacheSize     int        `json:"cache_size"`
	ReadOnly      bool       `json:"read_only"`
	Strict        bool       `json:"strict"`
	Serializers   []string   `json:"serializers"`
	Watchers      int        `json:"watchers"`
	LastListed    *time.Time `json:"last_listed,omitempty"`
	LastSavedPath string     `json:"last_saved_path,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	serializers := make([]string, 0, len(r.serializers))
	for ext := range r.serializers {
		serializers = append(serializers, ext)
	}
	sort.Strings(serializers)

	return RepositoryState{
		Path:          r.Path,
		SystemDir:     r.config.SystemDir,
		CacheSize:     r.cache.Len(),
		ReadOnly:      r.readOnly,
		Strict:        r.config.Strict,
		Serializers:   serializers,
		Watchers:      r.watchers,
		LastListed:    r.lastListed,
		LastSavedPath: r.lastSavedPath,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "fs-repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)

func (r *Repository) setWatching(delta int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watchers += delta
}
