package core

import "context"

// Repository defines the contract for loading and saving journals.
// Adhering to this interface keeps the core independent of the underlying
// storage mechanism.
type Repository interface {
	// Load reads and decodes the journal stored at path.
	Load(ctx context.Context, path string) (*Document, error)

	// Save encodes doc and persists it at path, replacing any previous content.
	Save(ctx context.Context, doc *Document, path string) error

	// Initialize ensures the underlying storage is ready (e.g. directories).
	Initialize(ctx context.Context) error
}

// Lister is implemented by repositories that can enumerate stored journals.
type Lister interface {
	// List returns a summary of every journal matching the glob pattern.
	List(ctx context.Context, pattern string) ([]Summary, error)
}

// Watchable is implemented by repositories that can report external changes.
type Watchable interface {
	// Watch emits an Event whenever the journal at path changes on disk.
	// The channel is closed when ctx is cancelled.
	Watch(ctx context.Context, path string) (<-chan Event, error)
}
