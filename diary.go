package diary

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/diary/internal/platform"
	"github.com/aretw0/diary/pkg/core"
)

// --- Types ---

// Document is a named, ordered collection of entries.
type Document = core.Document

// Entry is the append-only revision history of one journal entry.
type Entry = core.Entry

// Commit is one immutable timestamped version of an entry's text.
type Commit = core.Commit

// Session drives composing and revising entries through an edit buffer.
type Session = core.Session

// Service is the application service over a storage adapter.
type Service = core.Service

// Summary describes a stored journal without its contents.
type Summary = core.Summary

// --- Configuration ---

// Option defines a functional option for configuring the diary service.
type Option = platform.Option

// WithMustExist requires the journal root to exist already.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithAdapter allows specifying the storage adapter to use by name.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithSerializer registers a custom serializer for a file extension.
func WithSerializer(ext string, s any) Option {
	return platform.WithSerializer(ext, s)
}

// WithCacheDir names the hidden directory that holds the listing cache.
func WithCacheDir(name string) Option {
	return platform.WithCacheDir(name)
}

// WithStrict makes structured exports reject unknown fields.
func WithStrict(strict bool) Option {
	return platform.WithStrict(strict)
}

// WithReadOnly enables read-only mode.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithWatcherErrorHandler registers a callback for watch loop errors.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithDebounce sets the quiet period for change notifications.
func WithDebounce(d time.Duration) Option {
	return platform.WithDebounce(d)
}

// --- Factory ---

// New creates a new diary Service rooted at path.
func New(path string, opts ...Option) (*core.Service, error) {
	return platform.New(path, opts...)
}

// Init initializes a repository explicitly.
func Init(path string, opts ...Option) (core.Repository, error) {
	return platform.Init(path, opts...)
}

// --- Convenience ---

// Load opens a single journal file with the default filesystem adapter.
// Relative paths resolve against the working directory.
func Load(ctx context.Context, path string, opts ...Option) (*core.Document, error) {
	svc, err := New(".", append([]Option{WithMustExist(true)}, opts...)...)
	if err != nil {
		return nil, err
	}
	return svc.Open(ctx, path)
}

// Save writes doc to path with the default filesystem adapter.
func Save(ctx context.Context, doc *core.Document, path string, opts ...Option) error {
	svc, err := New(".", opts...)
	if err != nil {
		return err
	}
	return svc.Save(ctx, doc, path)
}

// FindRoot looks upwards from startDir for a directory holding a journal
// cache.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir, "")
}
