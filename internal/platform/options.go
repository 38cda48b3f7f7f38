package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/diary/pkg/core"
)

// options holds the internal configuration for the diary service.
type options struct {
	repository  core.Repository
	logger      *slog.Logger
	adapter     string
	config      map[string]interface{}
	serializers map[string]any
}

// Option defines a functional option for configuring the diary service.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		adapter:     "fs",
		config:      make(map[string]interface{}),
		serializers: make(map[string]any),
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithSerializer registers a custom serializer for a file extension.
// s must implement the adapter's Serializer interface (fs.Serializer);
// the check happens in Init.
func WithSerializer(ext string, s any) Option {
	return func(o *options) {
		o.serializers[ext] = s
	}
}

// WithMustExist requires the journal root to exist already.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithLogger sets the logger for the service and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository injects a storage adapter. The filesystem adapter is
// skipped when one is provided.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithAdapter selects the storage adapter by name. Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithCacheDir names the hidden directory below the root that holds the
// listing cache. Defaults to ".diary".
func WithCacheDir(name string) Option {
	return func(o *options) {
		o.config["system_dir"] = name
	}
}

// WithStrict makes the JSON and YAML serializers reject unknown fields.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.config["strict"] = strict
	}
}

// WithWatcherErrorHandler registers a callback for errors raised inside the
// watch loop, which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}

// WithDebounce sets the quiet period used to collapse bursts of file
// notifications into one event.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.config["debounce"] = d
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Save returns ErrReadOnly.
// 2. The root is never created.
// 3. Cache updates are not persisted to disk.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}
