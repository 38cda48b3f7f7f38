package core

import "errors"

// Common errors.
var (
	ErrReadOnly = errors.New("repository is in read-only mode")

	// ErrEmptyHistory signals an Entry with no commits. The public API cannot
	// produce one; seeing it means a decoder was handed an empty entry.
	ErrEmptyHistory = errors.New("entry has no commits")

	ErrEntryNotFound  = errors.New("entry not found")
	ErrNotEditing     = errors.New("no edit in progress")
	ErrAlreadyEditing = errors.New("an edit is already in progress")
	ErrUnsupported    = errors.New("operation not supported by repository")
)
