package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Service handles the business logic for journals.
type Service struct {
	repo   Repository
	logger *slog.Logger

	mu    sync.RWMutex
	loads int
	saves int
}

// NewService creates a new Service. A nil logger discards output.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// Create returns a new, empty journal. Nothing is persisted until Save.
func (s *Service) Create(name string) *Document {
	return NewDocument(name)
}

// Open loads the journal stored at path.
func (s *Service) Open(ctx context.Context, path string) (*Document, error) {
	if path == "" {
		return nil, errors.New("journal path cannot be empty")
	}

	doc, err := s.repo.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.loads++
	s.mu.Unlock()

	s.logger.Debug("journal opened", "path", path, "name", doc.Name(), "entries", doc.Len())
	return doc, nil
}

// Save persists doc at path.
func (s *Service) Save(ctx context.Context, doc *Document, path string) error {
	if path == "" {
		return errors.New("journal path cannot be empty")
	}
	if doc == nil {
		return errors.New("journal cannot be nil")
	}

	if err := s.repo.Save(ctx, doc, path); err != nil {
		return err
	}

	s.mu.Lock()
	s.saves++
	s.mu.Unlock()

	s.logger.Debug("journal saved", "path", path, "entries", doc.Len())
	return nil
}

// NewSession starts an editing session over doc.
func (s *Service) NewSession(doc *Document, opts ...SessionOption) *Session {
	return NewSession(doc, opts...)
}

// List summarizes the journals matching pattern, if the repository can list.
func (s *Service) List(ctx context.Context, pattern string) ([]Summary, error) {
	l, ok := s.repo.(Lister)
	if !ok {
		return nil, fmt.Errorf("list: %w", ErrUnsupported)
	}
	return l.List(ctx, pattern)
}

// Watch observes changes to the journal at path if the repository supports it.
func (s *Service) Watch(ctx context.Context, path string) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, fmt.Errorf("watch: %w", ErrUnsupported)
	}
	return w.Watch(ctx, path)
}
