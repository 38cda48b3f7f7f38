package core

import (
	"time"

	"github.com/aretw0/diary/pkg/editbuf"
)

// Session is the single active editing session over a Document.
//
// It owns at most one live buffer. Nothing reaches the Document until Commit
// succeeds, so Cancel is always safe.
type Session struct {
	doc      *Document
	buf      *editbuf.Buffer
	target   int
	revising bool
	clock    func() time.Time
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithClock overrides the time source used to stamp commits.
func WithClock(clock func() time.Time) SessionOption {
	return func(s *Session) {
		s.clock = clock
	}
}

// NewSession starts an idle session over doc.
func NewSession(doc *Document, opts ...SessionOption) *Session {
	s := &Session{doc: doc, target: -1, clock: Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Document returns the journal this session edits.
func (s *Session) Document() *Document { return s.doc }

// Buffer returns the live buffer, or nil when idle.
func (s *Session) Buffer() *editbuf.Buffer { return s.buf }

// Editing reports whether a buffer is live.
func (s *Session) Editing() bool { return s.buf != nil }

// Target returns the entry being revised. revising is false while composing a
// new entry or when idle.
func (s *Session) Target() (index int, revising bool) {
	return s.target, s.revising
}

// Compose starts a new entry with an empty buffer.
func (s *Session) Compose() (*editbuf.Buffer, error) {
	if s.buf != nil {
		return nil, ErrAlreadyEditing
	}
	s.buf = editbuf.New()
	s.target = -1
	s.revising = false
	return s.buf, nil
}

// Revise starts a revision of entry i, seeding the buffer with its current
// text and placing the cursor at the end.
func (s *Session) Revise(i int) (*editbuf.Buffer, error) {
	if s.buf != nil {
		return nil, ErrAlreadyEditing
	}
	e, err := s.doc.Entry(i)
	if err != nil {
		return nil, err
	}
	s.buf = editbuf.FromText(e.Current().Text())
	s.target = i
	s.revising = true
	return s.buf, nil
}

// Commit freezes the buffer into a commit, trimming trailing whitespace
// first, and returns the storage index of the affected entry.
func (s *Session) Commit() (int, error) {
	if s.buf == nil {
		return -1, ErrNotEditing
	}
	s.buf.TrimTrailingSpace()
	text := s.buf.String()
	now := s.clock()

	idx := s.target
	if s.revising {
		if err := s.doc.ReviseAt(idx, text, now); err != nil {
			return -1, err
		}
	} else {
		idx = s.doc.AppendAt(text, now)
	}

	s.reset()
	return idx, nil
}

// Cancel discards the live buffer without touching the Document.
func (s *Session) Cancel() {
	s.reset()
}

// Idle runs buffer maintenance between keystrokes.
func (s *Session) Idle() {
	if s.buf != nil {
		s.buf.Compact()
	}
}

func (s *Session) reset() {
	s.buf = nil
	s.target = -1
	s.revising = false
}
