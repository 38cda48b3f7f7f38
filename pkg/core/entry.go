package core

import (
	"fmt"
	"time"
)

// Now is the default clock for new commits, at commit resolution.
func Now() time.Time {
	return Resolution(time.Now())
}

// Resolution reduces t to what a commit stores: whole seconds, in a zone
// whose UTC offset is a whole number of minutes. The instant is kept to
// the second; only sub-minute zone offsets are moved to the nearest minute
// offset towards zero, which changes the wall clock but not the instant.
func Resolution(t time.Time) time.Time {
	t = t.Truncate(time.Second)
	if _, offset := t.Zone(); offset%60 != 0 {
		t = t.In(time.FixedZone("", offset-offset%60))
	}
	return t
}

// Commit is one immutable, timestamped snapshot of an entry's text.
type Commit struct {
	time time.Time
	text string
}

// NewCommit builds a commit stamped Resolution(t). Decoders use it to
// rebuild history from disk.
func NewCommit(t time.Time, text string) Commit {
	return Commit{time: Resolution(t), text: text}
}

// Time returns when the commit was made.
func (c Commit) Time() time.Time { return c.time }

// Text returns the committed text.
func (c Commit) Text() string { return c.text }

// Equal reports whether both commits hold the same instant and text.
func (c Commit) Equal(o Commit) bool {
	return c.time.Equal(o.time) && c.text == o.text
}

func (c Commit) String() string {
	return fmt.Sprintf("%s | %s", c.time.Format(time.RFC3339), c.text)
}

// Entry is one journal item: an append-only history of commits.
//
// The first commit is held apart from the revisions, so an Entry always has
// at least one commit.
type Entry struct {
	head      Commit
	revisions []Commit
}

// NewEntry creates an entry whose sole commit holds text, stamped now.
func NewEntry(text string) Entry {
	return NewEntryAt(text, Now())
}

// NewEntryAt creates an entry whose sole commit holds text, stamped t.
func NewEntryAt(text string, t time.Time) Entry {
	return Entry{head: NewCommit(t, text)}
}

// EntryFromHistory rebuilds an entry from commits ordered oldest first.
func EntryFromHistory(commits []Commit) (Entry, error) {
	if len(commits) == 0 {
		return Entry{}, ErrEmptyHistory
	}
	e := Entry{head: commits[0]}
	if len(commits) > 1 {
		e.revisions = append([]Commit(nil), commits[1:]...)
	}
	return e, nil
}

// Revise appends a new commit holding text, stamped now.
func (e *Entry) Revise(text string) {
	e.ReviseAt(text, Now())
}

// ReviseAt appends a new commit holding text, stamped t. Earlier commits are
// never touched.
func (e *Entry) ReviseAt(text string, t time.Time) {
	e.revisions = append(e.revisions, NewCommit(t, text))
}

// Current returns the latest commit.
func (e Entry) Current() Commit {
	if n := len(e.revisions); n > 0 {
		return e.revisions[n-1]
	}
	return e.head
}

// Created returns the timestamp of the first commit.
func (e Entry) Created() time.Time { return e.head.time }

// Modified returns the timestamp of the latest commit.
func (e Entry) Modified() time.Time { return e.Current().time }

// Len returns the number of commits in the history.
func (e Entry) Len() int { return 1 + len(e.revisions) }

// History returns a copy of every commit, oldest first.
func (e Entry) History() []Commit {
	out := make([]Commit, 0, e.Len())
	out = append(out, e.head)
	return append(out, e.revisions...)
}

// Equal reports whether both entries have identical histories.
func (e Entry) Equal(o Entry) bool {
	if e.Len() != o.Len() || !e.head.Equal(o.head) {
		return false
	}
	for i := range e.revisions {
		if !e.revisions[i].Equal(o.revisions[i]) {
			return false
		}
	}
	return true
}

// clone detaches the revision slice so appends on the copy never alias the
// original's backing array.
func (e Entry) clone() Entry {
	if len(e.revisions) > 0 {
		e.revisions = append([]Commit(nil), e.revisions...)
	}
	return e
}
