package core

import (
	"fmt"
	"time"
)

// Document is the central entity of the domain: a named journal holding its
// entries in creation order. Creation order is what gets persisted; any
// newest-first presentation is a read-time view.
type Document struct {
	name    string
	entries []Entry
}

// IndexedEntry pairs an entry with its storage index.
type IndexedEntry struct {
	Index int
	Entry Entry
}

// NewDocument creates an empty journal.
func NewDocument(name string) *Document {
	return &Document{name: name}
}

func (d *Document) Name() string { return d.name }

func (d *Document) SetName(name string) { d.name = name }

// Len returns the number of entries.
func (d *Document) Len() int { return len(d.entries) }

// Append adds a new entry holding text, stamped now, and returns its index.
func (d *Document) Append(text string) int {
	return d.AppendEntry(NewEntry(text))
}

// AppendAt adds a new entry holding text, stamped t, and returns its index.
func (d *Document) AppendAt(text string, t time.Time) int {
	return d.AppendEntry(NewEntryAt(text, t))
}

// AppendEntry adds e to the end of the journal and returns its index.
func (d *Document) AppendEntry(e Entry) int {
	d.entries = append(d.entries, e.clone())
	return len(d.entries) - 1
}

// Entry returns a copy of the entry at index i.
func (d *Document) Entry(i int) (Entry, error) {
	if i < 0 || i >= len(d.entries) {
		return Entry{}, fmt.Errorf("%w: index %d of %d", ErrEntryNotFound, i, len(d.entries))
	}
	return d.entries[i].clone(), nil
}

// Revise appends a commit holding text, stamped now, to the entry at index i.
func (d *Document) Revise(i int, text string) error {
	return d.ReviseAt(i, text, Now())
}

// ReviseAt appends a commit holding text, stamped t, to the entry at index i.
func (d *Document) ReviseAt(i int, text string, t time.Time) error {
	if i < 0 || i >= len(d.entries) {
		return fmt.Errorf("%w: index %d of %d", ErrEntryNotFound, i, len(d.entries))
	}
	d.entries[i].ReviseAt(text, t)
	return nil
}

// Entries returns copies of all entries in storage order.
func (d *Document) Entries() []Entry {
	out := make([]Entry, len(d.entries))
	for i, e := range d.entries {
		out[i] = e.clone()
	}
	return out
}

// NewestFirst returns the entries most recent first, each tagged with its
// storage index so callers can address it without index arithmetic.
func (d *Document) NewestFirst() []IndexedEntry {
	out := make([]IndexedEntry, 0, len(d.entries))
	for i := len(d.entries) - 1; i >= 0; i-- {
		out = append(out, IndexedEntry{Index: i, Entry: d.entries[i].clone()})
	}
	return out
}

// Equal reports structural equality: same name, same entries in the same
// order, same commits with equal instants and text.
func (d *Document) Equal(o *Document) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.name != o.name || len(d.entries) != len(o.entries) {
		return false
	}
	for i := range d.entries {
		if !d.entries[i].Equal(o.entries[i]) {
			return false
		}
	}
	return true
}

// Summary is the lightweight description of a stored journal used by
// listings.
type Summary struct {
	Path     string    `json:"path" yaml:"path"`
	Name     string    `json:"name" yaml:"name"`
	Entries  int       `json:"entries" yaml:"entries"`
	Commits  int       `json:"commits" yaml:"commits"`
	Modified time.Time `json:"modified,omitempty" yaml:"modified,omitempty"`
}

// Summarize describes d as stored at path.
func Summarize(path string, d *Document) Summary {
	s := Summary{Path: path, Name: d.name, Entries: len(d.entries)}
	for _, e := range d.entries {
		s.Commits += e.Len()
		if m := e.Modified(); m.After(s.Modified) {
			s.Modified = m
		}
	}
	return s
}
