// Package editbuf implements the gap buffer that holds the text of the entry
// being composed or revised.
//
// The buffer keeps one contiguous run of unused slots (the gap) at the cursor,
// so keystrokes near the cursor never shift the rest of the text:
//
//	[a, b, c, _, _, _, _, d, e]
//	          ^gapStart  ^gapEnd
//
// The logical content is slots[:gapStart] followed by slots[gapEnd+1:]. The
// gap markers never leave this package; callers only see logical positions.
package editbuf

import (
	"strings"
	"unicode"
)

const (
	// GrowBlock is the number of empty slots added each time the gap runs out.
	GrowBlock = 256

	// HomeThreshold is the cursor offset above which MoveHome and MoveEnd
	// rebuild the slice instead of stepping one rune at a time.
	HomeThreshold = 100
)

// Buffer is a rune-granular gap buffer with a single cursor.
// The zero value is an empty buffer ready to use.
type Buffer struct {
	slots    []rune
	gapStart int
	gapEnd   int // inclusive
}

// New returns an empty buffer whose gap spans the whole initial capacity.
func New() *Buffer {
	return FromText("")
}

// FromText returns a buffer holding s with the cursor at the end.
func FromText(s string) *Buffer {
	slots := []rune(s)
	b := &Buffer{
		slots:    slots,
		gapStart: len(slots),
		gapEnd:   len(slots) - 1,
	}
	b.grow()
	return b
}

// gapLen is only meant for sizing decisions.
func (b *Buffer) gapLen() int {
	return b.gapEnd - b.gapStart + 1
}

// tailStart is the index of the first rune after the gap.
func (b *Buffer) tailStart() int {
	return b.gapEnd + 1
}

// Cursor returns the logical cursor position, in runes.
func (b *Buffer) Cursor() int {
	b.ready()
	return b.gapStart
}

// Len returns the number of runes of logical content.
func (b *Buffer) Len() int {
	b.ready()
	return len(b.slots) - b.gapLen()
}

// Insert writes r at the cursor and advances the cursor past it.
func (b *Buffer) Insert(r rune) {
	b.ready()
	b.slots[b.gapStart] = r
	b.gapStart++
	if b.gapStart > b.gapEnd {
		b.grow()
	}
}

// InsertString inserts s rune by rune.
func (b *Buffer) InsertString(s string) {
	for _, r := range s {
		b.Insert(r)
	}
}

// DeleteBefore drops the rune just before the cursor (backspace).
func (b *Buffer) DeleteBefore() {
	b.ready()
	if b.gapStart > 0 {
		b.gapStart--
	}
}

// DeleteAfter drops the rune just after the cursor (delete).
func (b *Buffer) DeleteAfter() {
	b.ready()
	if b.gapEnd < len(b.slots)-1 {
		b.gapEnd++
	}
}

// MoveLeft moves the cursor one rune towards the start.
func (b *Buffer) MoveLeft() {
	b.ready()
	if b.gapStart == 0 {
		return
	}
	b.slots[b.gapStart-1], b.slots[b.gapEnd] = b.slots[b.gapEnd], b.slots[b.gapStart-1]
	b.gapStart--
	b.gapEnd--
}

// MoveRight moves the cursor one rune towards the end.
func (b *Buffer) MoveRight() {
	b.ready()
	if b.gapEnd >= len(b.slots)-1 {
		return
	}
	b.slots[b.gapStart], b.slots[b.gapEnd+1] = b.slots[b.gapEnd+1], b.slots[b.gapStart]
	b.gapStart++
	b.gapEnd++
}

// MoveHome moves the cursor to position 0.
//
// Short distances are walked with MoveLeft. Past HomeThreshold the slice is
// rebuilt once as gap, head, tail.
func (b *Buffer) MoveHome() {
	b.ready()
	if b.gapStart < HomeThreshold {
		for b.gapStart > 0 {
			b.MoveLeft()
		}
		return
	}

	n := b.gapLen()
	next := make([]rune, 0, len(b.slots))
	next = append(next, b.slots[b.gapStart:b.tailStart()]...)
	next = append(next, b.slots[:b.gapStart]...)
	next = append(next, b.slots[b.tailStart():]...)
	b.slots = next
	b.gapStart = 0
	b.gapEnd = n - 1
}

// MoveEnd moves the cursor past the last rune.
func (b *Buffer) MoveEnd() {
	b.ready()
	tail := len(b.slots) - b.tailStart()
	if tail < HomeThreshold {
		for b.gapEnd < len(b.slots)-1 {
			b.MoveRight()
		}
		return
	}

	n := b.gapLen()
	next := make([]rune, 0, len(b.slots))
	next = append(next, b.slots[:b.gapStart]...)
	next = append(next, b.slots[b.tailStart():]...)
	b.gapStart = len(next)
	next = append(next, make([]rune, n)...)
	b.slots = next
	b.gapEnd = len(next) - 1
}

// Clear discards the content and allocates a fresh gap.
func (b *Buffer) Clear() {
	b.slots = make([]rune, 0, GrowBlock)
	b.gapStart = 0
	b.gapEnd = -1
	b.grow()
}

// TrimTrailingSpace drops whitespace from the logical end of the content,
// stopping at the first non-space rune. The cursor stays put unless the
// trimmed runes were before it.
func (b *Buffer) TrimTrailingSpace() {
	b.ready()
	for {
		if b.tailStart() < len(b.slots) {
			last := len(b.slots) - 1
			if !unicode.IsSpace(b.slots[last]) {
				return
			}
			b.slots = b.slots[:last]
			continue
		}
		if b.gapStart == 0 || !unicode.IsSpace(b.slots[b.gapStart-1]) {
			return
		}
		b.gapStart--
	}
}

// Compact shrinks an oversized gap back down. It is maintenance work and
// must only run while no edit is in flight.
func (b *Buffer) Compact() {
	b.ready()
	if b.gapLen() <= 4*GrowBlock {
		return
	}
	drop := 3 * GrowBlock
	next := make([]rune, 0, len(b.slots)-drop)
	next = append(next, b.slots[:b.gapStart]...)
	next = append(next, make([]rune, b.gapLen()-drop)...)
	next = append(next, b.slots[b.tailStart():]...)
	b.slots = next
	b.gapEnd -= drop
}

// String returns the logical content. The cursor position is not visible.
func (b *Buffer) String() string {
	b.ready()
	var sb strings.Builder
	sb.Grow(b.Len())
	for _, r := range b.slots[:b.gapStart] {
		sb.WriteRune(r)
	}
	for _, r := range b.slots[b.tailStart():] {
		sb.WriteRune(r)
	}
	return sb.String()
}

// ready gives a zero Buffer its first gap. Initialized buffers always keep
// at least one gap slot, so an empty slice means zero value.
func (b *Buffer) ready() {
	if len(b.slots) == 0 {
		b.gapStart = 0
		b.gapEnd = -1
		b.grow()
	}
}

// grow splits the slice at gapStart and splices in GrowBlock empty slots.
func (b *Buffer) grow() {
	next := make([]rune, 0, len(b.slots)+GrowBlock)
	next = append(next, b.slots[:b.gapStart]...)
	next = append(next, make([]rune, GrowBlock)...)
	next = append(next, b.slots[b.gapStart:]...)
	b.slots = next
	b.gapEnd += GrowBlock
}
