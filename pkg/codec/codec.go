// Package codec converts journals to and from their plain-text form.
//
// A journal file looks like this:
//
//	<name>
//	2024 Jan 01 09:30:00 +0000|first draft
//	2024 Jan 01 11:00:00 +0000|second draft
//	;
//	2024 Jan 02 08:00:00 +0000|another entry
//	;
//
// The first line is the name. Every commit of an entry is one
// "<timestamp>|<text>" line, oldest first, and a line holding exactly ";"
// closes the entry. Line breaks and backslashes inside text are escaped so
// that one commit is always one line.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aretw0/diary/pkg/core"
)

const (
	// TimeLayout renders YYYY Mon DD HH:MM:SS ±ZZZZ.
	TimeLayout = "2006 Jan 02 15:04:05 -0700"

	// Delimiter separates the timestamp from the commit text.
	Delimiter = "|"

	// Terminator closes an entry.
	Terminator = ";"
)

var (
	ErrBadTimestamp      = errors.New("malformed timestamp")
	ErrMissingDelimiter  = errors.New("commit line has no '|' delimiter")
	ErrUnterminatedEntry = errors.New("entry not terminated by ';'")
	ErrEmptyEntry        = fmt.Errorf("terminator without commits: %w", core.ErrEmptyHistory)
	ErrTimeOutOfRange    = errors.New("commit time outside years 0000-9999")
)

// ParseError reports where and why a journal could not be parsed.
type ParseError struct {
	Line int    // 1-based
	Text string // offending line, as read
	Err  error
}

func (e *ParseError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Serialize renders doc in the journal text format.
func Serialize(doc *core.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes doc to w in the journal text format. A commit whose year
// the layout cannot represent fails with ErrTimeOutOfRange before anything
// is written.
func Encode(w io.Writer, doc *core.Document) error {
	var sb strings.Builder
	sb.WriteString(escape(doc.Name()))
	sb.WriteByte('\n')

	for i, e := range doc.Entries() {
		for _, c := range e.History() {
			if y := c.Time().Year(); y < 0 || y > 9999 {
				return fmt.Errorf("entry %d: %w: %d", i, ErrTimeOutOfRange, y)
			}
			sb.WriteString(c.Time().Format(TimeLayout))
			sb.WriteString(Delimiter)
			sb.WriteString(escape(c.Text()))
			sb.WriteByte('\n')
		}
		sb.WriteString(Terminator)
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Decode reads a whole journal from r.
func Decode(r io.Reader) (*core.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a journal. Empty input yields an unnamed, empty journal.
func Parse(data []byte) (*core.Document, error) {
	if len(data) == 0 {
		return core.NewDocument(""), nil
	}

	lines := strings.Split(string(data), "\n")
	// A trailing newline leaves one empty element behind.
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	doc := core.NewDocument(unescape(strings.TrimSuffix(lines[0], "\r")))

	var pending []core.Commit
	for i := 1; i < len(lines); i++ {
		line := strings.TrimSuffix(lines[i], "\r")
		lineNo := i + 1

		switch line {
		case "":
			continue
		case Terminator:
			e, err := core.EntryFromHistory(pending)
			if err != nil {
				return nil, &ParseError{Line: lineNo, Err: ErrEmptyEntry}
			}
			doc.AppendEntry(e)
			pending = nil
			continue
		}

		c, err := parseCommit(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: line, Err: err}
		}
		pending = append(pending, c)
	}

	if len(pending) > 0 {
		return nil, &ParseError{Line: len(lines) + 1, Err: ErrUnterminatedEntry}
	}
	return doc, nil
}

func parseCommit(line string) (core.Commit, error) {
	stamp, text, ok := strings.Cut(line, Delimiter)
	if !ok {
		return core.Commit{}, ErrMissingDelimiter
	}
	t, err := time.Parse(TimeLayout, stamp)
	if err != nil {
		return core.Commit{}, fmt.Errorf("%w: %v", ErrBadTimestamp, err)
	}
	return core.NewCommit(t, unescape(text)), nil
}

var escaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`)

func escape(s string) string {
	return escaper.Replace(s)
}

// unescape reverses escape. Unknown sequences and a trailing lone backslash
// are kept literally.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i == len(s)-1 {
			sb.WriteByte(s[i])
			continue
		}
		switch s[i+1] {
		case '\\':
			sb.WriteByte('\\')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		default:
			sb.WriteByte('\\')
			sb.WriteByte(s[i+1])
		}
		i++
	}
	return sb.String()
}
