package codec_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/diary/pkg/codec"
	"github.com/aretw0/diary/pkg/core"
)

var (
	t1 = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	t2 = time.Date(2024, time.March, 5, 17, 4, 59, 0, time.FixedZone("", -3*3600))
	t3 = time.Date(2025, time.December, 31, 23, 59, 59, 0, time.FixedZone("", 5*3600+30*60))
)

func TestSerialize_ConcreteScenario(t *testing.T) {
	doc := core.NewDocument("j")
	doc.AppendAt("hello", t1)

	data, err := codec.Serialize(doc)
	require.NoError(t, err)
	got := string(data)
	assert.Equal(t, "j\n2024 Jan 01 00:00:00 +0000|hello\n;\n", got)

	parsed, err := codec.Parse([]byte(got))
	require.NoError(t, err)
	assert.True(t, doc.Equal(parsed))
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		build func() *core.Document
	}{
		{
			name:  "empty journal",
			build: func() *core.Document { return core.NewDocument("") },
		},
		{
			name: "revisions across zones",
			build: func() *core.Document {
				d := core.NewDocument("Travel log")
				d.AppendAt("left home", t1)
				d.AppendAt("arrived", t2)
				_ = d.ReviseAt(0, "left home early", t3)
				_ = d.ReviseAt(0, "left home very early", t3)
				return d
			},
		},
		{
			name: "format characters in text",
			build: func() *core.Document {
				d := core.NewDocument("pipes | and ; semis")
				d.AppendAt("a|b|c", t1)
				d.AppendAt(";", t2)
				d.AppendAt("", t3)
				return d
			},
		},
		{
			name: "escapes",
			build: func() *core.Document {
				d := core.NewDocument("multi\nline name")
				d.AppendAt("line one\nline two\r\n", t1)
				d.AppendAt(`C:\temp\new`, t2)
				d.AppendAt(`trailing \`, t3)
				d.AppendAt("unicode: λ 日本 🙂", t3)
				return d
			},
		},
		{
			name: "sub-second times",
			build: func() *core.Document {
				d := core.NewDocument("j")
				d.AppendAt("hello", time.Date(2024, 1, 1, 0, 0, 0, 500_000_000, time.UTC))
				d.AppendAt("wall clock", time.Now())
				_ = d.ReviseAt(1, "later", time.Now().Add(1500*time.Millisecond))
				return d
			},
		},
		{
			name: "zone offset with seconds",
			build: func() *core.Document {
				lmt := time.FixedZone("LMT", -(4*3600 + 56*60 + 2))
				d := core.NewDocument("j")
				d.AppendAt("old clocks", time.Date(1883, time.November, 18, 12, 3, 58, 0, lmt))
				return d
			},
		},
		{
			name: "session with injected clock",
			build: func() *core.Document {
				d := core.NewDocument("j")
				s := core.NewSession(d, core.WithClock(time.Now))
				buf, _ := s.Compose()
				buf.InsertString("typed")
				_, _ = s.Commit()
				return d
			},
		},
		{
			name: "year edges",
			build: func() *core.Document {
				d := core.NewDocument("j")
				d.AppendAt("first", time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC))
				d.AppendAt("ancient", time.Date(999, time.June, 1, 0, 0, 0, 0, time.UTC))
				d.AppendAt("last", time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC))
				return d
			},
		},
		{
			name: "now stamped",
			build: func() *core.Document {
				d := core.NewDocument("today")
				d.Append("written now")
				_ = d.Revise(0, "revised now")
				return d
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := tt.build()
			data, err := codec.Serialize(doc)
			require.NoError(t, err)

			assert.Equal(t, doc.Len()+1+countCommits(doc), strings.Count(string(data), "\n"),
				"one line per commit, terminator and name")

			parsed, err := codec.Parse(data)
			require.NoError(t, err)
			assert.True(t, doc.Equal(parsed), "round trip mismatch:\n%s", data)

			// Serialization is stable.
			again, err := codec.Serialize(parsed)
			require.NoError(t, err)
			assert.Equal(t, string(data), string(again))
		})
	}
}

func countCommits(d *core.Document) int {
	n := 0
	for _, e := range d.Entries() {
		n += e.Len()
	}
	return n
}

func TestParse_Lenient(t *testing.T) {
	t.Run("Blank Lines And CRLF", func(t *testing.T) {
		input := "j\r\n\r\n2024 Jan 01 00:00:00 +0000|a\r\n;\r\n\n\n2024 Jan 02 00:00:00 +0000|b\n;\n\n"
		doc, err := codec.Parse([]byte(input))
		require.NoError(t, err)
		assert.Equal(t, "j", doc.Name())
		require.Equal(t, 2, doc.Len())
		e, _ := doc.Entry(1)
		assert.Equal(t, "b", e.Current().Text())
	})

	t.Run("No Trailing Newline", func(t *testing.T) {
		doc, err := codec.Parse([]byte("j\n2024 Jan 01 00:00:00 +0000|a\n;"))
		require.NoError(t, err)
		assert.Equal(t, 1, doc.Len())
	})

	t.Run("Empty Input", func(t *testing.T) {
		doc, err := codec.Parse(nil)
		require.NoError(t, err)
		assert.Equal(t, "", doc.Name())
		assert.Equal(t, 0, doc.Len())
	})

	t.Run("Name Only", func(t *testing.T) {
		doc, err := codec.Parse([]byte("just a name\n"))
		require.NoError(t, err)
		assert.Equal(t, "just a name", doc.Name())
		assert.Equal(t, 0, doc.Len())
	})

	t.Run("Unknown Escape Kept", func(t *testing.T) {
		doc, err := codec.Parse([]byte("j\n2024 Jan 01 00:00:00 +0000|a\\tb\n;\n"))
		require.NoError(t, err)
		e, _ := doc.Entry(0)
		assert.Equal(t, `a\tb`, e.Current().Text())
	})
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
		line  int
	}{
		{
			name:  "missing delimiter",
			input: "name\n2024 Jan 01 00:00:00 +0000NOPIPE\n;\n",
			want:  codec.ErrMissingDelimiter,
			line:  2,
		},
		{
			name:  "missing terminator",
			input: "name\n2024 Jan 01 00:00:00 +0000|text\n",
			want:  codec.ErrUnterminatedEntry,
			line:  3,
		},
		{
			name:  "missing terminator after complete entry",
			input: "name\n2024 Jan 01 00:00:00 +0000|a\n;\n2024 Jan 02 00:00:00 +0000|b\n",
			want:  codec.ErrUnterminatedEntry,
		},
		{
			name:  "bad timestamp",
			input: "name\n2024-01-01T00:00:00Z|text\n;\n",
			want:  codec.ErrBadTimestamp,
			line:  2,
		},
		{
			name:  "timestamp without zone",
			input: "name\n2024 Jan 01 00:00:00|text\n;\n",
			want:  codec.ErrBadTimestamp,
			line:  2,
		},
		{
			name:  "empty entry",
			input: "name\n2024 Jan 01 00:00:00 +0000|a\n;\n;\n",
			want:  codec.ErrEmptyEntry,
			line:  4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := codec.Parse([]byte(tt.input))
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)

			var perr *codec.ParseError
			require.True(t, errors.As(err, &perr))
			if tt.line > 0 {
				assert.Equal(t, tt.line, perr.Line)
			}
		})
	}

	t.Run("Empty Entry Is Empty History", func(t *testing.T) {
		_, err := codec.Parse([]byte("n\n;\n"))
		assert.True(t, errors.Is(err, core.ErrEmptyHistory))
	})
}

func TestEncode_TimeOutOfRange(t *testing.T) {
	for _, year := range []int{-1, 10000} {
		t.Run(fmt.Sprint(year), func(t *testing.T) {
			doc := core.NewDocument("j")
			doc.AppendAt("fine", t1)
			doc.AppendAt("unrepresentable", time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC))

			var buf bytes.Buffer
			err := codec.Encode(&buf, doc)
			assert.True(t, errors.Is(err, codec.ErrTimeOutOfRange), "got %v", err)
			assert.Zero(t, buf.Len(), "nothing is written")

			data, err := codec.Serialize(doc)
			assert.ErrorIs(t, err, codec.ErrTimeOutOfRange)
			assert.Nil(t, data)
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	doc := core.NewDocument("stream")
	doc.AppendAt("via writer", t2)

	var buf bytes.Buffer
	require.NoError(t, codec.Encode(&buf, doc))

	parsed, err := codec.Decode(&buf)
	require.NoError(t, err)
	assert.True(t, doc.Equal(parsed))
}
