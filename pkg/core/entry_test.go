package core_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/diary/pkg/core"
)

var (
	t1 = time.Date(2024, time.January, 1, 9, 30, 0, 0, time.UTC)
	t2 = t1.Add(90 * time.Minute)
	t3 = t2.Add(24 * time.Hour)
)

func TestEntry_ReviseKeepsHistory(t *testing.T) {
	e := core.NewEntryAt("first draft", t1)
	require.Equal(t, 1, e.Len())

	e.ReviseAt("second draft", t2)

	history := e.History()
	require.Len(t, history, 2)
	assert.Equal(t, "first draft", history[0].Text())
	assert.True(t, history[0].Time().Equal(t1))
	assert.Equal(t, "second draft", e.Current().Text())
	assert.True(t, e.Created().Equal(t1))
	assert.True(t, e.Modified().Equal(t2))
}

func TestEntry_HistoryIsACopy(t *testing.T) {
	e := core.NewEntryAt("a", t1)
	e.ReviseAt("b", t2)

	h := e.History()
	h[0] = core.NewCommit(t3, "tampered")

	assert.Equal(t, "a", e.History()[0].Text())
}

func TestEntry_NewEntryStampsSeconds(t *testing.T) {
	e := core.NewEntry("now")
	assert.Equal(t, 0, e.Created().Nanosecond())
}

func TestNewCommit_Resolution(t *testing.T) {
	t.Run("Sub-Second Times Are Truncated", func(t *testing.T) {
		at := time.Date(2024, 1, 1, 0, 0, 0, 999_999_999, time.UTC)
		c := core.NewCommit(at, "x")
		assert.True(t, c.Time().Equal(at.Truncate(time.Second)))

		e := core.NewEntryAt("x", at)
		e.ReviseAt("y", at)
		for _, c := range e.History() {
			assert.Equal(t, 0, c.Time().Nanosecond())
		}
	})

	t.Run("Zone Offsets Keep Whole Minutes", func(t *testing.T) {
		lmt := time.FixedZone("LMT", -(4*3600 + 56*60 + 2))
		at := time.Date(1883, time.November, 18, 12, 3, 58, 0, lmt)
		c := core.NewCommit(at, "x")

		assert.True(t, c.Time().Equal(at), "instant is unchanged")
		_, offset := c.Time().Zone()
		assert.Equal(t, 0, offset%60)
	})

	t.Run("Injected Clock", func(t *testing.T) {
		doc := core.NewDocument("j")
		s := core.NewSession(doc, core.WithClock(time.Now))
		buf, err := s.Compose()
		require.NoError(t, err)
		buf.InsertString("typed")
		_, err = s.Commit()
		require.NoError(t, err)

		e, err := doc.Entry(0)
		require.NoError(t, err)
		assert.Equal(t, 0, e.Created().Nanosecond())
	})
}

func TestEntryFromHistory(t *testing.T) {
	_, err := core.EntryFromHistory(nil)
	assert.True(t, errors.Is(err, core.ErrEmptyHistory))

	e, err := core.EntryFromHistory([]core.Commit{
		core.NewCommit(t1, "x"),
		core.NewCommit(t2, "y"),
		core.NewCommit(t3, "z"),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, e.Len())
	assert.Equal(t, "z", e.Current().Text())
	assert.True(t, e.Created().Equal(t1))
}

func TestEntry_Equal(t *testing.T) {
	a := core.NewEntryAt("x", t1)
	b := core.NewEntryAt("x", t1.In(time.FixedZone("CET", 3600)))
	assert.True(t, a.Equal(b), "same instant in another zone is equal")

	b.ReviseAt("y", t2)
	assert.False(t, a.Equal(b))

	a.ReviseAt("y", t2)
	assert.True(t, a.Equal(b))
}
