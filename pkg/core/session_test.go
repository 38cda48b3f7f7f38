package core_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/diary/pkg/core"
)

func fixedClock(ts ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := ts[i%len(ts)]
		i++
		return t
	}
}

func TestSession_ComposeCommit(t *testing.T) {
	doc := core.NewDocument("j")
	s := core.NewSession(doc, core.WithClock(fixedClock(t1)))

	buf, err := s.Compose()
	require.NoError(t, err)
	assert.True(t, s.Editing())

	buf.InsertString("hello world  \n")
	buf.MoveLeft()

	idx, err := s.Commit()
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.False(t, s.Editing())
	assert.Nil(t, s.Buffer())

	e, err := doc.Entry(0)
	require.NoError(t, err)
	assert.Equal(t, "hello world", e.Current().Text())
	assert.True(t, e.Created().Equal(t1))
}

func TestSession_ReviseSeedsBuffer(t *testing.T) {
	doc := core.NewDocument("j")
	doc.AppendAt("draft", t1)
	s := core.NewSession(doc, core.WithClock(fixedClock(t2)))

	buf, err := s.Revise(0)
	require.NoError(t, err)
	assert.Equal(t, "draft", buf.String())
	assert.Equal(t, 5, buf.Cursor())

	idx, revising := s.Target()
	assert.Equal(t, 0, idx)
	assert.True(t, revising)

	buf.InsertString(" two")
	_, err = s.Commit()
	require.NoError(t, err)

	e, _ := doc.Entry(0)
	h := e.History()
	require.Len(t, h, 2)
	assert.Equal(t, "draft", h[0].Text())
	assert.True(t, h[0].Time().Equal(t1))
	assert.Equal(t, "draft two", h[1].Text())
	assert.True(t, h[1].Time().Equal(t2))
}

func TestSession_Cancel(t *testing.T) {
	doc := core.NewDocument("j")
	s := core.NewSession(doc)

	buf, err := s.Compose()
	require.NoError(t, err)
	buf.InsertString("never saved")
	s.Cancel()

	assert.False(t, s.Editing())
	assert.Equal(t, 0, doc.Len())

	_, err = s.Commit()
	assert.True(t, errors.Is(err, core.ErrNotEditing))
}

func TestSession_Errors(t *testing.T) {
	doc := core.NewDocument("j")
	doc.AppendAt("a", t1)
	s := core.NewSession(doc)

	_, err := s.Revise(3)
	assert.True(t, errors.Is(err, core.ErrEntryNotFound))
	assert.False(t, s.Editing())

	first, err := s.Compose()
	require.NoError(t, err)
	first.InsertString("keep me")

	_, err = s.Compose()
	assert.True(t, errors.Is(err, core.ErrAlreadyEditing))
	_, err = s.Revise(0)
	assert.True(t, errors.Is(err, core.ErrAlreadyEditing))
	assert.Equal(t, "keep me", s.Buffer().String())

	s.Idle()
	assert.Equal(t, "keep me", s.Buffer().String())
}
