package fs

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/diary/pkg/core"
)

func TestDebouncer(t *testing.T) {
	t.Run("Collapses Bursts Per Path", func(t *testing.T) {
		d := newDebouncer(30 * time.Millisecond)

		var mu sync.Mutex
		var fired []core.Event
		record := func(e core.Event) {
			mu.Lock()
			fired = append(fired, e)
			mu.Unlock()
		}

		d.add(core.Event{Type: core.EventCreate, Path: "a"}, record)
		d.add(core.Event{Type: core.EventModify, Path: "a"}, record)
		d.add(core.Event{Type: core.EventDelete, Path: "b"}, record)

		assert.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(fired) == 2
		}, time.Second, 5*time.Millisecond)

		d.stopAndWait()

		mu.Lock()
		defer mu.Unlock()
		byPath := map[string]core.EventType{}
		for _, e := range fired {
			byPath[e.Path] = e.Type
		}
		assert.Equal(t, core.EventModify, byPath["a"])
		assert.Equal(t, core.EventDelete, byPath["b"])
	})

	t.Run("Stop Drops Pending", func(t *testing.T) {
		d := newDebouncer(time.Hour)
		called := false
		d.add(core.Event{Path: "a"}, func(core.Event) { called = true })
		d.stopAndWait()

		// Adds after stop are ignored.
		d.add(core.Event{Path: "b"}, func(core.Event) { called = true })
		assert.False(t, called)
	})
}
