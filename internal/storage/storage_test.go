package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var backends = map[string]func(t *testing.T) Store{
	"memory": func(t *testing.T) Store { return NewMemory() },
	"sqlite": func(t *testing.T) Store {
		s, err := OpenSQLite()
		require.NoError(t, err)
		return s
	},
}

func forEachBackend(t *testing.T, fn func(t *testing.T, s Store)) {
	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			t.Cleanup(func() { s.Close() })
			fn(t, s)
		})
	}
}

func appendAll(t *testing.T, s Store, texts ...string) {
	t.Helper()
	for _, text := range texts {
		require.NoError(t, s.Append(text))
	}
}

func mustAll(t *testing.T, s Store) []Entry {
	t.Helper()
	all, err := s.All()
	require.NoError(t, err)
	return all
}

func entry(pos int, text string, done bool) Entry {
	return Entry{Position: pos, Task: Task{Text: text, Done: done}}
}

func TestAppendKeepsInsertionOrder(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		appendAll(t, s, "one", "", "one", "three")

		assert.Equal(t, []Entry{
			entry(1, "one", false),
			entry(2, "", false),
			entry(3, "one", false),
			entry(4, "three", false),
		}, mustAll(t, s))
	})
}

func TestMarkDone(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		appendAll(t, s, "buy milk", "walk dog")

		require.NoError(t, s.MarkDone(1))
		assert.Equal(t, []Entry{
			entry(1, "buy milk", true),
			entry(2, "walk dog", false),
		}, mustAll(t, s))

		require.NoError(t, s.MarkDone(1), "marking twice is idempotent")
		assert.Equal(t, []Entry{
			entry(1, "buy milk", true),
			entry(2, "walk dog", false),
		}, mustAll(t, s))
	})
}

func TestMarkDoneOutsideRange(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		err := s.MarkDone(1)
		require.ErrorIs(t, err, ErrNotFound)
		assert.Empty(t, mustAll(t, s))

		appendAll(t, s, "a", "b")
		for _, pos := range []int{0, -1, 3, 100} {
			err := s.MarkDone(pos)
			require.ErrorIs(t, err, ErrNotFound)

			var perr *PositionError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, pos, perr.Position)
		}
		assert.Equal(t, []Entry{entry(1, "a", false), entry(2, "b", false)}, mustAll(t, s))
	})
}

func TestRemoveShiftsLaterTasks(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		appendAll(t, s, "a", "b", "c")
		require.NoError(t, s.MarkDone(3))

		require.NoError(t, s.Remove(2))
		assert.Equal(t, []Entry{
			entry(1, "a", false),
			entry(2, "c", true),
		}, mustAll(t, s))

		require.NoError(t, s.Remove(1))
		require.NoError(t, s.Remove(1))
		assert.Empty(t, mustAll(t, s))
	})
}

func TestRemoveOutsideRange(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		appendAll(t, s, "a", "b", "c")
		for _, pos := range []int{0, 4} {
			err := s.Remove(pos)
			require.ErrorIs(t, err, ErrOutOfRange)
			assert.EqualError(t, err, fmt.Sprintf("number is beyond limits %d", pos))
		}
		assert.Len(t, mustAll(t, s), 3)
	})
}

func TestFiltersPartitionAll(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		appendAll(t, s, "a", "b", "c", "d", "e")
		require.NoError(t, s.MarkDone(2))
		require.NoError(t, s.MarkDone(5))

		done, err := s.Done()
		require.NoError(t, err)
		pending, err := s.Pending()
		require.NoError(t, err)

		assert.Equal(t, []Entry{entry(2, "b", true), entry(5, "e", true)}, done)
		assert.Equal(t, []Entry{entry(1, "a", false), entry(3, "c", false), entry(4, "d", false)}, pending)

		byPos := map[int]Entry{}
		for _, e := range append(done, pending...) {
			_, dup := byPos[e.Position]
			require.False(t, dup, "position %d listed twice", e.Position)
			byPos[e.Position] = e
		}
		for _, e := range mustAll(t, s) {
			assert.Equal(t, e, byPos[e.Position])
		}
		assert.Len(t, byPos, 5)
	})
}
