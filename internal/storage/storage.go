package storage

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("no task was found for number")
	ErrOutOfRange = errors.New("number is beyond limits")
)

// PositionError reports a position outside [1, len] of the store.
type PositionError struct {
	Position int
	Err      error
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("%v %d", e.Err, e.Position)
}

func (e *PositionError) Unwrap() error { return e.Err }

type Task struct {
	Text string
	Done bool
}

// Entry is a task together with its 1-based position at the time it was listed.
type Entry struct {
	Position int
	Task
}

// Store is the ordered task collection of a single session. Positions are
// 1-based and shift down when an earlier task is removed.
type Store interface {
	Append(text string) error
	MarkDone(pos int) error
	Remove(pos int) error
	All() ([]Entry, error)
	Done() ([]Entry, error)
	Pending() ([]Entry, error)
	Close() error
}

func filterDone(entries []Entry, done bool) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Done == done {
			out = append(out, e)
		}
	}
	return out
}
