// Package command classifies raw input lines. It does no I/O.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"todo/internal/config"
)

// Action is a non-"add task" operation selected by a command token.
type Action int

const (
	ViewAll Action = iota + 1
	MarkDone
	Remove
	ViewPending
	ViewDone
	Quit
)

func (a Action) String() string {
	switch a {
	case ViewAll:
		return "view-all"
	case MarkDone:
		return "mark-done"
	case Remove:
		return "remove"
	case ViewPending:
		return "view-pending"
	case ViewDone:
		return "view-done"
	case Quit:
		return "quit"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Input is either a Command or a NewTask.
type Input interface {
	isInput()
}

type Command struct {
	Action Action
}

type NewTask struct {
	Text string
}

func (Command) isInput() {}
func (NewTask) isInput() {}

// Parse trims line and matches it against the keymap tokens. Anything that
// is not exactly a token, the empty string included, is new task text.
func Parse(line string, keys config.Keymap) Input {
	text := strings.TrimSpace(line)
	for _, b := range bindings(keys) {
		if b.token != "" && text == b.token {
			return Command{Action: b.action}
		}
	}
	return NewTask{Text: text}
}

// MenuItem is one line of the main menu.
type MenuItem struct {
	Token       string
	Description string
}

// Menu lists the commands in display order. A quit entry appears only when
// the keymap defines a quit token.
func Menu(keys config.Keymap) []MenuItem {
	var items []MenuItem
	for _, b := range bindings(keys) {
		if b.token == "" {
			continue
		}
		items = append(items, MenuItem{Token: b.token, Description: b.description})
	}
	return items
}

type binding struct {
	token       string
	action      Action
	description string
}

func bindings(keys config.Keymap) []binding {
	return []binding{
		{keys.ViewAll, ViewAll, "View all todos"},
		{keys.MarkDone, MarkDone, "Mark task as done"},
		{keys.Remove, Remove, "Remove a task"},
		{keys.ViewPending, ViewPending, "View uncompleted tasks"},
		{keys.ViewDone, ViewDone, "View done tasks"},
		{keys.Quit, Quit, "Quit"},
	}
}

var ErrNotANumber = errors.New("not a number")

// NumberError carries the text that failed to parse as a position.
type NumberError struct {
	Input string
}

func (e *NumberError) Error() string {
	return fmt.Sprintf("%v: %q", ErrNotANumber, e.Input)
}

func (e *NumberError) Is(target error) bool { return target == ErrNotANumber }

// ParsePosition parses an unsigned decimal task position, allowing one
// leading '+'. Range checking is left to the store.
func ParsePosition(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, 0)
	if err != nil || n > uint64(maxInt) {
		return 0, &NumberError{Input: s}
	}
	return int(n), nil
}

const maxInt = int(^uint(0) >> 1)
