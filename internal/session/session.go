// Package session implements the command loop: each input line is
// classified, acted on against the task store, and answered on the writer.
//
// Drivers own the reading side. They call Start once, then Feed for every
// line they read, or ReadFailed when a read fails. A Session is not safe for
// concurrent use.
package session

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"todo/internal/command"
	"todo/internal/config"
	"todo/internal/render"
	"todo/internal/storage"
)

type state int

const (
	awaitingCommand state = iota
	awaitingMarkDone
	awaitingRemove
	awaitingPause
)

const (
	msgInputPrompt   = "Type to add new TODO or enter a command:"
	msgAdded         = "Task successfully added!"
	msgMarked        = "Task successfully marked as done!"
	msgRemoved       = "Task successfully removed!"
	msgNotANumber    = "Not a number!"
	msgOutOfRange    = "Number is beyond limits!"
	msgNotFound      = "No task was found for number "
	msgAllTasks      = "All tasks:"
	msgDoneTasks     = "Your done tasks are:"
	msgPendingTasks  = "Your current tasks are:"
	msgPause         = "Press any key to continue ->"
	msgMarkPrompt    = "Enter number of task to mark as done:"
	msgRemovePrompt  = "Enter number of task to remove:"
	msgBye           = "Bye!"
	msgReadFailedFmt = "Error: %v. Please try again."
)

type Session struct {
	store storage.Store
	out   io.Writer
	theme render.Theme
	keys  config.Keymap
	log   *logrus.Entry

	state state
	done  bool
}

// New returns a session that takes ownership of store.
func New(store storage.Store, out io.Writer, theme render.Theme, keys config.Keymap, logger *logrus.Logger) *Session {
	return &Session{
		store: store,
		out:   out,
		theme: theme,
		keys:  keys,
		log:   logger.WithField("session", uuid.NewString()),
	}
}

// Done reports whether the quit command has been given.
func (s *Session) Done() bool { return s.done }

// Start shows the menu and the input prompt.
func (s *Session) Start() {
	s.log.Debug("session started")
	s.showMenu()
}

// Feed handles one line read from the terminal.
func (s *Session) Feed(line string) {
	if s.done {
		return
	}
	s.println(s.theme.Separator())

	switch s.state {
	case awaitingMarkDone:
		s.state = awaitingCommand
		s.markDone(line)
	case awaitingRemove:
		s.state = awaitingCommand
		s.remove(line)
	case awaitingPause:
		s.state = awaitingCommand
	default:
		s.dispatch(command.Parse(line, s.keys))
	}

	if s.state == awaitingCommand && !s.done {
		s.showMenu()
	}
}

// ReadFailed reports a failed read, abandons any half-finished action and
// shows the menu again.
func (s *Session) ReadFailed(err error) {
	s.log.WithError(err).Warn("reading input failed")
	s.println(fmt.Sprintf(msgReadFailedFmt, err))
	s.state = awaitingCommand
	s.showMenu()
}

func (s *Session) dispatch(in command.Input) {
	switch in := in.(type) {
	case command.NewTask:
		s.log.WithField("text", in.Text).Debug("add task")
		if err := s.store.Append(in.Text); err != nil {
			s.fail("add task", err)
			return
		}
		s.println(msgAdded)
		s.printEntries(s.store.All)
	case command.Command:
		s.log.WithField("action", in.Action).Debug("command")
		s.run(in.Action)
	}
}

func (s *Session) run(action command.Action) {
	switch action {
	case command.ViewAll:
		s.println(s.theme.Heading(msgAllTasks))
		s.printEntries(s.store.All)
		s.println(msgPause)
		s.state = awaitingPause
	case command.MarkDone:
		s.printEntries(s.store.All)
		s.println(s.theme.Success(msgMarkPrompt))
		s.state = awaitingMarkDone
	case command.Remove:
		s.printEntries(s.store.All)
		s.println(s.theme.Error(msgRemovePrompt))
		s.state = awaitingRemove
	case command.ViewPending:
		s.println(s.theme.Heading(msgPendingTasks))
		s.printEntries(s.store.Pending)
	case command.ViewDone:
		s.println(s.theme.Success(msgDoneTasks))
		s.printEntries(s.store.Done)
	case command.Quit:
		s.println(msgBye)
		s.done = true
	}
}

func (s *Session) markDone(line string) {
	pos, err := command.ParsePosition(line)
	if err != nil {
		s.reject("mark done", err)
		return
	}
	if err := s.store.MarkDone(pos); err != nil {
		s.reject("mark done", err)
		return
	}
	s.log.WithField("position", pos).Debug("task marked done")
	s.println(s.theme.Success(msgMarked))
}

func (s *Session) remove(line string) {
	pos, err := command.ParsePosition(line)
	if err != nil {
		s.reject("remove", err)
		return
	}
	if err := s.store.Remove(pos); err != nil {
		s.reject("remove", err)
		return
	}
	s.log.WithField("position", pos).Debug("task removed")
	s.println(s.theme.Success(msgRemoved))
}

// reject reports user errors from the position flows.
func (s *Session) reject(op string, err error) {
	var perr *storage.PositionError
	switch {
	case errors.Is(err, command.ErrNotANumber):
		s.log.WithError(err).WithField("op", op).Warn("rejected position")
		s.println(s.theme.Error(msgNotANumber))
	case errors.As(err, &perr) && errors.Is(perr, storage.ErrNotFound):
		s.log.WithError(err).WithField("op", op).Warn("rejected position")
		s.println(s.theme.Error(msgNotFound) + fmt.Sprint(perr.Position))
	case errors.As(err, &perr) && errors.Is(perr, storage.ErrOutOfRange):
		s.log.WithError(err).WithField("op", op).Warn("rejected position")
		s.println(s.theme.Error(msgOutOfRange))
	default:
		s.fail(op, err)
	}
}

// fail reports a store failure. The loop carries on.
func (s *Session) fail(op string, err error) {
	s.log.WithError(err).WithField("op", op).Error("store failure")
	s.println(s.theme.Error(fmt.Sprintf("Error: %s failed: %v", op, err)))
}

func (s *Session) printEntries(list func() ([]storage.Entry, error)) {
	entries, err := list()
	if err != nil {
		s.fail("list tasks", err)
		return
	}
	for _, e := range entries {
		s.println(s.theme.Entry(e))
	}
}

func (s *Session) showMenu() {
	s.println(s.theme.MenuHeader())
	for _, item := range command.Menu(s.keys) {
		s.println(s.theme.MenuItem(item))
	}
	s.println(s.theme.Separator())
	s.println(s.theme.Prompt(msgInputPrompt))
}

func (s *Session) println(line string) {
	fmt.Fprintln(s.out, line)
}
