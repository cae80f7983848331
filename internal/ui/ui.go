package ui

import (
	"bytes"
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"todo/internal/config"
	"todo/internal/render"
	"todo/internal/session"
	"todo/internal/storage"
)

// Run starts a session over store on the process terminal, using the TUI
// or the plain line reader as configured.
func Run(ctx context.Context, store storage.Store, cfg config.Config, logger *logrus.Logger) error {
	useTUI := cfg.UI == config.UITUI ||
		(cfg.UI == config.UIAuto && isTerminal(os.Stdin) && isTerminal(os.Stdout))
	theme := render.NewTheme(cfg.Color && isTerminal(os.Stdout))

	if useTUI {
		logger.Debug("starting tui")
		transcript := &bytes.Buffer{}
		sess := session.New(store, transcript, theme, cfg.Keys, logger)
		return RunTUI(sess, transcript)
	}
	logger.Debug("starting line reader")
	sess := session.New(store, os.Stdout, theme, cfg.Keys, logger)
	return RunLines(ctx, sess, os.Stdin)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Model is a bubbletea front end for a session: the text input collects a
// line, Enter hands it to the session, and the session's output scrolls
// above the input.
type Model struct {
	sess       *session.Session
	transcript *bytes.Buffer
	input      textinput.Model
	height     int
}

// NewModel wraps sess, which must write its output to transcript.
func NewModel(sess *session.Session, transcript *bytes.Buffer) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 0
	ti.Width = 40
	ti.Focus()

	sess.Start()
	return Model{
		sess:       sess,
		transcript: transcript,
		input:      ti,
	}
}

func RunTUI(sess *session.Session, transcript *bytes.Buffer) error {
	program := tea.NewProgram(NewModel(sess, transcript))
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
		m.height = msg.Height
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.SetValue("")
	// Echo the line the way a terminal would.
	m.transcript.WriteString(line + "\n")
	m.sess.Feed(line)
	if m.sess.Done() {
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	lines := strings.Split(strings.TrimRight(m.transcript.String(), "\n"), "\n")
	if m.height > 1 && len(lines) > m.height-1 {
		lines = lines[len(lines)-(m.height-1):]
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	return b.String()
}
