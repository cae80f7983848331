// Package render turns session output into terminal text. Styling is
// decoration only; with colour disabled every helper returns its input
// unchanged.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"todo/internal/command"
	"todo/internal/storage"
)

const (
	Separator  = "======================================"
	MenuTitle  = "MENU"
	DoneMarker = "✓"
)

var (
	yellow = lipgloss.Color("11")
	green  = lipgloss.Color("10")
	red    = lipgloss.Color("9")
	blue   = lipgloss.Color("12")
)

type Theme struct {
	enabled bool

	separator lipgloss.Style
	heading   lipgloss.Style
	prompt    lipgloss.Style
	success   lipgloss.Style
	failure   lipgloss.Style
	done      lipgloss.Style
}

func NewTheme(color bool) Theme {
	return Theme{
		enabled:   color,
		separator: lipgloss.NewStyle().Foreground(yellow),
		heading:   lipgloss.NewStyle().Foreground(yellow),
		prompt:    lipgloss.NewStyle().Foreground(blue).Bold(true),
		success:   lipgloss.NewStyle().Foreground(green),
		failure:   lipgloss.NewStyle().Foreground(red),
		done:      lipgloss.NewStyle().Foreground(green),
	}
}

// Plain is a theme without any escape sequences.
func Plain() Theme {
	return NewTheme(false)
}

func (t Theme) render(s lipgloss.Style, text string) string {
	if !t.enabled {
		return text
	}
	return s.Render(text)
}

func (t Theme) Separator() string { return t.render(t.separator, Separator) }

// MenuHeader centres the menu title in a separator of the same width.
func (t Theme) MenuHeader() string {
	side := (len(Separator) - len(MenuTitle)) / 2
	bar := strings.Repeat("=", side)
	return t.render(t.separator, bar+MenuTitle+bar)
}

func (t Theme) Heading(text string) string { return t.render(t.heading, text) }
func (t Theme) Prompt(text string) string  { return t.render(t.prompt, text) }
func (t Theme) Success(text string) string { return t.render(t.success, text) }
func (t Theme) Error(text string) string   { return t.render(t.failure, text) }

func (t Theme) MenuItem(item command.MenuItem) string {
	return fmt.Sprintf("%s - %s", item.Token, item.Description)
}

// Entry formats "<position>. <text>", marking done tasks.
func (t Theme) Entry(e storage.Entry) string {
	if e.Done {
		return fmt.Sprintf("%d. %s", e.Position, t.render(t.done, e.Text+DoneMarker))
	}
	return fmt.Sprintf("%d. %s", e.Position, e.Text)
}
