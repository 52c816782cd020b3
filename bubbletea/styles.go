package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/supernova"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	UserMsg lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t supernova.Theme) Styles {
	return Styles{
		UserMsg: lipgloss.NewStyle().Foreground(ansiColor(t.UserMsg)).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Success: lipgloss.NewStyle().Foreground(ansiColor(t.Success)),
		Muted:   lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent:  lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
