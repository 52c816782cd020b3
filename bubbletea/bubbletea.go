// Package bubbletea provides the Bubble Tea TUI for the supernova chat
// client.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run creates and runs the Bubble Tea TUI program. It blocks until the
// program exits. The context is used for graceful shutdown: when
// cancelled, the program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// UpdateMsg signals that the engine mutated observable state (a fragment
// arrived, a message settled, a title changed) and the view should be
// re-rendered from the store.
type UpdateMsg struct{}

// SendDoneMsg signals that a send reached its terminal state.
type SendDoneMsg struct{}
