package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"morningquest/internal/engine"
)

// RunBoard opens the live run board for one profile.
func RunBoard(ctx context.Context, svc *engine.Service, key string, out io.Writer) error {
	m := newBoardModel(ctx, svc, key)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
