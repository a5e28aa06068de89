package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// RunNewPaste shows the new paste window until the user quits and returns
// the final model. The model is returned even when the program fails, so
// pastes that already succeeded are not lost.
func RunNewPaste(ctx context.Context, opts NewPasteOptions, progOpts ...tea.ProgramOption) (*NewPasteModel, error) {
	m := NewNewPasteModel(opts)
	progOpts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, progOpts...)
	p := tea.NewProgram(m, progOpts...)
	if _, err := p.Run(); err != nil {
		return m, err
	}
	return m, nil
}
