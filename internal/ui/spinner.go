package ui

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/qastetray/cli/internal/backend"
)

// ErrCanceled is returned when the user leaves the spinner before the paste
// finishes. The submission keeps running and its result is dropped.
var ErrCanceled = errors.New("paste canceled")

// RunSpinner shows a spinner on stderr until sub delivers its result.
func RunSpinner(ctx context.Context, title string, sub *backend.Submission) (backend.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	m := newSpinnerModel(title, sub)
	p := tea.NewProgram(m, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return backend.Result{}, err
	}
	if m.canceled {
		return backend.Result{}, ErrCanceled
	}
	return m.result, nil
}

// pasteDoneMsg carries the single result of a submission.
type pasteDoneMsg backend.Result

// waitForResult blocks on the submission's channel inside a tea.Cmd.
func waitForResult(sub *backend.Submission) tea.Cmd {
	return func() tea.Msg {
		return pasteDoneMsg(<-sub.Done())
	}
}

type spinnerModel struct {
	title    string
	sub      *backend.Submission
	spin     spinner.Model
	done     bool
	canceled bool
	result   backend.Result
	style    lipgloss.Style
}

func newSpinnerModel(title string, sub *backend.Submission) *spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &spinnerModel{
		title: title,
		sub:   sub,
		spin:  s,
		style: lipgloss.NewStyle().Padding(0, 1),
	}
}

func (m *spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, waitForResult(m.sub))
}

func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.canceled = true
			return m, tea.Quit
		}
	case pasteDoneMsg:
		if msg.ID != m.sub.ID {
			return m, nil
		}
		m.done = true
		m.result = backend.Result(msg)
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *spinnerModel) View() string {
	if m.done {
		if m.result.Err != nil {
			return m.style.Render("✗ " + m.title + "\n")
		}
		return m.style.Render("✓ " + m.title + "\n")
	}
	if m.canceled {
		return m.style.Render("✗ " + m.title + " (canceled)\n")
	}
	return m.style.Render(m.spin.View() + " " + m.title)
}
