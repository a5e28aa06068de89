package ui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/qastetray/cli/internal/backend"
	"github.com/qastetray/cli/internal/clipboard"
)

// SubmitFunc starts a paste in the background.
type SubmitFunc func(b backend.Backend, req backend.Request) *backend.Submission

// NewPasteOptions configures the new paste window.
type NewPasteOptions struct {
	// Backends in display order. Must not be empty.
	Backends       []backend.Backend
	DefaultBackend string
	Content        string
	Title          string
	Username       string
	// DefaultSyntax returns the preferred syntax label for a backend name.
	DefaultSyntax func(name string) string
	AskOnQuit     bool
	FgColor       string
	BgColor       string
	Clipboard     clipboard.Copier
	Submit        SubmitFunc
}

// Pasted is a successful paste made in the window.
type Pasted struct {
	URL   string
	Title string
}

const (
	focusContent = iota
	focusTitle
	focusUsername
	focusSyntax
	focusCount
)

// NewPasteModel is the interactive new paste window.
type NewPasteModel struct {
	opts NewPasteOptions

	content  textarea.Model
	title    textinput.Model
	username textinput.Model
	syntax   textinput.Model
	spin     spinner.Model
	focus    int

	backendIdx int
	expiryIdx  int

	pending    *backend.Submission
	pendingReq backend.Request
	lastURL    string
	pasted     []Pasted

	confirmQuit bool
	quitting    bool
	status      string
	statusErr   bool

	boxStyle lipgloss.Style
}

func NewNewPasteModel(opts NewPasteOptions) *NewPasteModel {
	if opts.Submit == nil {
		opts.Submit = func(b backend.Backend, req backend.Request) *backend.Submission {
			return backend.Submit(context.Background(), b, req)
		}
	}
	if opts.DefaultSyntax == nil {
		opts.DefaultSyntax = func(string) string { return "" }
	}

	content := textarea.New()
	content.Placeholder = "The content to paste"
	content.ShowLineNumbers = false
	content.CharLimit = 0
	content.MaxHeight = 0
	content.SetValue(opts.Content)
	content.Focus()

	title := textinput.New()
	title.Placeholder = "Title of your paste (optional)"
	title.Prompt = ""
	title.SetValue(opts.Title)

	username := textinput.New()
	username.Placeholder = "Name or nick"
	username.Prompt = ""
	username.SetValue(opts.Username)

	syntax := textinput.New()
	syntax.Prompt = ""

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	if opts.FgColor != "" {
		box = box.Foreground(lipgloss.Color(opts.FgColor))
	}
	if opts.BgColor != "" {
		box = box.Background(lipgloss.Color(opts.BgColor))
	}

	m := &NewPasteModel{
		opts:     opts,
		content:  content,
		title:    title,
		username: username,
		syntax:   syntax,
		spin:     s,
		boxStyle: box,
	}
	for i, b := range opts.Backends {
		if b.Descriptor().Name == opts.DefaultBackend {
			m.backendIdx = i
		}
	}
	m.resetBackendFields()
	return m
}

// Backend returns the selected backend.
func (m *NewPasteModel) Backend() backend.Backend {
	return m.opts.Backends[m.backendIdx]
}

// Pasted returns the pastes that succeeded, oldest first.
func (m *NewPasteModel) Pasted() []Pasted {
	return slices.Clone(m.pasted)
}

// Pending reports whether a submission is in flight.
func (m *NewPasteModel) Pending() bool {
	return m.pending != nil
}

func (m *NewPasteModel) resetBackendFields() {
	d := m.Backend().Descriptor()
	m.expiryIdx = 0
	syntax := m.opts.DefaultSyntax(d.Name)
	if syntax == "" {
		syntax = d.SyntaxDefault
	}
	m.syntax.SetValue(syntax)
}

func (m *NewPasteModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m *NewPasteModel) setFocus(i int) tea.Cmd {
	m.focus = (i + focusCount) % focusCount
	m.content.Blur()
	m.title.Blur()
	m.username.Blur()
	m.syntax.Blur()
	switch m.focus {
	case focusTitle:
		return m.title.Focus()
	case focusUsername:
		return m.username.Focus()
	case focusSyntax:
		return m.syntax.Focus()
	default:
		return m.content.Focus()
	}
}

func (m *NewPasteModel) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

func (m *NewPasteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.content.SetWidth(max(msg.Width-4, 20))
		m.content.SetHeight(max(msg.Height-12, 3))
		return m, nil

	case pasteDoneMsg:
		return m, m.finishPaste(backend.Result(msg))

	case spinner.TickMsg:
		if m.pending == nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.confirmQuit {
			switch msg.String() {
			case "y", "Y", "enter":
				m.quitting = true
				return m, tea.Quit
			default:
				m.confirmQuit = false
				m.setStatus("", false)
				return m, nil
			}
		}

		switch msg.String() {
		case "esc", "ctrl+c", "ctrl+q":
			return m, m.requestQuit()
		case "tab":
			return m, m.setFocus(m.focus + 1)
		case "shift+tab":
			return m, m.setFocus(m.focus - 1)
		case "ctrl+b":
			if m.pending == nil {
				m.backendIdx = (m.backendIdx + 1) % len(m.opts.Backends)
				m.resetBackendFields()
			}
			return m, nil
		case "ctrl+e":
			if m.pending == nil {
				m.expiryIdx = (m.expiryIdx + 1) % len(m.Backend().Descriptor().ExpiryDays)
			}
			return m, nil
		case "ctrl+s":
			return m, m.startPaste()
		case "ctrl+y":
			m.copyURL()
			return m, nil
		}
	}

	return m, m.updateFocused(msg)
}

func (m *NewPasteModel) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case focusTitle:
		m.title, cmd = m.title.Update(msg)
	case focusUsername:
		m.username, cmd = m.username.Update(msg)
	case focusSyntax:
		m.syntax, cmd = m.syntax.Update(msg)
	default:
		m.content, cmd = m.content.Update(msg)
	}
	return cmd
}

func (m *NewPasteModel) requestQuit() tea.Cmd {
	unsaved := strings.TrimSpace(m.content.Value()) != "" && len(m.pasted) == 0
	if m.opts.AskOnQuit && unsaved {
		m.confirmQuit = true
		m.setStatus("Quit without making a paste? (y/n)", false)
		return nil
	}
	m.quitting = true
	return tea.Quit
}

// Request builds the paste request from the window's fields.
func (m *NewPasteModel) Request() backend.Request {
	d := m.Backend().Descriptor()
	expiry := d.ExpiryDays[m.expiryIdx]
	return backend.Request{
		Content:  m.content.Value(),
		Expiry:   &expiry,
		Syntax:   strings.TrimSpace(m.syntax.Value()),
		Title:    strings.TrimSpace(m.title.Value()),
		Username: strings.TrimSpace(m.username.Value()),
	}
}

func (m *NewPasteModel) startPaste() tea.Cmd {
	if m.pending != nil {
		return nil
	}
	if strings.TrimSpace(m.content.Value()) == "" {
		m.setStatus("Nothing to paste.", true)
		return nil
	}
	req := m.Request()
	m.pending = m.opts.Submit(m.Backend(), req)
	m.pendingReq = req
	m.setStatus("Pasting to "+m.Backend().Descriptor().Name+"...", false)
	return tea.Batch(m.spin.Tick, waitForResult(m.pending))
}

func (m *NewPasteModel) finishPaste(res backend.Result) tea.Cmd {
	if m.pending == nil || res.ID != m.pending.ID || m.quitting {
		return nil
	}
	req := m.pendingReq
	m.pending = nil
	if res.Err != nil {
		m.setStatus(fmt.Sprintf("Pasting failed! %v. Check your connection or try another pastebin.", res.Err), true)
		return nil
	}
	m.lastURL = res.URL
	m.pasted = append(m.pasted, Pasted{URL: res.URL, Title: req.Title})
	m.setStatus("Pasting succeeded: "+res.URL, false)
	return nil
}

func (m *NewPasteModel) copyURL() {
	if m.lastURL == "" {
		m.setStatus("Nothing to copy yet.", true)
		return
	}
	if m.opts.Clipboard == nil {
		m.setStatus("Clipboard is not available.", true)
		return
	}
	if err := m.opts.Clipboard.Copy(m.lastURL); err != nil {
		m.setStatus("Copying failed: "+err.Error(), true)
		return
	}
	m.setStatus("Copied "+m.lastURL+" to the clipboard.", false)
}

var (
	labelStyle   = lipgloss.NewStyle().Width(10).Foreground(lipgloss.Color("244"))
	focusedLabel = labelStyle.Foreground(lipgloss.Color("205"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

func (m *NewPasteModel) label(text string, focus int, p backend.Param) string {
	style := labelStyle
	if m.focus == focus {
		style = focusedLabel
	}
	if p != "" && !m.Backend().Descriptor().Supports(p) {
		style = style.Strikethrough(true)
	}
	return style.Render(text)
}

func (m *NewPasteModel) View() string {
	if m.quitting {
		return ""
	}
	d := m.Backend().Descriptor()

	var b strings.Builder
	b.WriteString(headerStyle.Render("New paste"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", m.label("Title", focusTitle, backend.ParamTitle), m.title.View())
	b.WriteString(m.boxStyle.Render(m.content.View()))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Pastebin"), d.Name)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Expiry"), FormatExpiry(d.ExpiryDays[m.expiryIdx]))
	fmt.Fprintf(&b, "%s %s\n", m.label("Name", focusUsername, backend.ParamUsername), m.username.View())
	fmt.Fprintf(&b, "%s %s\n", m.label("Syntax", focusSyntax, backend.ParamSyntax), m.syntax.View())
	b.WriteString("\n")

	switch {
	case m.pending != nil:
		fmt.Fprintf(&b, "%s %s\n", m.spin.View(), m.status)
	case m.statusErr:
		b.WriteString(errorStyle.Render(m.status) + "\n")
	case m.status != "":
		b.WriteString(okStyle.Render(m.status) + "\n")
	}

	b.WriteString(dimStyle.Render("tab focus • ctrl+b pastebin • ctrl+e expiry • ctrl+s paste • ctrl+y copy url • esc quit"))
	b.WriteString("\n")
	return b.String()
}
