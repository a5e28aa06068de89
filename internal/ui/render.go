package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/qastetray/cli/internal/backend"
	"github.com/qastetray/cli/internal/recent"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// FormatExpiry renders an expiry in days for people.
func FormatExpiry(days int) string {
	switch days {
	case backend.NeverExpires:
		return "never"
	case 1:
		return "1 day"
	default:
		return strconv.Itoa(days) + " days"
	}
}

// RenderBackends lists backends with their command-line names, expiry
// choices and accepted parameters. sources maps names to where they were
// loaded from and may be nil.
func RenderBackends(descs []backend.Descriptor, sources map[string]string) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Available pastebins"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", 19))
	b.WriteString("\n\n")

	for _, d := range descs {
		fmt.Fprintf(&b, "%s %s\n", nameStyle.Render(backend.Abbreviate(d.Name)), dimStyle.Render("("+d.Name+")"))
		if d.URL != "" {
			fmt.Fprintf(&b, "  🔗 %s\n", d.URL)
		}

		expiries := make([]string, len(d.ExpiryDays))
		for i, days := range d.ExpiryDays {
			expiries[i] = FormatExpiry(days)
		}
		fmt.Fprintf(&b, "  ⏳ Expiry: %s (default %s)\n", strings.Join(expiries, ", "), FormatExpiry(d.DefaultExpiry()))

		params := make([]string, len(d.PasteArgs))
		for i, p := range d.PasteArgs {
			params[i] = string(p)
		}
		fmt.Fprintf(&b, "  📝 Parameters: %s\n", strings.Join(params, ", "))

		if len(d.SyntaxChoices) > 0 {
			fmt.Fprintf(&b, "  🎨 Syntax choices: %d (default %s)\n", len(d.SyntaxChoices), d.SyntaxDefault)
		}
		if src := sources[d.Name]; src != "" {
			fmt.Fprintf(&b, "  %s\n", dimStyle.Render("from "+src))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderRecent lists recent pastes, most recent first.
func RenderRecent(entries []recent.Entry) string {
	if len(entries) == 0 {
		return "No recent pastes.\n"
	}
	var b strings.Builder
	for i, e := range entries {
		if e.Title == e.URL {
			fmt.Fprintf(&b, "%2d. %s\n", i+1, e.URL)
			continue
		}
		fmt.Fprintf(&b, "%2d. %s %s\n", i+1, e.Title, dimStyle.Render(e.URL))
	}
	return b.String()
}
