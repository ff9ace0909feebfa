package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	sourceStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	tabStyle       = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("244"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true).
			Foreground(lipgloss.Color("205")).Underline(true)
)

// View renders the header, then either the search UI or the ticker details
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Stock Researcher"))
	b.WriteString("\n")
	b.WriteString(m.statusView())
	b.WriteString("\n\n")

	if m.ticker != "" {
		b.WriteString(m.details.View())
		b.WriteString("\n\n")
		b.WriteString(m.help.ShortHelpView(m.keys.detailHelp()))
		return b.String()
	}

	b.WriteString(m.form.View())
	b.WriteString("\n")

	switch {
	case m.Searching():
		query, _ := m.search.Key()
		fmt.Fprintf(&b, "\n%s Searching for '%s'...\n", spinnerStyle.Render(m.spinner.View()), query)
	case m.SearchError() != "":
		b.WriteString("\n" + errorStyle.Render(m.SearchError()) + "\n")
	case m.results.Len() > 0:
		b.WriteString("\n" + m.results.View() + "\n")
	default:
		b.WriteString("\n" + mutedStyle.Render(m.details.View()) + "\n")
	}

	b.WriteString("\n")
	if m.focus == focusResults {
		b.WriteString(m.help.ShortHelpView(m.keys.resultsHelp()))
	} else {
		b.WriteString(m.help.ShortHelpView(m.keys.inputHelp()))
	}
	return b.String()
}

func (m Model) statusView() string {
	switch {
	case !m.healthDone:
		return fmt.Sprintf("%s %s", spinnerStyle.Render(m.spinner.View()), m.BackendStatus())
	case m.health == backendUnavailable:
		return errorStyle.Render(m.BackendStatus())
	default:
		status := infoStyle.Render(m.BackendStatus())
		if m.loading() {
			status += " " + spinnerStyle.Render(m.spinner.View())
		}
		return status
	}
}
