package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type searchForm struct {
	input textinput.Model
}

func newSearchForm() searchForm {
	ti := textinput.New()
	ti.Placeholder = "Enter stock symbol or name"
	ti.Prompt = "🔍 "
	ti.CharLimit = 64
	ti.Width = 40
	ti.Focus()

	return searchForm{input: ti}
}

// Update forwards editing keys to the input. On enter it emits a
// searchSubmittedMsg with the trimmed query, or nothing if that is empty.
func (f searchForm) Update(msg tea.Msg) (searchForm, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		return f, f.submit()
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

func (f searchForm) submit() tea.Cmd {
	query := strings.TrimSpace(f.input.Value())
	if query == "" {
		return nil
	}
	return func() tea.Msg {
		return searchSubmittedMsg{query: query}
	}
}

func (f searchForm) Focus() (searchForm, tea.Cmd) {
	cmd := f.input.Focus()
	return f, cmd
}

func (f searchForm) Blur() searchForm {
	f.input.Blur()
	return f
}

func (f searchForm) Value() string {
	return f.input.Value()
}

func (f searchForm) SetValue(s string) searchForm {
	f.input.SetValue(s)
	return f
}

func (f searchForm) View() string {
	return f.input.View()
}
