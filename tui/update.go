package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Anikeit18/Stock-Reseacher/tui/resource"
)

// headerLines is the title, backend status and spacing above the body
const headerLines = 4

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.checkHealth(),
		textinput.Blink,
	)
}

// Update handles messages and state transitions
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.results = m.results.SetWidth(msg.Width)
		m.details = m.details.SetSize(msg.Width, msg.Height-headerLines)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case healthCompleteMsg:
		m.healthDone = true
		if msg.err != nil {
			m.logger.Error("Health check failed", "error", msg.err)
			m.health = backendUnavailable
			return m, nil
		}
		m.logger.Debug("Health check completed", "message", msg.message)
		m.health = msg.message
		return m, nil

	case searchSubmittedMsg:
		return m.startSearch(msg.query)

	case tickerSelectedMsg:
		return m.selectTicker(msg.symbol)
	}

	// Fetch results: search first, then the detail tabs
	var handled bool
	searching := m.Searching()
	if m.search, handled = settle(m.search, msg, m.logger, "search", m.form.Value()); handled {
		if searching && !m.Searching() {
			return m.searchSettled()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.details, cmd = m.details.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ticker != "" {
		if key.Matches(msg, m.keys.Back) {
			return m.backToSearch()
		}
		var cmd tea.Cmd
		m.details, cmd = m.details.Update(msg)
		return m, cmd
	}

	if m.focus == focusResults {
		if key.Matches(msg, m.keys.Focus, m.keys.Back) {
			return m.focusInput()
		}
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}

	if msg.Type == tea.KeyDown && m.results.Len() > 0 {
		m.form = m.form.Blur()
		m.focus = focusResults
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

// startSearch clears the current selection and fetches stocks for query.
// A newer query supersedes one still in flight.
func (m Model) startSearch(query string) (tea.Model, tea.Cmd) {
	m.logger.Info("Searching stocks", "query", query)

	m.ticker = ""
	var clearCmd tea.Cmd
	m.details, clearCmd = m.details.SetTicker("")
	m.results = m.results.SetStocks(nil)

	var cmd tea.Cmd
	m.search, cmd = m.search.Load(query)
	return m, tea.Batch(clearCmd, cmd)
}

func (m Model) searchSettled() (tea.Model, tea.Cmd) {
	stocks, ok := m.search.State().Data()
	if !ok {
		return m, nil
	}
	m.logger.Debug("Search completed", "results", len(stocks))

	m.results = m.results.SetStocks(stocks)
	if len(stocks) == 0 {
		return m, nil
	}
	m.form = m.form.Blur()
	m.focus = focusResults
	return m, nil
}

// selectTicker shows the detail tabs for symbol and clears the results
func (m Model) selectTicker(symbol string) (tea.Model, tea.Cmd) {
	m.logger.Info("Selected ticker", "ticker", symbol)

	m.ticker = symbol
	m.results = m.results.SetStocks(nil)
	m.search = m.search.Reset()
	m.form = m.form.Blur()

	var cmd tea.Cmd
	m.details, cmd = m.details.SetTicker(symbol)
	return m, cmd
}

func (m Model) backToSearch() (tea.Model, tea.Cmd) {
	m.ticker = ""
	var clearCmd tea.Cmd
	m.details, clearCmd = m.details.SetTicker("")

	model, focusCmd := m.focusInput()
	return model, tea.Batch(clearCmd, focusCmd)
}

func (m Model) focusInput() (Model, tea.Cmd) {
	m.focus = focusInput
	var cmd tea.Cmd
	m.form, cmd = m.form.Focus()
	return m, cmd
}

// Command functions (run async)

func (m Model) checkHealth() tea.Cmd {
	backend, ctx := m.backend, m.ctx
	return func() tea.Msg {
		message, err := backend.Health(ctx)
		return healthCompleteMsg{
			message: message,
			err:     err,
		}
	}
}

// loading reports whether anything the user is waiting on is in flight
func (m Model) loading() bool {
	return !m.healthDone || m.search.Status() == resource.Loading || m.details.Loading()
}
