package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/Anikeit18/Stock-Reseacher/client"
	"github.com/Anikeit18/Stock-Reseacher/tui/resource"
)

type financialsTab struct {
	ticker string
	res    resource.Resource[string, client.Financials]
	logger *log.Logger
}

func newFinancialsTab(ctx context.Context, backend Backend, logger *log.Logger) financialsTab {
	return financialsTab{
		res:    resource.New(ctx, "financials", backend.Financials),
		logger: logger,
	}
}

func (t financialsTab) SetTicker(ticker string) (financialsTab, tea.Cmd) {
	if ticker == t.ticker {
		return t, nil
	}
	t.ticker = ticker
	if ticker == "" {
		t.res = t.res.Reset()
		return t, nil
	}

	var cmd tea.Cmd
	t.res, cmd = t.res.Load(ticker)
	return t, cmd
}

func (t financialsTab) Update(msg tea.Msg) (financialsTab, bool) {
	var handled bool
	t.res, handled = settle(t.res, msg, t.logger, "financials", t.ticker)
	return t, handled
}

func (t financialsTab) Loading() bool {
	return t.res.Status() == resource.Loading
}

func (t financialsTab) View() string {
	state := t.res.State()
	switch state.Status() {
	case resource.Loading:
		return "Loading financial metrics..."
	case resource.Failed:
		return errorStyle.Render("Error: Failed to fetch financial metrics.")
	case resource.Loaded:
		fin, _ := state.Data()
		return RenderFinancials(fin)
	default:
		return "No financial metrics data available."
	}
}
