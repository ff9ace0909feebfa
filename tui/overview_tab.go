package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/Anikeit18/Stock-Reseacher/client"
	"github.com/Anikeit18/Stock-Reseacher/tui/resource"
)

type overviewTab struct {
	ticker string
	res    resource.Resource[string, client.SourceReport]
	logger *log.Logger
}

func newOverviewTab(ctx context.Context, backend Backend, logger *log.Logger) overviewTab {
	return overviewTab{
		res:    resource.New(ctx, "overview", backend.Overview),
		logger: logger,
	}
}

func (t overviewTab) SetTicker(ticker string) (overviewTab, tea.Cmd) {
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

func (t overviewTab) Update(msg tea.Msg) (overviewTab, bool) {
	var handled bool
	t.res, handled = settle(t.res, msg, t.logger, "overview", t.ticker)
	return t, handled
}

func (t overviewTab) Loading() bool {
	return t.res.Status() == resource.Loading
}

func (t overviewTab) View() string {
	state := t.res.State()
	switch state.Status() {
	case resource.Loading:
		return "Loading overview data..."
	case resource.Failed:
		return errorStyle.Render("Error: Failed to fetch overview data.")
	case resource.Loaded:
		report, _ := state.Data()
		return RenderOverview(report)
	default:
		return "No overview data available."
	}
}
