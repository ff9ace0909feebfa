package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/Anikeit18/Stock-Reseacher/client"
	"github.com/Anikeit18/Stock-Reseacher/config"
	"github.com/Anikeit18/Stock-Reseacher/tui/resource"
)

// growthTab only fetches while it is the active tab. Its key is the ticker;
// whether re-activation refetches is decided by policy.
type growthTab struct {
	ticker string
	active bool
	policy config.RefetchPolicy
	width  int
	res    resource.Resource[string, client.PriceHistory]
	logger *log.Logger
}

func newGrowthTab(ctx context.Context, backend Backend, policy config.RefetchPolicy, logger *log.Logger) growthTab {
	if policy == "" {
		policy = config.RefetchOnce
	}
	return growthTab{
		policy: policy,
		width:  defaultWidth,
		res:    resource.New(ctx, "growth", backend.PriceHistory),
		logger: logger,
	}
}

// Sync reconciles the tab with the current ticker and active flag.
func (t growthTab) Sync(ticker string, active bool) (growthTab, tea.Cmd) {
	if ticker != t.ticker {
		t.res = t.res.Reset()
		t.ticker = ticker
		t.active = false
	}

	wasActive := t.active
	t.active = active
	if ticker == "" || !active {
		t.res = t.res.Suspend()
		return t, nil
	}

	var cmd tea.Cmd
	if t.policy == config.RefetchOnActivate && !wasActive {
		t.res, cmd = t.res.Load(ticker)
	} else {
		t.res, cmd = t.res.Ensure(ticker)
	}
	return t, cmd
}

func (t growthTab) SetWidth(width int) growthTab {
	t.width = width
	return t
}

func (t growthTab) Update(msg tea.Msg) (growthTab, bool) {
	var handled bool
	t.res, handled = settle(t.res, msg, t.logger, "growth", t.ticker)
	return t, handled
}

func (t growthTab) Loading() bool {
	return t.res.Status() == resource.Loading
}

func (t growthTab) View() string {
	if !t.active {
		return "Switch to Growth Metrics tab to view data."
	}

	state := t.res.State()
	switch state.Status() {
	case resource.Loading:
		return "Loading growth metrics..."
	case resource.Failed:
		return errorStyle.Render("Error: Failed to fetch price history.")
	case resource.Loaded:
		history, _ := state.Data()
		return RenderPriceHistory(t.ticker, history, t.width)
	default:
		return "No growth metrics data available."
	}
}
