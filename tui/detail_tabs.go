package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/Anikeit18/Stock-Reseacher/tui/resource"
)

const (
	tabOverview = iota
	tabGrowth
	tabNews
	tabFinancials
	tabCount
)

var tabTitles = [tabCount]string{"Overview", "Growth Metrics", "News", "Financials"}

// detailHeaderLines is the title, tab strip and a blank line above the panel
const detailHeaderLines = 4

// detailTabs hosts the four ticker panels. Every panel receives the ticker
// whether or not it is visible; only growth is gated on being active.
type detailTabs struct {
	ticker string
	active int

	overview   overviewTab
	growth     growthTab
	news       newsTab
	financials financialsTab

	viewport viewport.Model
	keys     keyMap
}

func newDetailTabs(ctx context.Context, opts Options, logger *log.Logger, width, height int) detailTabs {
	d := detailTabs{
		overview:   newOverviewTab(ctx, opts.Backend, logger),
		growth:     newGrowthTab(ctx, opts.Backend, opts.GrowthRefetch, logger),
		news:       newNewsTab(ctx, opts.Backend, opts.MarkdownStyle, logger),
		financials: newFinancialsTab(ctx, opts.Backend, logger),
		viewport:   viewport.New(width, panelHeight(height)),
		keys:       defaultKeyMap(),
	}
	return d.refresh()
}

func panelHeight(height int) int {
	h := height - detailHeaderLines
	if h < 3 {
		h = 3
	}
	return h
}

// SetTicker hands a new ticker (or "" to clear) to every panel and resets
// the active tab to Overview.
func (d detailTabs) SetTicker(ticker string) (detailTabs, tea.Cmd) {
	d.ticker = ticker
	d.active = tabOverview

	var cmds [4]tea.Cmd
	d.overview, cmds[0] = d.overview.SetTicker(ticker)
	d.growth, cmds[1] = d.growth.Sync(ticker, false)
	d.news, cmds[2] = d.news.SetTicker(ticker)
	d.financials, cmds[3] = d.financials.SetTicker(ticker)

	d.viewport.GotoTop()
	return d.refresh(), tea.Batch(cmds[:]...)
}

// SetActive switches the visible panel
func (d detailTabs) SetActive(index int) (detailTabs, tea.Cmd) {
	if index < 0 || index >= tabCount {
		return d, nil
	}
	d.active = index

	var cmd tea.Cmd
	d.growth, cmd = d.growth.Sync(d.ticker, index == tabGrowth)

	d.viewport.GotoTop()
	return d.refresh(), cmd
}

func (d detailTabs) Active() int {
	return d.active
}

func (d detailTabs) SetSize(width, height int) detailTabs {
	d.viewport.Width = width
	d.viewport.Height = panelHeight(height)
	d.growth = d.growth.SetWidth(width)
	d.news = d.news.SetWidth(width)
	return d.refresh()
}

// Loading reports whether any panel has a request in flight
func (d detailTabs) Loading() bool {
	return d.overview.Loading() || d.growth.Loading() || d.news.Loading() || d.financials.Loading()
}

func (d detailTabs) Update(msg tea.Msg) (detailTabs, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return d.handleKey(keyMsg)
	}

	var handled bool
	if d.overview, handled = d.overview.Update(msg); handled {
		return d.refresh(), nil
	}
	if d.growth, handled = d.growth.Update(msg); handled {
		return d.refresh(), nil
	}
	if d.news, handled = d.news.Update(msg); handled {
		return d.refresh(), nil
	}
	if d.financials, handled = d.financials.Update(msg); handled {
		return d.refresh(), nil
	}

	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

func (d detailTabs) handleKey(msg tea.KeyMsg) (detailTabs, tea.Cmd) {
	switch {
	case key.Matches(msg, d.keys.NextTab):
		return d.SetActive((d.active + 1) % tabCount)
	case key.Matches(msg, d.keys.PrevTab):
		return d.SetActive((d.active + tabCount - 1) % tabCount)
	case key.Matches(msg, d.keys.JumpTab):
		return d.SetActive(int(msg.String()[0] - '1'))
	}

	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

// refresh re-renders the active panel into the viewport
func (d detailTabs) refresh() detailTabs {
	d.viewport.SetContent(d.panelView())
	return d
}

func (d detailTabs) panelView() string {
	switch d.active {
	case tabGrowth:
		return d.growth.View()
	case tabNews:
		return d.news.View()
	case tabFinancials:
		return d.financials.View()
	default:
		return d.overview.View()
	}
}

func (d detailTabs) tabStrip() string {
	tabs := make([]string, tabCount)
	for i, title := range tabTitles {
		if i == d.active {
			tabs[i] = activeTabStyle.Render(title)
		} else {
			tabs[i] = tabStyle.Render(title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (d detailTabs) View() string {
	if d.ticker == "" {
		return "Select a stock to see details."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(d.ticker + " Details"))
	b.WriteString("\n")
	b.WriteString(d.tabStrip())
	b.WriteString("\n\n")
	b.WriteString(d.viewport.View())
	return b.String()
}

// settle applies a possible fetch result to r and logs when it settles the
// current request. Stale results are consumed silently.
func settle[K comparable, T any](r resource.Resource[K, T], msg tea.Msg, logger *log.Logger, tab, ticker string) (resource.Resource[K, T], bool) {
	prev := r.Status()
	r, handled := r.Update(msg)
	if !handled || prev != resource.Loading || r.Status() == resource.Loading {
		return r, handled
	}

	if err := r.State().Err(); err != nil {
		logger.Error("Fetch failed", "tab", tab, "ticker", ticker, "error", err)
	} else {
		logger.Debug("Fetch settled", "tab", tab, "ticker", ticker, "status", r.Status())
	}
	return r, handled
}
