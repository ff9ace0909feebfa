package tui

import (
	"context"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anikeit18/Stock-Reseacher/client"
	"github.com/Anikeit18/Stock-Reseacher/config"
)

func newTestTabs(backend Backend, policy config.RefetchPolicy) detailTabs {
	opts := testOptions(backend, policy)
	return newDetailTabs(opts.Context, opts, opts.Logger, defaultWidth, defaultHeight)
}

// feed delivers each message produced by cmd to the tabs
func feed(d detailTabs, cmd tea.Cmd) detailTabs {
	for _, msg := range runCmd(cmd) {
		d, _ = d.Update(msg)
	}
	return d
}

func TestDetailTabs_Placeholder(t *testing.T) {
	d := newTestTabs(newFakeBackend(), config.RefetchOnce)
	assert.Equal(t, "Select a stock to see details.", d.View())
}

func TestDetailTabs_TickerChangeDropsStaleResults(t *testing.T) {
	backend := newFakeBackend()
	d := newTestTabs(backend, config.RefetchOnce)

	d, firstCmd := d.SetTicker("AAA")
	d, secondCmd := d.SetTicker("BBB")

	d = feed(d, secondCmd)
	d = feed(d, firstCmd)

	assert.False(t, d.Loading())
	view := d.View()
	assert.Contains(t, view, "BBB Details")
	assert.Contains(t, view, "Data from BBB")
	assert.NotContains(t, view, "AAA")
}

func TestDetailTabs_SwitchingTabs(t *testing.T) {
	d := newTestTabs(newFakeBackend(), config.RefetchOnce)
	d, cmd := d.SetTicker("ACME")
	d = feed(d, cmd)

	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, tabGrowth, d.Active())

	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("4")})
	assert.Equal(t, tabFinancials, d.Active())
	assert.Contains(t, d.View(), "Financial Metrics and Ratios")
	assert.Contains(t, d.View(), client.FinancialsNotImplemented)

	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, tabOverview, d.Active(), "tab wraps around")

	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, tabFinancials, d.Active())
}

func TestDetailTabs_NewTickerResetsActiveTab(t *testing.T) {
	d := newTestTabs(newFakeBackend(), config.RefetchOnce)
	d, _ = d.SetTicker("ACME")
	d, _ = d.SetActive(tabNews)

	d, _ = d.SetTicker("BBB")
	assert.Equal(t, tabOverview, d.Active())
}

func TestGrowthTab_InactiveDoesNotFetch(t *testing.T) {
	backend := newFakeBackend()
	g := newGrowthTab(context.Background(), backend, config.RefetchOnce, log.New(io.Discard))

	g, cmd := g.Sync("ACME", false)
	assert.Nil(t, cmd)
	assert.Equal(t, "Switch to Growth Metrics tab to view data.", g.View())
	assert.Empty(t, backend.Calls("history"))
}

func TestGrowthTab_OncePolicyKeepsLoadedData(t *testing.T) {
	backend := newFakeBackend()
	d := newTestTabs(backend, config.RefetchOnce)
	d, _ = d.SetTicker("ACME")

	d, cmd := d.SetActive(tabGrowth)
	require.NotNil(t, cmd)
	d = feed(d, cmd)

	d, cmd = d.SetActive(tabOverview)
	assert.Nil(t, cmd)
	d, cmd = d.SetActive(tabGrowth)
	assert.Nil(t, cmd)

	assert.Equal(t, []string{"ACME"}, backend.Calls("history"))
}

func TestGrowthTab_OnActivatePolicyRefetches(t *testing.T) {
	backend := newFakeBackend()
	d := newTestTabs(backend, config.RefetchOnActivate)
	d, _ = d.SetTicker("ACME")

	d, cmd := d.SetActive(tabGrowth)
	d = feed(d, cmd)
	d, _ = d.SetActive(tabNews)
	d, cmd = d.SetActive(tabGrowth)
	d = feed(d, cmd)

	assert.Equal(t, []string{"ACME", "ACME"}, backend.Calls("history"))
	assert.False(t, d.Loading())
}

func TestGrowthTab_SuspendedFetchIsRetried(t *testing.T) {
	backend := newFakeBackend()
	d := newTestTabs(backend, config.RefetchOnce)
	d, _ = d.SetTicker("ACME")

	d, abandoned := d.SetActive(tabGrowth)
	d, _ = d.SetActive(tabOverview)
	assert.False(t, d.growth.Loading())

	// the abandoned response is dropped
	d = feed(d, abandoned)
	d, cmd := d.SetActive(tabGrowth)
	require.NotNil(t, cmd)
	assert.True(t, d.growth.Loading())

	d = feed(d, cmd)
	assert.False(t, d.growth.Loading())
}

func TestGrowthTab_RendersChartAndStatus(t *testing.T) {
	backend := newFakeBackend()
	history, err := client.ParsePriceHistory([]byte(`{
		"yfinance": [
			{"Date": "2024-01-02", "Close": 10.5},
			{"Date": "2024-01-03", "Close": 11.25},
			{"Date": "2024-01-04", "Close": 12}
		],
		"alphavantage": {"error": "rate limited"}
	}`))
	require.NoError(t, err)
	backend.history = history

	d := newTestTabs(backend, config.RefetchOnce)
	d, _ = d.SetTicker("ACME")
	d, cmd := d.SetActive(tabGrowth)
	d = feed(d, cmd)

	view := d.growth.View()
	assert.Contains(t, view, "Growth Metrics (Historical Price Data)")
	assert.Contains(t, view, "ACME Closing Price (yfinance)")
	assert.Contains(t, view, "3 data points available.")
	assert.Contains(t, view, "Error: rate limited")
}

func TestNewsTab_RendersArticles(t *testing.T) {
	backend := newFakeBackend()
	backend.articles = []client.Article{
		{Headline: "Acme beats estimates", Source: "Wire", Datetime: client.NewsTime{Unix: 1700000000}},
	}
	d := newTestTabs(backend, config.RefetchOnce)
	d, cmd := d.SetTicker("ACME")
	d = feed(d, cmd)

	view := d.news.View()
	assert.Contains(t, view, "Acme beats estimates")
	assert.Contains(t, view, "Wire")
}

func TestNewsTab_Empty(t *testing.T) {
	d := newTestTabs(newFakeBackend(), config.RefetchOnce)
	d, cmd := d.SetTicker("ACME")
	d = feed(d, cmd)

	assert.Equal(t, "No news available.", d.news.View())
}
