package tui

import (
	"context"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/Anikeit18/Stock-Reseacher/client"
	"github.com/Anikeit18/Stock-Reseacher/config"
)

// fakeBackend answers from canned data and records every call by endpoint.
type fakeBackend struct {
	mu    sync.Mutex
	calls map[string][]string

	healthErr error
	searchErr error
	stocks    map[string][]client.Stock
	history   client.PriceHistory
	articles  []client.Article
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{calls: make(map[string][]string)}
}

func (f *fakeBackend) record(endpoint, arg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[endpoint] = append(f.calls[endpoint], arg)
}

func (f *fakeBackend) Calls(endpoint string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls[endpoint]...)
}

func (f *fakeBackend) Health(ctx context.Context) (string, error) {
	f.record("health", "")
	if f.healthErr != nil {
		return "", f.healthErr
	}
	return "Backend is running", nil
}

func (f *fakeBackend) Search(ctx context.Context, query string) ([]client.Stock, error) {
	f.record("search", query)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.stocks[query], nil
}

// Overview names its single source after the ticker so tests can tell
// which request a rendered report came from.
func (f *fakeBackend) Overview(ctx context.Context, ticker string) (client.SourceReport, error) {
	f.record("overview", ticker)
	return client.SourceReport{
		{Name: ticker, Kind: client.KindData, Fields: []client.Field{{Key: "name", Value: ticker + " Inc"}}},
	}, nil
}

func (f *fakeBackend) PriceHistory(ctx context.Context, ticker string) (client.PriceHistory, error) {
	f.record("history", ticker)
	return f.history, nil
}

func (f *fakeBackend) News(ctx context.Context, ticker string) ([]client.Article, error) {
	f.record("news", ticker)
	return f.articles, nil
}

func (f *fakeBackend) Financials(ctx context.Context, ticker string) (client.Financials, error) {
	f.record("financials", ticker)
	return client.Financials{Ticker: ticker, Message: client.FinancialsNotImplemented}, nil
}

func testOptions(backend Backend, policy config.RefetchPolicy) Options {
	return Options{
		Context:       context.Background(),
		Backend:       backend,
		Logger:        log.New(io.Discard),
		GrowthRefetch: policy,
		MarkdownStyle: "notty",
	}
}

// runCmd executes cmd and flattens batches into the resulting messages.
// Only use it on commands that do not tick.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, runCmd(c)...)
		}
		return msgs
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}
