package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/Anikeit18/Stock-Reseacher/client"
	"github.com/Anikeit18/Stock-Reseacher/config"
	"github.com/Anikeit18/Stock-Reseacher/tui/resource"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	backendUnavailable = "Backend unavailable"
	noStocksFound      = "No stocks found"
	searchFailed       = "Error searching for stocks"
)

// Backend is the part of the API client the UI talks to
type Backend interface {
	Health(ctx context.Context) (string, error)
	Search(ctx context.Context, query string) ([]client.Stock, error)
	Overview(ctx context.Context, ticker string) (client.SourceReport, error)
	PriceHistory(ctx context.Context, ticker string) (client.PriceHistory, error)
	News(ctx context.Context, ticker string) ([]client.Article, error)
	Financials(ctx context.Context, ticker string) (client.Financials, error)
}

type focus int

const (
	focusInput focus = iota
	focusResults
)

// Options contains configuration for the Model
type Options struct {
	Context       context.Context
	Backend       Backend
	Logger        *log.Logger
	GrowthRefetch config.RefetchPolicy
	MarkdownStyle string
}

// Model is the root Bubble Tea model: search, results and ticker details
type Model struct {
	ctx     context.Context
	backend Backend
	logger  *log.Logger

	// Backend health
	health     string
	healthDone bool

	// Search
	form    searchForm
	search  resource.Resource[string, []client.Stock]
	results resultsList
	focus   focus

	// Selection
	ticker  string
	details detailTabs

	// UI Components
	spinner spinner.Model
	keys    keyMap
	help    help.Model

	width  int
	height int
}

// NewModel creates a new Bubble Tea model
func NewModel(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		ctx:     ctx,
		backend: opts.Backend,
		logger:  logger,
		form:    newSearchForm(),
		search:  resource.New(ctx, "search", opts.Backend.Search),
		results: newResultsList(defaultWidth),
		details: newDetailTabs(ctx, opts, logger, defaultWidth, defaultHeight),
		spinner: s,
		keys:    defaultKeyMap(),
		help:    help.New(),
		width:   defaultWidth,
		height:  defaultHeight,
	}
}

// Ticker returns the selected ticker, or "" while searching
func (m Model) Ticker() string {
	return m.ticker
}

// Searching reports whether a search request is in flight
func (m Model) Searching() bool {
	return m.search.Status() == resource.Loading
}

// SearchError returns the user-facing search notice, if any
func (m Model) SearchError() string {
	switch m.search.Status() {
	case resource.Failed:
		return searchFailed
	case resource.Loaded:
		if stocks, _ := m.search.State().Data(); len(stocks) == 0 {
			return noStocksFound
		}
	}
	return ""
}

// BackendStatus returns the health line text
func (m Model) BackendStatus() string {
	if !m.healthDone {
		return "Loading backend status..."
	}
	return "Backend Status: " + m.health
}
