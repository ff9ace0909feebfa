package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/log"

	"github.com/Anikeit18/Stock-Reseacher/client"
	"github.com/Anikeit18/Stock-Reseacher/tui/resource"
)

// maxWrapWidth keeps long summaries readable on wide terminals
const maxWrapWidth = 120

type newsTab struct {
	ticker   string
	res      resource.Resource[string, []client.Article]
	style    string
	width    int
	renderer *glamour.TermRenderer
	logger   *log.Logger
}

func newNewsTab(ctx context.Context, backend Backend, style string, logger *log.Logger) newsTab {
	if style == "" {
		style = "dark"
	}
	t := newsTab{
		res:    resource.New(ctx, "news", backend.News),
		style:  style,
		logger: logger,
	}
	return t.SetWidth(defaultWidth)
}

// SetWidth rebuilds the markdown renderer for the new wrap width
func (t newsTab) SetWidth(width int) newsTab {
	wrap := width - 4
	if wrap > maxWrapWidth {
		wrap = maxWrapWidth
	}
	if wrap < 20 {
		wrap = 20
	}
	if t.renderer != nil && wrap == t.width {
		return t
	}
	t.width = wrap

	styleOpt := glamour.WithStandardStyle(t.style)
	if t.style == "auto" {
		styleOpt = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(wrap))
	if err != nil {
		t.logger.Warn("Markdown renderer unavailable, showing raw text", "style", t.style, "error", err)
		t.renderer = nil
		return t
	}
	t.renderer = r
	return t
}

func (t newsTab) SetTicker(ticker string) (newsTab, tea.Cmd) {
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

func (t newsTab) Update(msg tea.Msg) (newsTab, bool) {
	var handled bool
	t.res, handled = settle(t.res, msg, t.logger, "news", t.ticker)
	return t, handled
}

func (t newsTab) Loading() bool {
	return t.res.Status() == resource.Loading
}

func (t newsTab) View() string {
	state := t.res.State()
	switch state.Status() {
	case resource.Loading:
		return "Loading news..."
	case resource.Failed:
		return errorStyle.Render("Error: Failed to fetch news data.")
	case resource.Loaded:
		articles, _ := state.Data()
		if len(articles) == 0 {
			return "No news available."
		}
		return t.render(NewsMarkdown(articles))
	default:
		return "No news available."
	}
}

func (t newsTab) render(md string) string {
	if t.renderer == nil {
		return md
	}
	out, err := t.renderer.Render(md)
	if err != nil {
		t.logger.Warn("Failed to render news markdown", "error", err)
		return md
	}
	return out
}
