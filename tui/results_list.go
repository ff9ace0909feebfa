package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Anikeit18/Stock-Reseacher/client"
)

// maxVisibleResults caps the list height; longer lists paginate
const maxVisibleResults = 10

type stockItem struct {
	stock client.Stock
}

func (i stockItem) Title() string       { return fmt.Sprintf("%s: %s", i.stock.Symbol, i.stock.Name) }
func (i stockItem) Description() string { return "" }
func (i stockItem) FilterValue() string { return i.stock.Symbol + " " + i.stock.Name }

type resultsList struct {
	list   list.Model
	stocks []client.Stock
	width  int
}

func newResultsList(width int) resultsList {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)
	delegate.SetHeight(1)

	l := list.New(nil, delegate, width, listHeight(0))
	l.Title = "Search Results"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.Styles.Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		MarginLeft(2)

	return resultsList{list: l, width: width}
}

// listHeight leaves room for the title (2), pagination (2) and padding (2)
func listHeight(count int) int {
	if count > maxVisibleResults {
		count = maxVisibleResults
	}
	return 2 + count + 2 + 2
}

// SetStocks replaces the rows; nil or empty hides the list
func (r resultsList) SetStocks(stocks []client.Stock) resultsList {
	r.stocks = stocks

	items := make([]list.Item, len(stocks))
	for i, s := range stocks {
		items[i] = stockItem{stock: s}
	}
	r.list.SetItems(items)
	r.list.ResetSelected()
	r.list.SetSize(r.width, listHeight(len(stocks)))
	return r
}

func (r resultsList) SetWidth(width int) resultsList {
	r.width = width
	r.list.SetSize(width, listHeight(len(r.stocks)))
	return r
}

func (r resultsList) Len() int {
	return len(r.stocks)
}

// Update moves the cursor; enter emits tickerSelectedMsg for the current row
func (r resultsList) Update(msg tea.Msg) (resultsList, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		item, ok := r.list.SelectedItem().(stockItem)
		if !ok {
			return r, nil
		}
		symbol := item.stock.Symbol
		return r, func() tea.Msg {
			return tickerSelectedMsg{symbol: symbol}
		}
	}

	var cmd tea.Cmd
	r.list, cmd = r.list.Update(msg)
	return r, cmd
}

func (r resultsList) View() string {
	if len(r.stocks) == 0 {
		return ""
	}
	return r.list.View()
}
