package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/Anikeit18/Stock-Reseacher/client"
)

// SelectStock presents an interactive selection menu for choosing a ticker
func SelectStock(stocks []client.Stock) (*client.Stock, error) {
	if len(stocks) == 0 {
		return nil, errors.New("no stocks to select from")
	}

	var selected string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Multiple stocks found - choose one:").
				Options(StockOptions(stocks)...).
				Value(&selected),
		),
	)

	// Run the form
	if err := form.Run(); err != nil {
		return nil, err
	}

	for i := range stocks {
		if stocks[i].Symbol == selected {
			return &stocks[i], nil
		}
	}

	return nil, errors.New("selection not found")
}

// StockOptions builds one huh option per stock, labelled "SYMBOL: Name"
func StockOptions(stocks []client.Stock) []huh.Option[string] {
	options := make([]huh.Option[string], len(stocks))
	for i, s := range stocks {
		label := s.Symbol
		if s.Name != "" {
			name := s.Name
			if len(name) > 60 {
				name = name[:57] + "..."
			}
			label = fmt.Sprintf("%s: %s", s.Symbol, name)
		}
		options[i] = huh.NewOption(label, s.Symbol)
	}
	return options
}
