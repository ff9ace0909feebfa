package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Anikeit18/Stock-Reseacher/client"
	"github.com/Anikeit18/Stock-Reseacher/ui"
)

// errNoStocks is returned when a search matches nothing
var errNoStocks = errors.New("no stocks found")

func newSearchCmd(o *rootOptions) *cobra.Command {
	var interactive, jsonOutput bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search stocks by symbol or company name",
		Long: `Search stocks by symbol or company name and print the matches.

With --interactive, pick one of the matches from a menu and print its
details, as the show command would.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return errors.New("query must not be empty")
			}
			return runSearch(cmd, o, query, interactive, jsonOutput)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "interactive mode - show selection menu for multiple matches")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	return cmd
}

func runSearch(cmd *cobra.Command, o *rootOptions, query string, interactive, jsonOutput bool) error {
	o.logger.Debug("Starting search", "query", query, "interactive", interactive)

	apiClient := o.newClient()
	results, err := apiClient.Search(cmd.Context(), query)
	if err != nil {
		o.logger.Error("Search failed", "query", query, "error", err)
		return fmt.Errorf("error searching for stocks: %w", err)
	}
	o.logger.Debug("Search completed", "results", len(results))

	if len(results) == 0 {
		o.logger.Warn("No stocks found", "query", query)
		return errNoStocks
	}

	if !interactive {
		return printStocks(cmd, query, results, jsonOutput)
	}

	// Select stock
	var selected *client.Stock
	if len(results) == 1 {
		// Only one result - use it automatically
		selected = &results[0]
		o.logger.Info("Found stock", "symbol", selected.Symbol, "name", selected.Name)
	} else {
		o.logger.Info("Found multiple stocks", "count", len(results))
		selected, err = ui.SelectStock(results)
		if err != nil {
			o.logger.Error("Selection failed", "error", err)
			return err
		}
		o.logger.Info("Selected stock", "symbol", selected.Symbol, "name", selected.Name)
	}

	return showTicker(cmd, o, selected.Symbol, jsonOutput)
}

func printStocks(cmd *cobra.Command, query string, stocks []client.Stock, jsonOutput bool) error {
	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, stocks)
	}

	printHeader(out, fmt.Sprintf("Search Results for '%s'", query))
	for _, s := range stocks {
		fmt.Fprintf(out, "%s: %s\n", s.Symbol, s.Name)
	}
	return nil
}
