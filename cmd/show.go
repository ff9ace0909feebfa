package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Anikeit18/Stock-Reseacher/client"
	"github.com/Anikeit18/Stock-Reseacher/tui"
)

// Section names used for logging and in the JSON errors map
const (
	sectionOverview   = "overview"
	sectionGrowth     = "price_history"
	sectionNews       = "news"
	sectionFinancials = "financials"

	sectionCount = 4
)

// tickerReport holds every section fetched for one ticker. A failed section
// is left empty and its error recorded under Errors.
type tickerReport struct {
	Ticker       string               `json:"ticker"`
	Overview     client.SourceReport  `json:"overview,omitempty"`
	PriceHistory *client.PriceHistory `json:"price_history,omitempty"`
	News         []client.Article     `json:"news,omitempty"`
	Financials   *client.Financials   `json:"financials,omitempty"`
	Errors       map[string]string    `json:"errors,omitempty"`

	errs map[string]error
}

func newShowCmd(o *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <ticker>",
		Short: "Print overview, growth metrics, news and financials for a ticker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticker := strings.TrimSpace(args[0])
			if ticker == "" {
				return errors.New("ticker must not be empty")
			}
			return showTicker(cmd, o, ticker, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	return cmd
}

func showTicker(cmd *cobra.Command, o *rootOptions, ticker string, jsonOutput bool) error {
	o.logger.Info("Fetching stock details", "ticker", ticker)

	report := fetchReport(cmd.Context(), o, ticker)
	for section, err := range report.errs {
		o.logger.Error("Fetch failed", "section", section, "ticker", ticker, "error", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		if err := printJSON(out, report); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	} else {
		printReport(out, report, o.cfg.MarkdownStyle)
	}

	if len(report.errs) == sectionCount {
		return fmt.Errorf("every section failed for %s", ticker)
	}
	return nil
}

// fetchReport requests all sections concurrently. Each goroutine records its
// own error so one failing section never hides the others.
func fetchReport(ctx context.Context, o *rootOptions, ticker string) tickerReport {
	apiClient := o.newClient()

	var (
		overview   client.SourceReport
		history    client.PriceHistory
		news       []client.Article
		financials client.Financials
		errs       [sectionCount]error
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		overview, errs[0] = apiClient.Overview(ctx, ticker)
		return nil
	})
	g.Go(func() error {
		history, errs[1] = apiClient.PriceHistory(ctx, ticker)
		return nil
	})
	g.Go(func() error {
		news, errs[2] = apiClient.News(ctx, ticker)
		return nil
	})
	g.Go(func() error {
		financials, errs[3] = apiClient.Financials(ctx, ticker)
		return nil
	})
	_ = g.Wait()

	report := tickerReport{Ticker: ticker, errs: make(map[string]error)}
	record := func(section string, err error) bool {
		if err == nil {
			return true
		}
		report.errs[section] = err
		if report.Errors == nil {
			report.Errors = make(map[string]string)
		}
		report.Errors[section] = err.Error()
		return false
	}

	if record(sectionOverview, errs[0]) {
		report.Overview = overview
	}
	if record(sectionGrowth, errs[1]) {
		report.PriceHistory = &history
	}
	if record(sectionNews, errs[2]) {
		report.News = news
	}
	if record(sectionFinancials, errs[3]) {
		report.Financials = &financials
	}
	return report
}

func printReport(w io.Writer, report tickerReport, markdownStyle string) {
	width := outputWidth(w)

	printHeader(w, report.Ticker+" Details")

	fmt.Fprintln(w, "Overview")
	if report.errs[sectionOverview] != nil {
		fmt.Fprintln(w, "Error: Failed to fetch overview data.")
	} else {
		fmt.Fprintln(w, tui.RenderOverview(report.Overview))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Growth Metrics")
	if report.PriceHistory == nil {
		fmt.Fprintln(w, "Error: Failed to fetch price history.")
	} else {
		fmt.Fprintln(w, tui.RenderPriceHistory(report.Ticker, *report.PriceHistory, width))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "News")
	switch {
	case report.errs[sectionNews] != nil:
		fmt.Fprintln(w, "Error: Failed to fetch news data.")
	case len(report.News) == 0:
		fmt.Fprintln(w, "No news available.")
	default:
		fmt.Fprintln(w, renderMarkdown(tui.NewsMarkdown(report.News), markdownStyle, width))
	}

	fmt.Fprintln(w, "Financials")
	if report.Financials == nil {
		fmt.Fprintln(w, "Error: Failed to fetch financial metrics.")
	} else {
		fmt.Fprintln(w, tui.RenderFinancials(*report.Financials))
	}
}

// renderMarkdown renders md for the terminal, falling back to the raw text
func renderMarkdown(md, style string, width int) string {
	styleOpt := glamour.WithStandardStyle(style)
	if style == "" || style == "auto" {
		styleOpt = glamour.WithAutoStyle()
	}

	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
