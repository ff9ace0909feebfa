package tui

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/Anikeit18/Stock-Reseacher/client"
)

const chartHeight = 12

// RenderOverview lists every source's block. Each source is rendered on its
// own, so a failing provider never hides the others.
func RenderOverview(report client.SourceReport) string {
	if len(report) == 0 {
		return "No overview data available."
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render("Company Overview"))
	b.WriteString("\n")
	for _, src := range report {
		b.WriteString("\n")
		b.WriteString(renderOverviewSource(src))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderOverviewSource(src client.SourceResult) string {
	var b strings.Builder
	b.WriteString(sourceStyle.Render("Data from " + src.Name))
	b.WriteString("\n")

	switch src.Kind {
	case client.KindData:
		for _, f := range src.Fields {
			fmt.Fprintf(&b, "  %s %s\n", keyStyle.Render(f.Key+":"), f.Value)
		}
	case client.KindSeries:
		fmt.Fprintf(&b, "  %d records\n", src.Items)
	case client.KindScalar:
		fmt.Fprintf(&b, "  %s\n", src.Value)
	case client.KindError:
		b.WriteString("  " + errorStyle.Render(fmt.Sprintf("Error fetching data from %s: %s", src.Name, src.Error)) + "\n")
	case client.KindMessage:
		b.WriteString("  " + warnStyle.Render(fmt.Sprintf("%s: %s", src.Name, src.Message)) + "\n")
	default:
		fmt.Fprintf(&b, "  No data from %s.\n", src.Name)
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderSourceStatus summarizes what each price-history source returned
func RenderSourceStatus(report client.SourceReport) string {
	var b strings.Builder
	b.WriteString(sourceStyle.Render("Data Fetch Status by Source:"))
	for _, src := range report {
		b.WriteString("\n")
		b.WriteString(keyStyle.Render(src.Name + ":"))
		b.WriteString(" ")
		b.WriteString(sourceStatus(src))
	}
	return b.String()
}

func sourceStatus(src client.SourceResult) string {
	switch src.Kind {
	case client.KindSeries:
		return successStyle.Render(fmt.Sprintf("%d data points available.", src.Items))
	case client.KindData, client.KindScalar:
		return successStyle.Render("Data fetched.")
	case client.KindError:
		return errorStyle.Render("Error: " + src.Error)
	case client.KindMessage:
		return warnStyle.Render("Message: " + src.Message)
	default:
		return mutedStyle.Render("No data or status available.")
	}
}

type chartPoint struct {
	X string
	Y float64
}

// chartSeries maps the chart source's records to (Date, Close) pairs in the
// order received
func chartSeries(history client.PriceHistory) []chartPoint {
	if len(history.Series) == 0 {
		return nil
	}
	points := make([]chartPoint, len(history.Series))
	for i, p := range history.Series {
		points[i] = chartPoint{X: p.Date, Y: p.Close.InexactFloat64()}
	}
	return points
}

func renderChart(ticker string, points []chartPoint, width int) string {
	switch len(points) {
	case 0:
		return mutedStyle.Render("No chart data from " + client.ChartSource + ".")
	case 1:
		return fmt.Sprintf("%s closed at %g on %s (single data point).", ticker, points[0].Y, points[0].X)
	}

	ys := make([]float64, len(points))
	for i, p := range points {
		ys[i] = p.Y
	}

	// leave room for the y-axis labels
	plotWidth := width - 12
	if plotWidth < 10 {
		plotWidth = 10
	}

	graph := asciigraph.Plot(ys,
		asciigraph.Height(chartHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(fmt.Sprintf("%s Closing Price (%s)", ticker, client.ChartSource)),
	)
	span := fmt.Sprintf("%s → %s", points[0].X, points[len(points)-1].X)
	return graph + "\n" + mutedStyle.Render(span)
}

// RenderPriceHistory renders the chart followed by the per-source status
func RenderPriceHistory(ticker string, history client.PriceHistory, width int) string {
	if len(history.Sources) == 0 {
		return "No growth metrics data available."
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render("Growth Metrics (Historical Price Data)"))
	b.WriteString("\n\n")
	b.WriteString(renderChart(ticker, chartSeries(history), width))
	b.WriteString("\n\n")
	b.WriteString(RenderSourceStatus(history.Sources))
	return b.String()
}

// NewsMarkdown formats articles as a markdown document
func NewsMarkdown(articles []client.Article) string {
	if len(articles) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("## Recent News\n")
	for _, a := range articles {
		b.WriteString("\n")
		if a.URL != "" {
			fmt.Fprintf(&b, "### [%s](%s)\n\n", a.Headline, a.URL)
		} else {
			fmt.Fprintf(&b, "### %s\n\n", a.Headline)
		}
		fmt.Fprintf(&b, "**Source:** %s  \n", a.Source)
		fmt.Fprintf(&b, "**Date:** %s  \n", a.Datetime)
		if a.Summary != "" {
			fmt.Fprintf(&b, "**Summary:** %s  \n", a.Summary)
		}
		if a.Image != "" {
			fmt.Fprintf(&b, "**Image:** %s  \n", a.Image)
		}
		b.WriteString("\n---\n")
	}
	return b.String()
}

// RenderFinancials renders the financials payload
func RenderFinancials(fin client.Financials) string {
	if fin.Message == "" {
		return "No financial metrics data available."
	}
	return headingStyle.Render("Financial Metrics and Ratios") + "\n\n" + fin.Message
}
