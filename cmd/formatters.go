package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const defaultOutputWidth = 80

// printHeader prints a styled header
func printHeader(w io.Writer, title string) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("━", lipgloss.Width(title)))
	fmt.Fprintln(w)
}

// printJSON marshals data to JSON and prints it
func printJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// outputWidth is the terminal width when w is a terminal, otherwise a fixed
// width suitable for pipes and tests
func outputWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !isTerminal(f) {
		return defaultOutputWidth
	}
	width, _, err := termSize(f)
	if err != nil || width <= 0 {
		return defaultOutputWidth
	}
	return width
}
