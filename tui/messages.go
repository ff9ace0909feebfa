package tui

// Message types for Bubble Tea state transitions

type healthCompleteMsg struct {
	message string
	err     error
}

// searchSubmittedMsg is emitted by the search form for a non-empty query
type searchSubmittedMsg struct {
	query string
}

// tickerSelectedMsg is emitted by the results list when a row is chosen
type tickerSelectedMsg struct {
	symbol string
}
