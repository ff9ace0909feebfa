package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// FinancialsNotImplemented is the notice shown until the backend serves financials
const FinancialsNotImplemented = "Financial data fetching is not yet implemented."

// HealthResponse represents the body of /api/health
type HealthResponse struct {
	Message string `json:"message"`
}

// Stock is a single search hit
type Stock struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// SearchResponse represents the body of /api/search/{query}
type SearchResponse struct {
	Results []Stock `json:"results"`
}

// PricePoint is one closing price record
type PricePoint struct {
	Date  string          `json:"Date"`
	Close decimal.Decimal `json:"Close"`
}

// Article is a single news item
type Article struct {
	Headline string   `json:"headline"`
	URL      string   `json:"url"`
	Source   string   `json:"source"`
	Datetime NewsTime `json:"datetime"`
	Summary  string   `json:"summary,omitempty"`
	Image    string   `json:"image,omitempty"`
}

// NewsTime accepts either unix seconds or a preformatted string
type NewsTime struct {
	Unix int64
	Raw  string
}

// UnmarshalJSON implements json.Unmarshaler
func (t *NewsTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = NewsTime{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid datetime: %w", err)
		}
		*t = NewsTime{Raw: s}
		return nil
	}

	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid datetime %s: %w", data, err)
	}
	*t = NewsTime{Unix: int64(f), Raw: string(data)}
	return nil
}

// MarshalJSON implements json.Marshaler
func (t NewsTime) MarshalJSON() ([]byte, error) {
	if t.Unix != 0 {
		return []byte(strconv.FormatInt(t.Unix, 10)), nil
	}
	return json.Marshal(t.Raw)
}

// String renders unix timestamps in UTC and passes strings through
func (t NewsTime) String() string {
	if t.Unix != 0 {
		return time.Unix(t.Unix, 0).UTC().Format("2006-01-02 15:04 MST")
	}
	return t.Raw
}

// Financials is the financial metrics payload for a ticker
type Financials struct {
	Ticker  string `json:"ticker"`
	Message string `json:"message"`
}
