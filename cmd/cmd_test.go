package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anikeit18/Stock-Reseacher/client"
)

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// stockBackend serves a complete fixture backend for ACME. Routes can be
// overridden by the caller.
func stockBackend(t *testing.T, override func(r chi.Router)) string {
	t.Helper()

	r := chi.NewRouter()
	r.Get("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"message":"Backend is running"}`)
	})
	r.Get("/api/search/{query}", func(w http.ResponseWriter, req *http.Request) {
		switch chi.URLParam(req, "query") {
		case "acme":
			writeJSON(w, http.StatusOK, `{"results":[{"symbol":"ACME","name":"Acme Corp"}]}`)
		case "a":
			writeJSON(w, http.StatusOK, `{"results":[{"symbol":"ACME","name":"Acme Corp"},{"symbol":"AAPL","name":"Apple Inc"}]}`)
		default:
			writeJSON(w, http.StatusOK, `{"results":[]}`)
		}
	})
	r.Get("/api/stock/{ticker}/overview", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"sourceA":{"name":"Acme Corp"},"sourceB":{"error":"rate limited"}}`)
	})
	r.Get("/api/stock/{ticker}/price-history", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"yfinance":[
			{"Date":"2024-01-02","Close":10.5},
			{"Date":"2024-01-03","Close":11},
			{"Date":"2024-01-04","Close":12.25}
		]}`)
	})
	r.Get("/api/stock/{ticker}/news", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `[{"headline":"Acme beats estimates","url":"https://news.test/1","source":"Wire","datetime":1700000000}]`)
	})
	if override != nil {
		override(r)
	}

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv.URL
}

// execute runs the root command with args in an isolated environment
func execute(t *testing.T, apiURL string, args ...string) (string, string, error) {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("STOCK_RESEARCHER_API_URL", apiURL)
	t.Setenv("STOCK_RESEARCHER_FINANCIALS_DELAY", "0s")
	t.Setenv("STOCK_RESEARCHER_MARKDOWN_STYLE", "notty")

	root := NewRootCmd("test")
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestHealthCmd(t *testing.T) {
	url := stockBackend(t, nil)

	out, _, err := execute(t, url, "health")
	require.NoError(t, err)
	assert.Equal(t, "Backend Status: Backend is running\n", out)
}

func TestHealthCmd_Unavailable(t *testing.T) {
	url := stockBackend(t, func(r chi.Router) {
		r.Get("/api/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusServiceUnavailable, `{}`)
		})
	})

	_, stderr, err := execute(t, url, "health")
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "backend unavailable")
	assert.Contains(t, stderr, "Health check failed")
}

func TestAPIURLFlagOverridesEnv(t *testing.T) {
	url := stockBackend(t, nil)

	out, _, err := execute(t, "http://127.0.0.1:1", "health", "--api-url", url)
	require.NoError(t, err)
	assert.Contains(t, out, "Backend is running")
}

func TestSearchCmd(t *testing.T) {
	url := stockBackend(t, nil)

	out, _, err := execute(t, url, "search", "a")
	require.NoError(t, err)
	assert.Contains(t, out, "Search Results for 'a'")
	assert.Contains(t, out, "ACME: Acme Corp\nAAPL: Apple Inc\n")
}

func TestSearchCmd_JSON(t *testing.T) {
	url := stockBackend(t, nil)

	out, _, err := execute(t, url, "search", "--json", "a")
	require.NoError(t, err)

	var stocks []client.Stock
	require.NoError(t, json.Unmarshal([]byte(out), &stocks))
	assert.Equal(t, []client.Stock{
		{Symbol: "ACME", Name: "Acme Corp"},
		{Symbol: "AAPL", Name: "Apple Inc"},
	}, stocks)
}

func TestSearchCmd_NoResults(t *testing.T) {
	url := stockBackend(t, nil)

	_, stderr, err := execute(t, url, "search", "zzz")
	assert.ErrorIs(t, err, errNoStocks)
	assert.Contains(t, stderr, "No stocks found")
}

func TestSearchCmd_InteractiveSingleMatchShowsDetails(t *testing.T) {
	url := stockBackend(t, nil)

	out, _, err := execute(t, url, "search", "-i", "acme")
	require.NoError(t, err)
	assert.Contains(t, out, "ACME Details")
	assert.Contains(t, out, "Data from sourceA")
}

func TestShowCmd(t *testing.T) {
	url := stockBackend(t, nil)

	out, _, err := execute(t, url, "show", "ACME")
	require.NoError(t, err)

	assert.Contains(t, out, "ACME Details")
	assert.Contains(t, out, "Data from sourceA")
	assert.Contains(t, out, "name: Acme Corp")
	assert.Contains(t, out, "Error fetching data from sourceB: rate limited")
	assert.Contains(t, out, "ACME Closing Price (yfinance)")
	assert.Contains(t, out, "3 data points available.")
	assert.Contains(t, out, "Acme beats estimates")
	assert.Contains(t, out, "Financial data fetching is not yet implemented.")
}

func TestShowCmd_SectionFailureDoesNotHideOthers(t *testing.T) {
	url := stockBackend(t, func(r chi.Router) {
		r.Get("/api/stock/{ticker}/overview", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusInternalServerError, `{"error":"boom"}`)
		})
	})

	out, stderr, err := execute(t, url, "show", "ACME")
	require.NoError(t, err)
	assert.Contains(t, out, "Error: Failed to fetch overview data.")
	assert.Contains(t, out, "Acme beats estimates")
	assert.Contains(t, out, "3 data points available.")
	assert.Contains(t, stderr, "Fetch failed")
}

func TestShowCmd_JSON(t *testing.T) {
	url := stockBackend(t, func(r chi.Router) {
		r.Get("/api/stock/{ticker}/news", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusBadGateway, `{}`)
		})
	})

	out, _, err := execute(t, url, "show", "--json", "ACME")
	require.NoError(t, err)

	var report struct {
		Ticker       string                     `json:"ticker"`
		Overview     map[string]json.RawMessage `json:"overview"`
		PriceHistory map[string]json.RawMessage `json:"price_history"`
		News         []client.Article           `json:"news"`
		Financials   client.Financials          `json:"financials"`
		Errors       map[string]string          `json:"errors"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	assert.Equal(t, "ACME", report.Ticker)
	assert.Contains(t, report.Overview, "sourceA")
	assert.Contains(t, report.PriceHistory, "yfinance")
	assert.Empty(t, report.News)
	assert.Equal(t, client.FinancialsNotImplemented, report.Financials.Message)
	require.Contains(t, report.Errors, "news")
	assert.Contains(t, report.Errors["news"], "502")
}

func TestShowCmd_AllSectionsFail(t *testing.T) {
	url := stockBackend(t, func(r chi.Router) {
		fail := func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusInternalServerError, `{}`)
		}
		r.Get("/api/stock/{ticker}/overview", fail)
		r.Get("/api/stock/{ticker}/price-history", fail)
		r.Get("/api/stock/{ticker}/news", fail)
	})

	// financials never fails, so the command still succeeds
	_, _, err := execute(t, url, "show", "ACME")
	assert.NoError(t, err)
}

func TestInvalidConfigFlag(t *testing.T) {
	url := stockBackend(t, nil)

	_, _, err := execute(t, url, "health", "--growth-refetch", "sometimes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "growth_refetch")
}

func TestRootCmd_RequiresTerminal(t *testing.T) {
	if isTerminal(os.Stdin) && isTerminal(os.Stdout) {
		t.Skip("test process is attached to a terminal")
	}
	url := stockBackend(t, nil)

	_, _, err := execute(t, url)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs a terminal")
}
