package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anikeit18/Stock-Reseacher/client"
)

func TestInitLogger_Levels(t *testing.T) {
	var buf bytes.Buffer

	logger := InitLogger(true, "error", &buf)
	assert.Equal(t, log.DebugLevel, logger.GetLevel())

	logger = InitLogger(false, "warn", &buf)
	assert.Equal(t, log.WarnLevel, logger.GetLevel())

	logger.Info("hidden")
	logger.Warn("shown", "ticker", "ACME")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "ticker=ACME")
}

func TestInitLogger_BadLevelFallsBackToInfo(t *testing.T) {
	logger := InitLogger(false, "chatty", &bytes.Buffer{})
	assert.Equal(t, log.InfoLevel, logger.GetLevel())
}

func TestRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")

	w, err := RotatingFile(path)
	require.NoError(t, err)

	logger := InitLogger(false, "info", w)
	logger.Info("search completed", "results", 2)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "search completed")
}

func TestStockOptions(t *testing.T) {
	opts := StockOptions([]client.Stock{
		{Symbol: "ACME", Name: "Acme Corp"},
		{Symbol: "BARE"},
	})

	require.Len(t, opts, 2)
	assert.Equal(t, "ACME: Acme Corp", opts[0].Key)
	assert.Equal(t, "ACME", opts[0].Value)
	assert.Equal(t, "BARE", opts[1].Key)
}

func TestSelectStock_Empty(t *testing.T) {
	_, err := SelectStock(nil)
	assert.Error(t, err)
}
