package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hyperfolio/internal/portfolio"
	"hyperfolio/internal/tracker"
)

func testSnapshot() *tracker.Snapshot {
	day1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	pnl := decimal.RequireFromString("100")
	fee := decimal.RequireFromString("1")

	fills := []portfolio.Fill{
		{Time: day1, Date: day1, Coin: "ETH", Direction: "Close Long", ClosedPnL: &pnl, Fee: &fee},
	}
	funding := []portfolio.FundingPayment{}

	return &tracker.Snapshot{
		Address:  "0x1234567890abcdef1234567890abcdef12345678",
		LoadID:   "test-load",
		LoadedAt: day2,
		Fills:    fills,
		Funding:  funding,
		Daily:    portfolio.Aggregate(fills, funding),
		Metrics:  portfolio.Summarize(fills, funding),
	}
}

func TestExportCSV(t *testing.T) {
	exporter := NewSnapshotExporter(zap.NewNop())
	outDir := t.TempDir()

	paths, err := exporter.Export(testSnapshot(), Options{Format: FormatCSV, OutputDir: outDir})
	require.NoError(t, err)
	require.Len(t, paths, 2)

	dailyFile, err := os.Open(paths[0])
	require.NoError(t, err)
	defer dailyFile.Close()

	rows, err := csv.NewReader(dailyFile).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "date", rows[0][0])
	assert.Equal(t, "2024-01-01", rows[1][0])
	assert.Equal(t, "99", rows[1][4]) // 100 - 1

	tradesFile, err := os.Open(paths[1])
	require.NoError(t, err)
	defer tradesFile.Close()

	tradeRows, err := csv.NewReader(tradesFile).ReadAll()
	require.NoError(t, err)
	require.Len(t, tradeRows, 2)
	assert.Equal(t, "ETH", tradeRows[1][1])
	assert.Equal(t, "Close Long", tradeRows[1][2])
}

func TestExportJSON(t *testing.T) {
	exporter := NewSnapshotExporter(zap.NewNop())
	outDir := t.TempDir()

	paths, err := exporter.Export(testSnapshot(), Options{Format: FormatJSON, OutputDir: outDir})
	require.NoError(t, err)
	require.Len(t, paths, 1)

	content, err := os.ReadFile(paths[0])
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &doc))
	assert.Equal(t, "0x1234567890abcdef1234567890abcdef12345678", doc["address"])
	assert.NotNil(t, doc["metrics"])
	assert.NotNil(t, doc["daily"])
}

func TestExportEmptySnapshot(t *testing.T) {
	exporter := NewSnapshotExporter(zap.NewNop())

	_, err := exporter.Export(&tracker.Snapshot{}, Options{Format: FormatCSV, OutputDir: t.TempDir()})
	require.Error(t, err)
}

func TestExportUnsupportedFormat(t *testing.T) {
	exporter := NewSnapshotExporter(zap.NewNop())

	_, err := exporter.Export(testSnapshot(), Options{Format: "xml", OutputDir: t.TempDir()})
	require.Error(t, err)
}
