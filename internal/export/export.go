package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"hyperfolio/internal/portfolio"
	"hyperfolio/internal/tracker"
)

// Format represents the export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Options configures a snapshot export.
type Options struct {
	Format    Format
	OutputDir string
}

// SnapshotExporter writes loaded snapshots to disk for use outside the TUI.
type SnapshotExporter struct {
	logger *zap.Logger
}

// NewSnapshotExporter creates a snapshot exporter.
func NewSnapshotExporter(logger *zap.Logger) *SnapshotExporter {
	return &SnapshotExporter{logger: logger.Named("export")}
}

// Export writes the snapshot in the requested format and returns the paths
// written. CSV produces two files (daily breakdown and trade log); JSON
// produces a single document with metrics, daily rows, and the trade log.
func (e *SnapshotExporter) Export(snapshot *tracker.Snapshot, options Options) ([]string, error) {
	if snapshot == nil || len(snapshot.Fills) == 0 {
		return nil, fmt.Errorf("nothing to export")
	}

	if err := os.MkdirAll(options.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	stamp := snapshot.LoadedAt.Format("20060102_150405")
	short := snapshot.Address
	if len(short) > 10 {
		short = short[:10]
	}

	var paths []string
	var err error
	switch options.Format {
	case FormatCSV:
		dailyPath := filepath.Join(options.OutputDir, fmt.Sprintf("daily_%s_%s.csv", short, stamp))
		tradesPath := filepath.Join(options.OutputDir, fmt.Sprintf("trades_%s_%s.csv", short, stamp))
		if err = e.exportDailyCSV(snapshot.Daily, dailyPath); err == nil {
			err = e.exportTradesCSV(snapshot.Fills, tradesPath)
		}
		paths = []string{dailyPath, tradesPath}
	case FormatJSON:
		jsonPath := filepath.Join(options.OutputDir, fmt.Sprintf("snapshot_%s_%s.json", short, stamp))
		err = e.exportJSON(snapshot, jsonPath)
		paths = []string{jsonPath}
	default:
		return nil, fmt.Errorf("unsupported format: %s", options.Format)
	}

	if err != nil {
		return nil, err
	}

	e.logger.Info("Snapshot exported",
		zap.Strings("files", paths),
		zap.String("format", string(options.Format)),
		zap.Int("trades", len(snapshot.Fills)))

	return paths, nil
}

func (e *SnapshotExporter) exportDailyCSV(daily []portfolio.DailyAggregate, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"date", "closed_pnl", "fees", "funding", "daily_net", "cumulative_net"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, d := range daily {
		row := []string{
			d.Date.Format("2006-01-02"),
			d.ClosedPnLSum.String(),
			d.FeeSum.String(),
			d.FundingSum.String(),
			d.DailyNet.String(),
			d.CumulativeNet.String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write daily row: %w", err)
		}
	}

	return nil
}

func (e *SnapshotExporter) exportTradesCSV(fills []portfolio.Fill, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"time", "coin", "direction", "price", "size", "closed_pnl", "fee"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, f := range fills {
		row := []string{
			f.Time.UTC().Format(time.RFC3339),
			f.Coin,
			f.Direction,
			portfolio.ZeroIfNil(f.Price).String(),
			portfolio.ZeroIfNil(f.Size).String(),
			portfolio.ZeroIfNil(f.ClosedPnL).String(),
			portfolio.ZeroIfNil(f.Fee).String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write trade row: %w", err)
		}
	}

	return nil
}

func (e *SnapshotExporter) exportJSON(snapshot *tracker.Snapshot, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer file.Close()

	doc := struct {
		Address    string                       `json:"address"`
		ExportTime time.Time                    `json:"export_time"`
		LoadedAt   time.Time                    `json:"loaded_at"`
		Metrics    portfolio.Metrics            `json:"metrics"`
		Daily      []portfolio.DailyAggregate   `json:"daily"`
		Trades     []portfolio.Fill             `json:"trades"`
		Funding    []portfolio.FundingPayment   `json:"funding"`
	}{
		Address:    snapshot.Address,
		ExportTime: time.Now().UTC(),
		LoadedAt:   snapshot.LoadedAt,
		Metrics:    snapshot.Metrics,
		Daily:      snapshot.Daily,
		Trades:     snapshot.Fills,
		Funding:    snapshot.Funding,
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
