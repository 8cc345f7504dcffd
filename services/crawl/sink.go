package crawl

import (
	"fmt"
	"log/slog"

	"marathondata/lib/records"
)

// SinkConfig names the crawl output files the way the downstream cleaners
// expect them: <Marathon><Year>_res.csv and <Marathon><Year>_splits.csv
// under DataDir.
type SinkConfig struct {
	DataDir   string `json:"data_dir"`
	Overwrite bool   `json:"overwrite"`
}

func (c SinkConfig) resultsName(marathon, year string) string {
	return fmt.Sprintf("%s%s_res.csv", marathon, year)
}

func (c SinkConfig) splitsName(marathon, year string) string {
	return fmt.Sprintf("%s%s_splits.csv", marathon, year)
}

// WriteResults persists a results crawl and returns the file path.
func (c SinkConfig) WriteResults(marathon, year string, recs []records.RunnerRecord) (string, error) {
	name := c.resultsName(marathon, year)
	f, err := records.CreateOutput(c.DataDir, name, c.Overwrite)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := records.WriteResultsCSV(f, recs); err != nil {
		return "", fmt.Errorf("write %s: %w", f.Name(), err)
	}
	slog.Info("wrote results", "path", f.Name(), "rows", len(recs))
	return f.Name(), nil
}

// WriteSplits persists a splits crawl and returns the file path.
func (c SinkConfig) WriteSplits(marathon, year string, recs []records.SplitRecord) (string, error) {
	name := c.splitsName(marathon, year)
	f, err := records.CreateOutput(c.DataDir, name, c.Overwrite)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := records.WriteSplitsCSV(f, recs); err != nil {
		return "", fmt.Errorf("write %s: %w", f.Name(), err)
	}
	slog.Info("wrote splits", "path", f.Name(), "rows", len(recs))
	return f.Name(), nil
}
