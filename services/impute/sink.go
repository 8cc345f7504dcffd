package impute

import (
	"fmt"
	"log/slog"

	"marathondata/lib/records"
)

// Suffix names the output file for a pipeline stage: _ext.csv after the
// algebraic backfill alone, _knn_impute.csv or _iter_impute.csv after the
// statistical pass.
func Suffix(method Method) string {
	switch method {
	case MethodIterative:
		return "iter_impute"
	case MethodKNN:
		return "knn_impute"
	default:
		return "ext"
	}
}

type SinkConfig struct {
	DataDir   string `json:"data_dir"`
	Overwrite bool   `json:"overwrite"`
}

// WriteRows persists an imputed year under <Marathon><Year>_<suffix>.csv
// and returns the file path.
func (c SinkConfig) WriteRows(marathon, year, suffix string, rows []records.Row) (string, error) {
	name := fmt.Sprintf("%s%s_%s.csv", marathon, year, suffix)
	f, err := records.CreateOutput(c.DataDir, name, c.Overwrite)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := records.WriteRowsCSV(f, rows); err != nil {
		return "", fmt.Errorf("write %s: %w", f.Name(), err)
	}
	slog.Info("wrote imputed rows", "path", f.Name(), "rows", len(rows))
	return f.Name(), nil
}
