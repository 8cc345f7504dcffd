// Package dataset assembles model-ready matrices from the per-year
// cleaned CSVs. Frames are concatenated across marathons and years,
// scaled, encoded, and split deterministically.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
)

// Source names one input frame on disk.
type Source struct {
	Marathon string `json:"marathon"`
	Year     string `json:"year"`
	// Suffix picks the pipeline stage, e.g. "knn_impute", "iter_impute"
	// or "ext".
	Suffix string `json:"suffix"`
}

func (s Source) fileName() string {
	return fmt.Sprintf("%s%s_%s.csv", s.Marathon, s.Year, s.Suffix)
}

func loadFrame(dir string, src Source) (dataframe.DataFrame, error) {
	path := filepath.Join(dir, src.fileName())
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f, dataframe.HasHeader(true))
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("read %s: %w", path, df.Err)
	}
	return df, nil
}

// Load reads every source frame from dir and concatenates them row-wise.
// All sources must share the cleaned-row schema.
func Load(dir string, sources []Source) (dataframe.DataFrame, error) {
	if len(sources) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("no dataset sources configured")
	}
	out, err := loadFrame(dir, sources[0])
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	for _, src := range sources[1:] {
		df, err := loadFrame(dir, src)
		if err != nil {
			return dataframe.DataFrame{}, err
		}
		out = out.RBind(df)
		if out.Err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("concat %s: %w", src.fileName(), out.Err)
		}
	}
	return out, nil
}
