package commands

import (
	"fmt"

	"marathondata/lib/configutil"
	"marathondata/services/dataset"
	"marathondata/services/impute"
)

// RaceConfig describes one marathon-year: which era profile parses it,
// the listing and split URL templates, and the page counts per gender
// (men first, then women).
type RaceConfig struct {
	Marathon        string `json:"marathon"`
	Year            string `json:"year"`
	Profile         string `json:"profile"`
	ResultsTemplate string `json:"resultsTemplate"`
	SplitsTemplate  string `json:"splitsTemplate"`
	Pages           []int  `json:"pages"`
	NumResults      int    `json:"numResults"`
}

type StoreConfig struct {
	// Driver is "sqlite" for local files or "libsql" for remote turso
	// databases.
	Driver string `json:"driver"`
	Url    string `json:"url"`
}

type DatasetConfig struct {
	dataset.Options
	Sources []dataset.Source `json:"sources"`
}

type Config struct {
	Races       []RaceConfig   `json:"races"`
	DataDir     string         `json:"dataDir"`
	Overwrite   bool           `json:"overwrite"`
	Concurrency int            `json:"concurrency"`
	Store       StoreConfig    `json:"store"`
	Impute      impute.Options `json:"impute"`
	Dataset     DatasetConfig  `json:"dataset"`
}

var configPath *string

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "config.json5", "Path to the pipeline config file.")
}

func readConfig() (Config, error) {
	cfg, err := configutil.ReadConfig[Config](*configPath)
	if err != nil {
		return Config{}, err
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	return cfg, nil
}

// race resolves a marathon-year pair against the config.
func (c Config) race(marathon, year string) (RaceConfig, error) {
	for _, r := range c.Races {
		if r.Marathon == marathon && r.Year == year {
			return r, nil
		}
	}
	return RaceConfig{}, fmt.Errorf("no race configured for %s %s", marathon, year)
}
