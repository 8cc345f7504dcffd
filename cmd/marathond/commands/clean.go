package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"marathondata/lib/records"
	"marathondata/lib/util/serviceutil"
	"marathondata/services/cleaner"
	"marathondata/services/resultstore"
)

var cleanPush *bool

func init() {
	cleanPush = cleanCmd.Flags().Bool("push", false, "Also push the cleaned rows to the configured result store.")
	rootCmd.AddCommand(cleanCmd)
}

var cleanCmd = &cobra.Command{
	Use:   "clean <marathon> <year> [--push]",
	Short: "Joins and cleans a marathon-year's scraped results and splits.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := readConfig()
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		race, err := cfg.race(args[0], args[1])
		if err != nil {
			serviceutil.Fatal("unknown race", err)
		}
		raceYear, err := strconv.Atoi(race.Year)
		if err != nil {
			serviceutil.Fatal("race year is not a number", err)
		}
		cleanCfg, err := cleaner.ConfigFor(race.Marathon)
		if err != nil {
			serviceutil.Fatal("no cleaner config for marathon", err)
		}

		results, splits, err := readScraped(cfg.DataDir, race)
		if err != nil {
			serviceutil.Fatal("failed to read scraped data", err)
		}

		ctx := cmd.Context()
		raws := cleaner.Join(results, splits)
		rows, report := cleaner.Clean(ctx, raws, cleanCfg, raceYear)
		report.Render(os.Stdout)

		if err := cleaner.Validate(rows); err != nil {
			serviceutil.Fatal("cleaned rows failed validation", err)
		}

		name := fmt.Sprintf("%s%s_clean.csv", race.Marathon, race.Year)
		f, err := records.CreateOutput(cfg.DataDir, name, cfg.Overwrite)
		if err != nil {
			serviceutil.Fatal("failed to create output", err)
		}
		defer f.Close()
		if err := records.WriteRowsCSV(f, rows); err != nil {
			serviceutil.Fatal("failed to write cleaned rows", err)
		}

		if *cleanPush {
			store, err := resultstore.Open(cfg.Store.Driver, cfg.Store.Url)
			if err != nil {
				serviceutil.Fatal("failed to open result store", err)
			}
			if err := store.Push(ctx, race.Marathon, race.Year, rows); err != nil {
				serviceutil.Fatal("failed to push cleaned rows", err)
			}
		}
	},
}

func readScraped(dataDir string, race RaceConfig) ([]records.RunnerRecord, []records.SplitRecord, error) {
	resPath := filepath.Join(dataDir, fmt.Sprintf("%s%s_res.csv", race.Marathon, race.Year))
	rf, err := os.Open(resPath)
	if err != nil {
		return nil, nil, err
	}
	defer rf.Close()
	results, err := records.ReadResultsCSV(rf)
	if err != nil {
		return nil, nil, err
	}

	// A splits file is optional; listing-only marathons clean fine
	// without one.
	splitsPath := filepath.Join(dataDir, fmt.Sprintf("%s%s_splits.csv", race.Marathon, race.Year))
	sf, err := os.Open(splitsPath)
	if os.IsNotExist(err) {
		return results, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	defer sf.Close()
	splits, err := records.ReadSplitsCSV(sf)
	if err != nil {
		return nil, nil, err
	}
	return results, splits, nil
}
