package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"marathondata/lib/records"
	"marathondata/lib/util/serviceutil"
	"marathondata/services/impute"
)

var imputeMethod *string

func init() {
	imputeMethod = imputeCmd.Flags().String("method", "", "Imputation method, knn or iter. Overrides the config.")
	rootCmd.AddCommand(imputeCmd)
}

var imputeCmd = &cobra.Command{
	Use:   "impute <marathon> <year> [--method knn|iter]",
	Short: "Backfills and imputes missing splits in a cleaned marathon-year.",
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

		opts := cfg.Impute
		if *imputeMethod != "" {
			opts.Method = impute.Method(*imputeMethod)
		}

		path := filepath.Join(cfg.DataDir, fmt.Sprintf("%s%s_clean.csv", race.Marathon, race.Year))
		f, err := os.Open(path)
		if err != nil {
			serviceutil.Fatal("failed to open cleaned rows", err)
		}
		rows, err := records.ReadRowsCSV(f)
		f.Close()
		if err != nil {
			serviceutil.Fatal("failed to read cleaned rows", err)
		}

		kept, stats, err := impute.Run(cmd.Context(), rows, opts)
		if err != nil {
			serviceutil.Fatal("imputation failed", err)
		}
		slog.Info("imputation stats",
			"backfilled", stats.Backfilled,
			"imputed", stats.Imputed,
			"dropped", stats.Dropped)

		sink := impute.SinkConfig{DataDir: cfg.DataDir, Overwrite: cfg.Overwrite}
		if _, err := sink.WriteRows(race.Marathon, race.Year, impute.Suffix(opts.Method), kept); err != nil {
			serviceutil.Fatal("failed to write imputed rows", err)
		}
	},
}
