package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"marathondata/lib/util/serviceutil"
	"marathondata/services/dataset"
)

func init() {
	rootCmd.AddCommand(datasetCmd)
}

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Assembles the configured marathon-years into a model-ready dataset.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := readConfig()
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}

		df, err := dataset.Load(cfg.DataDir, cfg.Dataset.Sources)
		if err != nil {
			serviceutil.Fatal("failed to load dataset sources", err)
		}

		m, err := dataset.BuildMatrix(df, cfg.Dataset.Options)
		if err != nil {
			serviceutil.Fatal("failed to build feature matrix", err)
		}

		trainFrac := cfg.Dataset.TrainFrac
		if trainFrac == 0 {
			trainFrac = 0.7
		}
		testFrac := cfg.Dataset.TestFrac
		if testFrac == 0 {
			testFrac = 0.15
		}
		split, err := dataset.SplitFor(cfg.Dataset.Task, m.Y, trainFrac, testFrac, cfg.Dataset.Seed)
		if err != nil {
			serviceutil.Fatal("failed to split dataset", err)
		}

		out := filepath.Join(cfg.DataDir, "dataset.csv")
		f, err := os.Create(out)
		if err != nil {
			serviceutil.Fatal("failed to create dataset output", err)
		}
		defer f.Close()
		if err := df.WriteCSV(f); err != nil {
			serviceutil.Fatal("failed to write dataset", err)
		}

		fmt.Printf("dataset: %d rows, %d features\n", len(m.X), len(m.Features))
		fmt.Printf("train=%d test=%d val=%d\n", len(split.Train), len(split.Test), len(split.Val))
	},
}
