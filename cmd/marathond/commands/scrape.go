package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"marathondata/lib/records"
	"marathondata/lib/scrapers/mika"
	"marathondata/lib/urlgen"
	"marathondata/lib/util/serviceutil"
	"marathondata/services/crawl"
)

var (
	scrapeSplits  *bool
	scrapeDumpDir *string
)

func init() {
	scrapeSplits = scrapeCmd.Flags().Bool("splits", false, "Scrape per-runner split pages instead of the results listing. Requires a prior results scrape.")
	scrapeDumpDir = scrapeCmd.Flags().String("dump", "", "Directory to dump fetched page bodies into, for debugging era profiles.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape <marathon> <year> [--splits]",
	Short: "Scrapes a marathon-year's results listing, or its split pages with --splits.",
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
		profile, err := mika.Profile(race.Profile)
		if err != nil {
			serviceutil.Fatal("unknown era profile", err)
		}

		client, err := mika.NewClient(mika.ClientOptions{DumpDir: *scrapeDumpDir})
		if err != nil {
			serviceutil.Fatal("failed to initialize client", err)
		}

		ctx := cmd.Context()
		opts := crawl.Options{Concurrency: cfg.Concurrency}
		sink := crawl.SinkConfig{DataDir: cfg.DataDir, Overwrite: cfg.Overwrite}

		t1 := time.Now()
		if *scrapeSplits {
			idps, err := idpsFromResults(cfg.DataDir, race)
			if err != nil {
				serviceutil.Fatal("failed to load scraped results", err)
			}
			urls := urlgen.PrepareSplitURLs(race.SplitsTemplate, race.Year, idps)
			recs := crawl.Splits(ctx, client, profile, urls, opts)
			if _, err := sink.WriteSplits(race.Marathon, race.Year, recs); err != nil {
				serviceutil.Fatal("failed to write splits", err)
			}
		} else {
			urls, err := urlgen.PrepareResultURLs(race.ResultsTemplate, race.Year, race.Pages, race.NumResults)
			if err != nil {
				serviceutil.Fatal("failed to prepare result urls", err)
			}
			recs := crawl.Results(ctx, client, profile, urls.Flat(), opts)
			if _, err := sink.WriteResults(race.Marathon, race.Year, recs); err != nil {
				serviceutil.Fatal("failed to write results", err)
			}
		}
		slog.Info("scraping time", "seconds", time.Since(t1).Seconds())
	},
}

// idpsFromResults pulls the runner ids out of an earlier results scrape so
// the split crawl knows which pages exist.
func idpsFromResults(dataDir string, race RaceConfig) ([]string, error) {
	path := filepath.Join(dataDir, fmt.Sprintf("%s%s_res.csv", race.Marathon, race.Year))
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	recs, err := records.ReadResultsCSV(f)
	if err != nil {
		return nil, err
	}
	idps := make([]string, 0, len(recs))
	for _, r := range recs {
		if r.Idp != "" {
			idps = append(idps, r.Idp)
		}
	}
	return idps, nil
}
