package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"marathondata/lib/scrapers/mika"
	"marathondata/lib/urlgen"
	"marathondata/lib/util/serviceutil"
)

func init() {
	rootCmd.AddCommand(pagesCmd)
}

var pagesCmd = &cobra.Command{
	Use:   "pages <marathon> <year>",
	Short: "Discovers the page counts of a marathon-year's results listing, per gender.",
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

		client, err := mika.NewClient(mika.ClientOptions{})
		if err != nil {
			serviceutil.Fatal("failed to initialize client", err)
		}

		firstPages, err := urlgen.PrepareResultURLs(race.ResultsTemplate, race.Year, []int{1, 1}, race.NumResults)
		if err != nil {
			serviceutil.Fatal("failed to prepare first page urls", err)
		}
		men, women, err := client.MaxPages(cmd.Context(), firstPages.Men[0], firstPages.Women[0], profile)
		if err != nil {
			serviceutil.Fatal("failed to discover page counts", err)
		}

		fmt.Printf("%s %s: men=%d women=%d\n", race.Marathon, race.Year, men, women)
		fmt.Printf("config pages value: [%d, %d]\n", men, women)
	},
}
