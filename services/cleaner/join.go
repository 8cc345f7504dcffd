// Package cleaner turns raw scraped tables into the canonical per-runner
// schema. Every marathon runs the same ordered step list; the differences
// between sources live in a small declarative Config, not in per-marathon
// code.
package cleaner

import (
	"marathondata/lib/records"
)

// Raw is one runner's joined scrape output: the results-listing row plus
// the split page, still as site-rendered strings.
type Raw struct {
	Idp       string
	RunNo     string
	AgeCat    string
	Gender    string
	RaceState string
	LastSplit string
	Splits    [records.NumCheckpoints]records.SplitCell
}

// Join matches results rows to split records by runner id. Runners without
// a split record keep empty split cells; the listing's own half and finish
// times backfill those two checkpoints when the split page lacks them.
// Split-only fields (race state, age category on some sites) ride along.
func Join(results []records.RunnerRecord, splits []records.SplitRecord) []Raw {
	byIdp := make(map[string]records.SplitRecord, len(splits))
	for _, s := range splits {
		byIdp[s.Idp] = s
	}

	out := make([]Raw, 0, len(results))
	for _, res := range results {
		raw := Raw{
			Idp:    res.Idp,
			RunNo:  res.RunNo,
			AgeCat: res.AgeCat,
			Gender: res.Gender,
		}

		if split, ok := byIdp[res.Idp]; ok {
			raw.Splits = split.Splits
			raw.RaceState = split.RaceState
			raw.LastSplit = split.LastSplit
			if raw.AgeCat == "" {
				raw.AgeCat = split.AgeCat
			}
		}

		halfIdx := records.CheckpointIndex(records.KHalf)
		finishIdx := records.CheckpointIndex(records.KFinish)
		if raw.Splits[halfIdx].Time == "" && res.Half != "" {
			raw.Splits[halfIdx].Time = res.Half
		}
		if raw.Splits[finishIdx].Time == "" && res.Finish != "" {
			raw.Splits[finishIdx].Time = res.Finish
		}

		out = append(out, raw)
	}
	return out
}
