// Package impute reconstructs missing split checkpoints. Algebra goes
// first: a known pace pins down the checkpoint time and speed exactly.
// Only rows still missing paces afterwards go through statistical
// imputation, and everything is re-derived and consistency-checked at the
// end.
package impute

import (
	"math"

	"marathondata/lib/records"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// prevTime returns the cumulative time at the checkpoint before i, zero at
// the gun. ok is false when that time is unknown.
func prevTime(row records.Row, i int) (int32, bool) {
	if i == 0 {
		return 0, true
	}
	if row.HasTime(i - 1) {
		return row.Time[i-1], true
	}
	return 0, false
}

// backfillRow derives as many missing values as the recorded ones pin
// down: time from pace and the previous checkpoint, pace from the time
// delta, speed from pace. Runs to a fixpoint because one derived time can
// unlock the next leg.
func backfillRow(row *records.Row) int {
	filled := 0
	for pass := 0; pass < records.NumCheckpoints; pass++ {
		changed := false
		for i := 0; i < records.NumCheckpoints; i++ {
			seg := records.SegmentKm[i]

			if !row.HasTime(i) && row.HasPace(i) {
				if base, ok := prevTime(*row, i); ok {
					row.Time[i] = base + int32(math.Round(float64(row.Pace[i])*seg))
					filled++
					changed = true
				}
			}
			if !row.HasPace(i) && row.HasTime(i) {
				if base, ok := prevTime(*row, i); ok && row.Time[i] > base {
					row.Pace[i] = int32(math.Round(float64(row.Time[i]-base) / seg))
					filled++
					changed = true
				}
			}
			if !row.HasSpeed(i) && row.HasPace(i) && row.Pace[i] > 0 {
				row.Speed[i] = float32(round2(3600 / float64(row.Pace[i])))
				filled++
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return filled
}

// Backfill applies the split algebra to every row and reports how many
// values it derived.
func Backfill(rows []records.Row) int {
	filled := 0
	for i := range rows {
		filled += backfillRow(&rows[i])
	}
	return filled
}
