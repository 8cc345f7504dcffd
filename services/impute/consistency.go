package impute

import (
	"errors"
	"fmt"
	"math"

	"marathondata/lib/records"
)

// ToleranceSec is the slack allowed between a leg's recorded pace and the
// pace implied by the checkpoint time delta. Rounding during scraping and
// unit conversion accounts for a few seconds per leg.
const ToleranceSec = 5

// ErrInconsistentSplits reports rows whose legs disagree beyond ToleranceSec,
// or that still carry nulls after imputation.
var ErrInconsistentSplits = errors.New("inconsistent splits")

// checkRow verifies every leg where both endpoints and the pace are known:
// pace times the leg distance must match the time delta within tolerance.
func checkRow(row records.Row) error {
	for i := 0; i < records.NumCheckpoints; i++ {
		if !row.HasTime(i) || !row.HasPace(i) {
			continue
		}
		base, ok := prevTime(row, i)
		if !ok {
			continue
		}
		expected := float64(row.Pace[i]) * records.SegmentKm[i]
		delta := float64(row.Time[i] - base)
		if math.Abs(expected-delta) > ToleranceSec {
			return fmt.Errorf("idp %s: %s pace %ds implies leg of %.0fs, checkpoint delta is %.0fs",
				row.Idp, records.Checkpoints[i], row.Pace[i], expected, delta)
		}
	}
	return nil
}

func complete(row records.Row) bool {
	for i := 0; i < records.NumCheckpoints; i++ {
		if !row.HasTime(i) || !row.HasPace(i) || !row.HasSpeed(i) {
			return false
		}
	}
	return true
}

// Enforce removes rows that are still incomplete or internally inconsistent.
// With strict set it fails on the first offender instead of dropping.
func Enforce(rows []records.Row, strict bool) (kept []records.Row, dropped int, err error) {
	kept = rows[:0]
	for _, row := range rows {
		var issue error
		if !complete(row) {
			issue = fmt.Errorf("idp %s: splits still missing after imputation", row.Idp)
		} else {
			issue = checkRow(row)
		}
		if issue != nil {
			if strict {
				return nil, 0, fmt.Errorf("%w: %v", ErrInconsistentSplits, issue)
			}
			dropped++
			continue
		}
		kept = append(kept, row)
	}
	return kept, dropped, nil
}
