package cleaner

import (
	"errors"
	"fmt"

	"marathondata/lib/records"
)

// ErrValidation wraps every post-cleaning consistency failure so callers
// can tell data-quality errors apart from configuration mistakes.
var ErrValidation = errors.New("cleaned data validation failed")

// Validate checks the cleaner's output invariants: the mandatory columns
// are fully populated, age categories come from the canonical set, and
// race state agrees with the finish checkpoint. It reports instead of
// silently passing bad rows through.
func Validate(rows []records.Row) error {
	var issues []error
	for i, row := range rows {
		if row.AgeCat == "" {
			issues = append(issues, fmt.Errorf("row %d (idp %s): empty age_cat", i, row.Idp))
		} else if !records.IsCanonicalAgeCat(row.AgeCat) {
			issues = append(issues, fmt.Errorf("row %d (idp %s): age_cat %q not canonical", i, row.Idp, row.AgeCat))
		}
		if row.Gender == "" {
			issues = append(issues, fmt.Errorf("row %d (idp %s): empty gender", i, row.Idp))
		}
		if row.RaceState == "" {
			issues = append(issues, fmt.Errorf("row %d (idp %s): empty race_state", i, row.Idp))
		}
		if row.LastSplit == "" {
			issues = append(issues, fmt.Errorf("row %d (idp %s): empty last_split", i, row.Idp))
		}
		if !row.HasAnySplit() {
			issues = append(issues, fmt.Errorf("row %d (idp %s): no split data at all", i, row.Idp))
		}

		finishIdx := records.CheckpointIndex(records.KFinish)
		finished := row.RaceState == records.StateFinished
		hasFinish := row.HasTime(finishIdx)
		if finished != hasFinish {
			issues = append(issues, fmt.Errorf(
				"row %d (idp %s): race_state %q disagrees with finish time presence %v",
				i, row.Idp, row.RaceState, hasFinish))
		}
	}
	if len(issues) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrValidation, errors.Join(issues...))
}
