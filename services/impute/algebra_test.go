package impute

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"marathondata/lib/records"
)

// evenRow has a flat 300 s/km pace over the whole course.
func evenRow() records.Row {
	row := records.NewRow()
	row.Idp = "EVEN"
	row.Gender = "M"
	row.AgeCat = "18-39"
	var cum float64
	for i := 0; i < records.NumCheckpoints; i++ {
		cum += 300 * records.SegmentKm[i]
		row.Time[i] = int32(math.Round(cum))
		row.Pace[i] = 300
		row.Speed[i] = 12
	}
	return row
}

func TestBackfillTimeFromPace(t *testing.T) {
	row := evenRow()
	want := row.Time

	// Knock out a time in the middle; pace and the previous checkpoint
	// pin it back down exactly.
	k25 := records.CheckpointIndex(records.K25)
	row.Time[k25] = records.NullTime

	rows := []records.Row{row}
	filled := Backfill(rows)
	require.Equal(t, 1, filled)
	require.Equal(t, want[k25], rows[0].Time[k25])
}

func TestBackfillPaceFromDelta(t *testing.T) {
	rows := []records.Row{evenRow()}
	k10 := records.CheckpointIndex(records.K10)
	rows[0].Pace[k10] = records.NullTime
	rows[0].Speed[k10] = float32(math.NaN())

	filled := Backfill(rows)
	require.Equal(t, 2, filled) // pace, then speed from pace
	require.Equal(t, int32(300), rows[0].Pace[k10])
	require.InDelta(t, 12, float64(rows[0].Speed[k10]), 0.01)
}

func TestBackfillChainsForward(t *testing.T) {
	// Two consecutive missing times: the first derived time unlocks the
	// second within the same fixpoint loop.
	rows := []records.Row{evenRow()}
	k15 := records.CheckpointIndex(records.K15)
	k20 := records.CheckpointIndex(records.K20)
	want := rows[0].Time
	rows[0].Time[k15] = records.NullTime
	rows[0].Time[k20] = records.NullTime

	Backfill(rows)
	require.Equal(t, want[k15], rows[0].Time[k15])
	require.Equal(t, want[k20], rows[0].Time[k20])
}

func TestBackfillLeavesUnderdetermined(t *testing.T) {
	// No pace and no neighbor times: nothing to derive from.
	row := records.NewRow()
	row.Time[5] = 7500
	rows := []records.Row{row}

	Backfill(rows)
	require.False(t, rows[0].HasTime(0))
	require.False(t, rows[0].HasPace(0))
	require.False(t, rows[0].HasPace(5))
}
