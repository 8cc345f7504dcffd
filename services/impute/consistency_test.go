package impute

import (
	"testing"

	"github.com/stretchr/testify/require"

	"marathondata/lib/records"
)

func TestCheckRowTolerance(t *testing.T) {
	row := evenRow()
	require.NoError(t, checkRow(row))

	// 5 km at 300 s/km is 1500 s; a checkpoint delta drifting by 5 s is
	// still within tolerance.
	k10 := records.CheckpointIndex(records.K10)
	row.Time[k10] += 5
	require.NoError(t, checkRow(row))

	// 6 s off is not.
	row.Time[k10] += 1
	require.Error(t, checkRow(row))
}

func TestCheckRowSkipsUnknownLegs(t *testing.T) {
	row := evenRow()
	k10 := records.CheckpointIndex(records.K10)
	k15 := records.CheckpointIndex(records.K15)

	// With 10k unknown, both legs around it lack an endpoint and neither
	// is checkable, even with a wildly wrong 15k pace.
	row.Time[k10] = records.NullTime
	row.Pace[k15] = 9999
	require.NoError(t, checkRow(row))
}

func TestEnforceDropsByDefault(t *testing.T) {
	good := evenRow()

	inconsistent := evenRow()
	inconsistent.Idp = "BAD"
	inconsistent.Time[3] += 60

	incomplete := evenRow()
	incomplete.Idp = "HOLE"
	incomplete.Pace[7] = records.NullTime

	kept, dropped, err := Enforce([]records.Row{good, inconsistent, incomplete}, false)
	require.NoError(t, err)
	require.Equal(t, 2, dropped)
	require.Len(t, kept, 1)
	require.Equal(t, "EVEN", kept[0].Idp)
}

func TestEnforceStrict(t *testing.T) {
	inconsistent := evenRow()
	inconsistent.Time[3] += 60

	_, _, err := Enforce([]records.Row{inconsistent}, true)
	require.ErrorIs(t, err, ErrInconsistentSplits)
}
