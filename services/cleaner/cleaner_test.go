package cleaner

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"marathondata/lib/records"
	"marathondata/lib/telemetry"
)

func listingRecord(idp, runNo, ageCat, gender, half, finish string) records.RunnerRecord {
	return records.RunnerRecord{
		RunNo: runNo, AgeCat: ageCat, Gender: gender,
		Half: half, Finish: finish, Idp: idp,
	}
}

func fullSplits() [records.NumCheckpoints]records.SplitCell {
	var cells [records.NumCheckpoints]records.SplitCell
	times := []string{
		"00:25:00", "00:50:00", "01:15:00", "01:40:00", "01:45:29",
		"02:05:00", "02:30:00", "02:55:00", "03:20:00", "03:30:58",
	}
	for i := range cells {
		cells[i] = records.SplitCell{Time: times[i], Pace: "05:00", Speed: "12"}
	}
	return cells
}

func TestCleanEndToEnd(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:cleaner")
	defer cleanup()

	cfg, err := ConfigFor("London")
	require.NoError(t, err)

	finisher := records.SplitRecord{Idp: "FIN", RaceState: "Finished", Splits: fullSplits()}

	var dropoutSplits [records.NumCheckpoints]records.SplitCell
	for i := 0; i <= records.CheckpointIndex(records.K20); i++ {
		dropoutSplits[i] = records.SplitCell{Time: finisher.Splits[i].Time, Pace: "05:00", Speed: "12"}
	}
	for i := records.CheckpointIndex(records.KHalf); i < records.NumCheckpoints; i++ {
		dropoutSplits[i] = records.SplitCell{Time: "-", Pace: "-", Speed: "-"}
	}
	dropout := records.SplitRecord{Idp: "DNF", RaceState: "DNF", Splits: dropoutSplits}

	notStarted := records.SplitRecord{Idp: "DNS", RaceState: "Not Started"}

	results := []records.RunnerRecord{
		listingRecord("FIN", "17", "45-49", "M", "01:45:29", "03:30:58"),
		listingRecord("DNF", "18", "U20", "W", "", ""),
		listingRecord("DNS", "19", "18-39", "W", "", ""),
	}
	splits := []records.SplitRecord{finisher, dropout, notStarted}

	rows, report := Clean(context.Background(), Join(results, splits), cfg, 2019)

	// the not-started runner is gone, the finisher and dropout survive
	require.Len(t, rows, 2)
	require.Equal(t, 3, report.TotalIn)
	require.Equal(t, 2, report.TotalOut)
	require.Equal(t, 1, report.Dropped())

	fin := rows[0]
	require.Equal(t, "FIN", fin.Idp)
	require.Equal(t, records.StateFinished, fin.RaceState)
	require.Equal(t, records.KFinish, fin.LastSplit)
	require.Equal(t, "45-49", fin.AgeCat)
	require.Equal(t, int32(1500), fin.Time[0])
	require.Equal(t, int32(300), fin.Pace[0])
	require.Equal(t, float32(12), fin.Speed[0])
	require.Equal(t, int32(12658), fin.Time[records.CheckpointIndex(records.KFinish)])

	dnf := rows[1]
	require.Equal(t, "DNF", dnf.Idp)
	require.Equal(t, records.StateStarted, dnf.RaceState)
	require.Equal(t, records.K20, dnf.LastSplit)
	require.Equal(t, "18-39", dnf.AgeCat) // U20 override
	require.False(t, dnf.HasTime(records.CheckpointIndex(records.K25)))

	require.NoError(t, Validate(rows))

	var buf bytes.Buffer
	report.Render(&buf)
	require.Contains(t, buf.String(), "not started")
}

func TestCleanMileUnits(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:cleaner")
	defer cleanup()

	cfg, err := ConfigFor("Boston")
	require.NoError(t, err)

	var cells [records.NumCheckpoints]records.SplitCell
	for i := range cells {
		cells[i] = records.SplitCell{Time: "00:25:00", Pace: "08:03", Speed: "12"}
	}
	cells[records.NumCheckpoints-1].Time = "03:30:00"
	splits := []records.SplitRecord{{Idp: "BOS", AgeCat: "18-39", Splits: cells}}
	results := []records.RunnerRecord{listingRecord("BOS", "5", "", "M", "", "03:30:00")}

	rows, _ := Clean(context.Background(), Join(results, splits), cfg, 2017)
	require.Len(t, rows, 1)

	// 8:03 min/mile is 5:00 min/km, 12 mph is 19.31 km/h
	require.Equal(t, int32(300), rows[0].Pace[0])
	require.InDelta(t, 19.31, float64(rows[0].Speed[0]), 0.005)
	// the age category rode in from the split page
	require.Equal(t, "18-39", rows[0].AgeCat)
}

func TestCleanStrictTriples(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:cleaner")
	defer cleanup()

	cfg, err := ConfigFor("Houston")
	require.NoError(t, err)

	var partial [records.NumCheckpoints]records.SplitCell
	partial[0] = records.SplitCell{Time: "00:25:00"}
	splits := []records.SplitRecord{
		{Idp: "OK", Splits: fullSplits()},
		{Idp: "PARTIAL", Splits: partial},
	}
	results := []records.RunnerRecord{
		listingRecord("OK", "1", "18-39", "M", "", ""),
		listingRecord("PARTIAL", "2", "18-39", "M", "", ""),
	}

	rows, report := Clean(context.Background(), Join(results, splits), cfg, 2018)
	require.Len(t, rows, 1)
	require.Equal(t, "OK", rows[0].Idp)
	require.Equal(t, 1, report.Dropped())
}

func TestCleanDropsTimelessRows(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:cleaner")
	defer cleanup()

	cfg, err := ConfigFor("Stockholm")
	require.NoError(t, err)

	// Pace and speed captured but not a single time: enough evidence to
	// survive the not-started drop, but nothing to anchor last_split on.
	var paceOnly [records.NumCheckpoints]records.SplitCell
	for i := range paceOnly {
		paceOnly[i] = records.SplitCell{Pace: "05:00", Speed: "12"}
	}
	splits := []records.SplitRecord{
		{Idp: "OK", Splits: fullSplits()},
		{Idp: "NOTIME", Splits: paceOnly},
	}
	results := []records.RunnerRecord{
		listingRecord("OK", "1", "18-39", "M", "", ""),
		listingRecord("NOTIME", "2", "18-39", "M", "", ""),
	}

	rows, report := Clean(context.Background(), Join(results, splits), cfg, 2021)
	require.Len(t, rows, 1)
	require.Equal(t, "OK", rows[0].Idp)
	require.Equal(t, 1, report.Dropped())
	require.NoError(t, Validate(rows))
}

func TestCleanDropColumns(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:cleaner")
	defer cleanup()

	cfg, err := ConfigFor("Chicago")
	require.NoError(t, err)

	splits := []records.SplitRecord{{Idp: "CHI", Splits: fullSplits()}}
	results := []records.RunnerRecord{listingRecord("CHI", "777", "18-39", "W", "", "")}

	rows, _ := Clean(context.Background(), Join(results, splits), cfg, 2020)
	require.Len(t, rows, 1)
	require.Empty(t, rows[0].RunNo)
}

func TestValidateCatchesBadRows(t *testing.T) {
	good := records.NewRow()
	good.Idp = "A"
	good.Gender = "M"
	good.AgeCat = "18-39"
	good.RaceState = records.StateFinished
	good.LastSplit = records.KFinish
	good.Time[records.NumCheckpoints-1] = 12658
	require.NoError(t, Validate([]records.Row{good}))

	// Finished without a finish time is a contradiction.
	bad := good
	bad.Time[records.NumCheckpoints-1] = records.NullTime
	err := Validate([]records.Row{bad})
	require.ErrorIs(t, err, ErrValidation)

	// A non-canonical age category must not pass.
	bad = good
	bad.AgeCat = "20-24"
	err = Validate([]records.Row{bad})
	require.ErrorIs(t, err, ErrValidation)

	// A row claiming a last split while carrying no split data at all.
	bad = good
	bad.RaceState = records.StateStarted
	bad.LastSplit = records.K20
	bad.Time[records.NumCheckpoints-1] = records.NullTime
	err = Validate([]records.Row{bad})
	require.ErrorIs(t, err, ErrValidation)
}
