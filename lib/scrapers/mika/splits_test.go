package mika

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"marathondata/lib/records"
	"marathondata/lib/telemetry"
)

const positionalSplitPage = `
<html><body>
<div class="detail-box box-state">
  <table>
    <tr><th>Race Status</th><td>Finished</td></tr>
    <tr><th>Last Split</th><td>Finish</td></tr>
  </table>
</div>
<div class="detail-box box-splits">
  <table>
    <tr><th>Split</th><th>Time of day</th><th>Time</th><th>Diff</th><th>min/km</th><th>km/h</th></tr>
    <tr><th>5K</th><td>10:21:05</td><td>00:21:05</td><td>21:05</td><td>04:13</td><td>14.23</td></tr>
    <tr><th>10K</th><td>10:42:33</td><td>00:42:33</td><td>21:28</td><td>04:18</td><td>13.98</td></tr>
    <tr><th>15K</th><td>11:04:01</td><td>01:04:01</td><td>21:28</td><td>04:18</td><td>13.98</td></tr>
  </table>
</div>
</body></html>`

const estimatedSplitPage = `
<html><body>
<div class="detail-box box-splits">
  <table>
    <tr><th>Split</th><th>Time</th><th>Diff</th><th>min/km</th><th>km/h</th></tr>
    <tr><th>5K</th><td>00:22:10</td><td>22:10</td><td>04:26</td><td>13.53</td></tr>
    <tr class="list-highlight estimated"><th>10K</th><td>00:44:20</td><td>22:10</td><td>04:26</td><td>13.53</td></tr>
    <tr><th>15K</th><td>01:06:31</td><td>22:11</td><td>04:27</td><td>13.50</td></tr>
  </table>
</div>
</body></html>`

const labeledSplitPage = `
<html><body>
<div class="detail-box box-general">
  <table>
    <tr><th>Name</th><td>Runner, Test</td></tr>
    <tr><th>Number</th><td>402</td></tr>
    <tr><th>Division</th><td>Female 18-39</td></tr>
  </table>
</div>
<div class="detail-box box-state">
  <table>
    <tr><th>Race Status</th><td>Started</td></tr>
    <tr><th>Last Split</th><td>30K</td></tr>
  </table>
</div>
<div class="detail-box box-splits">
  <table>
    <tr><th>Split</th><th>Time of day</th><th>Time</th><th>Diff</th><th>min/mile</th><th>miles/h</th></tr>
    <tr><th>5K</th><td>10:21:05</td><td>00:21:05</td><td>21:05</td><td>06:47</td><td>8.85</td></tr>
    <tr><th>5 Miles</th><td>10:35:12</td><td>00:35:12</td><td>14:07</td><td>06:50</td><td>8.80</td></tr>
    <tr><th>10K</th><td>10:42:33</td><td>00:42:33</td><td>21:28</td><td>06:54</td><td>8.70</td></tr>
    <tr><th>Half</th><td>11:32:10</td><td>01:32:10</td><td>49:37</td><td>07:06</td><td>8.45</td></tr>
    <tr><th>Finish Net</th><td>14:10:44</td><td>04:10:44</td><td></td><td></td><td></td></tr>
  </table>
</div>
</body></html>`

func TestParseSplitsPositional(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:mika")
	defer cleanup()

	profile, err := Profile("london14_18")
	require.NoError(t, err)

	doc := docFromString(t, positionalSplitPage)
	rec := ParseSplits(context.Background(), doc, "?content=detail&idp=RUN42&lang=EN", profile)

	require.Equal(t, "RUN42", rec.Idp)
	require.Equal(t, "Finished", rec.RaceState)
	require.Equal(t, "Finish", rec.LastSplit)

	require.Equal(t, records.SplitCell{Time: "00:21:05", Pace: "04:13", Speed: "14.23"}, rec.Splits[0])
	require.Equal(t, records.SplitCell{Time: "00:42:33", Pace: "04:18", Speed: "13.98"}, rec.Splits[1])
	require.Equal(t, records.SplitCell{Time: "01:04:01", Pace: "04:18", Speed: "13.98"}, rec.Splits[2])
	// splits past the recorded rows stay empty
	require.Equal(t, records.SplitCell{}, rec.Splits[3])
}

func TestParseSplitsEstimatedRows(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:mika")
	defer cleanup()

	profile, err := Profile("hamburg13_17")
	require.NoError(t, err)

	doc := docFromString(t, estimatedSplitPage)
	rec := ParseSplits(context.Background(), doc, "?content=detail&idp=HH77&lang=EN", profile)

	require.Equal(t, records.SplitCell{Time: "00:22:10", Pace: "04:26", Speed: "13.53"}, rec.Splits[0])
	// estimated rows collapse to the sentinel instead of their cells
	require.Equal(t, records.SplitCell{
		Time:  EstimatedSentinel,
		Pace:  EstimatedSentinel,
		Speed: EstimatedSentinel,
	}, rec.Splits[1])
	require.Equal(t, records.SplitCell{Time: "01:06:31", Pace: "04:27", Speed: "13.50"}, rec.Splits[2])
}

func TestParseSplitsLabeled(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:mika")
	defer cleanup()

	profile, err := Profile("boston21_23")
	require.NoError(t, err)

	doc := docFromString(t, labeledSplitPage)
	rec := ParseSplits(context.Background(), doc, "?content=detail&idp=BOS9&lang=EN", profile)

	require.Equal(t, "BOS9", rec.Idp)
	require.Equal(t, "Started", rec.RaceState)
	require.Equal(t, "30K", rec.LastSplit)
	require.Equal(t, "18-39", rec.AgeCat)

	k5 := records.CheckpointIndex(records.K5)
	k10 := records.CheckpointIndex(records.K10)
	kHalf := records.CheckpointIndex(records.KHalf)
	kFinish := records.CheckpointIndex(records.KFinish)

	require.Equal(t, "00:21:05", rec.Splits[k5].Time)
	// the interleaved mile split lands nowhere
	require.Equal(t, "00:42:33", rec.Splits[k10].Time)
	require.Equal(t, "01:32:10", rec.Splits[kHalf].Time)
	require.Equal(t, "04:10:44", rec.Splits[kFinish].Time)
	require.Equal(t, records.SplitCell{}, rec.Splits[records.CheckpointIndex(records.K15)])
}

func TestMatchLabel(t *testing.T) {
	cases := []struct {
		label    string
		expected string
	}{
		{label: "5K", expected: records.K5},
		{label: "Half", expected: records.KHalf},
		{label: "HALF SPLIT", expected: records.KHalf},
		{label: "Finish Net", expected: records.KFinish},
		{label: "Finish net ", expected: records.KFinish},
		{label: "20 Miles", expected: ""},
		{label: "Gun Time", expected: ""},
	}
	for _, c := range cases {
		t.Run(c.label, func(t *testing.T) {
			require.Equal(t, c.expected, matchLabel(c.label))
		})
	}
}
