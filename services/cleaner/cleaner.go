package cleaner

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"

	"marathondata/lib/records"
	"marathondata/lib/textutil"
	"marathondata/lib/timeutil"
)

var tracer = otel.Tracer("services/cleaner")

// Clean runs the shared pipeline over one marathon-year's joined raw
// table. The step order is fixed; Config only changes what each step does.
// Dropped-row counts come back in the Report so callers can render or log
// the diagnostics they care about.
func Clean(ctx context.Context, raws []Raw, cfg Config, raceYear int) ([]records.Row, Report) {
	ctx, span := tracer.Start(ctx, "Clean")
	defer span.End()

	report := Report{Marathon: cfg.Marathon, Year: raceYear, TotalIn: len(raws)}

	// 2. placeholder characters on split columns collapse to empty;
	// demographic and state columns keep their raw form
	for i := range raws {
		normalizePlaceholders(&raws[i])
	}

	// 3. runners with no evidence of starting
	raws, dropped := dropNotStarted(raws, cfg)
	report.record("not started", dropped)

	// 4. optional: split time with no pace/speed means unreliable capture
	if cfg.StrictTriples {
		raws, dropped = dropPartialTriples(raws)
		report.record("partial split capture", dropped)
	}

	// 5. mandatory demographics
	raws, dropped = dropMissingDemographics(raws)
	report.record("missing age/gender", dropped)

	rows := make([]records.Row, 0, len(raws))
	timeless := 0
	for _, raw := range raws {
		// 6 + 7. string times and paces to typed seconds
		row := typeRow(ctx, raw)

		// 8. mile-based sources to metric
		if cfg.MilesUnits {
			convertMileUnits(&row)
		}

		// 9. canonical age buckets
		row.AgeCat = CanonicalAgeCat(raw.AgeCat, cfg, raceYear)

		// 10. furthest checkpoint and race state; DNF/DQ sub-states all
		// collapse to Started for modeling. A row can reach this point on
		// pace or speed evidence alone; without a single parseable time
		// there is no last_split to derive, so it goes.
		row.LastSplit = row.FurthestSplit()
		if row.LastSplit == "" {
			timeless++
			continue
		}
		if row.LastSplit == records.KFinish {
			row.RaceState = records.StateFinished
		} else {
			row.RaceState = records.StateStarted
		}

		// 1. columns the source never fills reliably
		for _, col := range cfg.DropColumns {
			blankColumn(&row, col)
		}

		rows = append(rows, row)
	}
	report.record("no recorded time", timeless)

	report.TotalOut = len(rows)
	slog.InfoContext(ctx, "cleaned marathon year",
		"marathon", cfg.Marathon, "year", raceYear,
		"rows_in", report.TotalIn, "rows_out", report.TotalOut)
	return rows, report
}

func normalizePlaceholders(raw *Raw) {
	for i := range raw.Splits {
		raw.Splits[i].Time = textutil.StripPlaceholder(raw.Splits[i].Time)
		raw.Splits[i].Pace = textutil.StripPlaceholder(raw.Splits[i].Pace)
		raw.Splits[i].Speed = textutil.StripPlaceholder(raw.Splits[i].Speed)
	}
	raw.RunNo = strings.TrimSpace(raw.RunNo)
}

func dropNotStarted(raws []Raw, cfg Config) ([]Raw, int) {
	kept := raws[:0]
	for _, raw := range raws {
		if isNotStarted(raw, cfg) {
			continue
		}
		kept = append(kept, raw)
	}
	return kept, len(raws) - len(kept)
}

func isNotStarted(raw Raw, cfg Config) bool {
	for _, state := range cfg.NotStartedStates {
		if strings.EqualFold(strings.TrimSpace(raw.RaceState), state) {
			return true
		}
	}
	for _, cell := range raw.Splits {
		if cell.Time != "" || cell.Pace != "" || cell.Speed != "" {
			return false
		}
	}
	return true
}

func dropPartialTriples(raws []Raw) ([]Raw, int) {
	kept := raws[:0]
	for _, raw := range raws {
		partial := false
		for _, cell := range raw.Splits {
			if cell.Time != "" && cell.Pace == "" && cell.Speed == "" {
				partial = true
				break
			}
		}
		if !partial {
			kept = append(kept, raw)
		}
	}
	return kept, len(raws) - len(kept)
}

func dropMissingDemographics(raws []Raw) ([]Raw, int) {
	kept := raws[:0]
	for _, raw := range raws {
		if strings.TrimSpace(raw.AgeCat) == "" || strings.TrimSpace(raw.Gender) == "" {
			continue
		}
		kept = append(kept, raw)
	}
	return kept, len(raws) - len(kept)
}

func typeRow(ctx context.Context, raw Raw) records.Row {
	row := records.NewRow()
	row.Idp = raw.Idp
	row.RunNo = raw.RunNo
	row.Gender = strings.TrimSpace(raw.Gender)

	for i, cell := range raw.Splits {
		if cell.Time != "" {
			if v, err := timeutil.ParseClock(cell.Time); err == nil {
				row.Time[i] = v
			} else {
				slog.DebugContext(ctx, "unparseable split time",
					"idp", raw.Idp, "split", records.Checkpoints[i], "value", cell.Time)
			}
		}
		if cell.Pace != "" {
			if v, err := timeutil.ParsePace(cell.Pace); err == nil {
				row.Pace[i] = v
			}
		}
		if cell.Speed != "" {
			if v, err := strconv.ParseFloat(cell.Speed, 32); err == nil {
				row.Speed[i] = float32(v)
			}
		}
	}
	return row
}

func convertMileUnits(row *records.Row) {
	for i := 0; i < records.NumCheckpoints; i++ {
		if row.HasPace(i) {
			row.Pace[i] = timeutil.MilePaceToKm(float64(row.Pace[i]))
		}
		if row.HasSpeed(i) {
			row.Speed[i] = float32(timeutil.MphToKmh(float64(row.Speed[i])))
		}
	}
}

func blankColumn(row *records.Row, col string) {
	switch col {
	case "run_no":
		row.RunNo = ""
	case "idp":
		row.Idp = ""
	default:
		for i, key := range records.Checkpoints {
			switch col {
			case key + "_time":
				row.Time[i] = records.NullTime
			case key + "_pace":
				row.Pace[i] = records.NullTime
			case key + "_speed":
				row.Speed[i] = float32(math.NaN())
			}
		}
	}
}
