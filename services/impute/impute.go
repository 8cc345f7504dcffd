package impute

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"go.opentelemetry.io/otel"

	"marathondata/lib/records"
)

var tracer = otel.Tracer("services/impute")

type Method string

const (
	MethodKNN       Method = "knn"
	MethodIterative Method = "iter"
)

type Options struct {
	Method  Method `json:"method"`
	K       int    `json:"k"`
	MaxIter int    `json:"maxIter"`
	// Strict turns consistency failures into an error instead of dropping
	// the offending rows.
	Strict bool `json:"strict"`
}

type Stats struct {
	Backfilled int
	Imputed    int
	Dropped    int
}

// featureMatrix lays out one row per runner: the 10 checkpoint paces
// (NaN where missing) followed by one-hot gender and age category.
// Demographics are complete after cleaning, so only pace cells carry NaN.
func featureMatrix(rows []records.Row) ([][]float64, *MinMaxScaler) {
	genders := make([]string, len(rows))
	ages := make([]string, len(rows))
	for i, row := range rows {
		genders[i] = row.Gender
		ages[i] = row.AgeCat
	}
	var genderEnc, ageEnc OneHotEncoder
	genderEnc.Fit(genders)
	ageEnc.Fit(ages)

	x := make([][]float64, len(rows))
	for i, row := range rows {
		vec := make([]float64, 0, records.NumCheckpoints+genderEnc.Width()+ageEnc.Width())
		for k := 0; k < records.NumCheckpoints; k++ {
			if row.HasPace(k) {
				vec = append(vec, float64(row.Pace[k]))
			} else {
				vec = append(vec, math.NaN())
			}
		}
		vec = genderEnc.Encode(vec, row.Gender)
		vec = ageEnc.Encode(vec, row.AgeCat)
		x[i] = vec
	}

	var scaler MinMaxScaler
	scaler.Fit(x)
	scaler.Transform(x)
	return x, &scaler
}

// Run backfills what algebra pins down, statistically imputes the paces
// that remain, re-derives times and speeds, and drops rows the +/-5s
// consistency check rejects. Rows must already be cleaned.
func Run(ctx context.Context, rows []records.Row, opts Options) ([]records.Row, Stats, error) {
	_, span := tracer.Start(ctx, "impute.Run")
	defer span.End()

	var stats Stats
	stats.Backfilled = Backfill(rows)

	x, scaler := featureMatrix(rows)
	switch opts.Method {
	case MethodKNN, "":
		imp := KNNImputer{K: opts.K}
		imp.Impute(x)
	case MethodIterative:
		imp := IterativeImputer{MaxIter: opts.MaxIter}
		imp.Impute(x)
	default:
		return nil, stats, fmt.Errorf("unknown imputation method %q", opts.Method)
	}

	for i := range rows {
		for k := 0; k < records.NumCheckpoints; k++ {
			if rows[i].HasPace(k) {
				continue
			}
			v := scaler.InverseColumn(k, x[i][k])
			if math.IsNaN(v) || v <= 0 {
				continue
			}
			rows[i].Pace[k] = int32(math.Round(v))
			stats.Imputed++
		}
	}
	Backfill(rows)

	kept, dropped, err := Enforce(rows, opts.Strict)
	if err != nil {
		return nil, stats, err
	}
	stats.Dropped = dropped

	slog.InfoContext(ctx, "imputation finished",
		"rows", len(kept),
		"backfilled", stats.Backfilled,
		"imputed", stats.Imputed,
		"dropped", stats.Dropped)
	return kept, stats, nil
}
