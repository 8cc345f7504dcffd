package dataset

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"

	"marathondata/lib/records"
	"marathondata/services/impute"
)

type Task string

const (
	// TaskClassify predicts whether a runner fails to finish: the target
	// is 1 when race_state is Started.
	TaskClassify Task = "classify"
	// TaskRegress predicts the finish time in seconds.
	TaskRegress Task = "regress"
)

type Options struct {
	Task Task `json:"task"`
	// UpToCheckpoint bounds the split features, exclusive of the finish
	// columns that would leak the target. Defaults to k_30.
	UpToCheckpoint string  `json:"upToCheckpoint"`
	TrainFrac      float64 `json:"trainFrac"`
	TestFrac       float64 `json:"testFrac"`
	Seed           int64   `json:"seed"`
}

// Matrix is a model-ready design matrix with its target vector.
type Matrix struct {
	X        [][]float64
	Y        []float64
	Features []string
}

// RobustScaler centers on the median and scales by the interquartile
// range, which split times need given the heavy tail of slow finishers.
type RobustScaler struct {
	Median []float64
	IQR    []float64
}

func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func (s *RobustScaler) Fit(x [][]float64, cols int) {
	s.Median = make([]float64, cols)
	s.IQR = make([]float64, cols)
	buf := make([]float64, 0, len(x))
	for j := 0; j < cols; j++ {
		buf = buf[:0]
		for _, row := range x {
			if !math.IsNaN(row[j]) {
				buf = append(buf, row[j])
			}
		}
		sort.Float64s(buf)
		s.Median[j] = quantile(buf, 0.5)
		s.IQR[j] = quantile(buf, 0.75) - quantile(buf, 0.25)
	}
}

func (s *RobustScaler) Transform(x [][]float64, cols int) {
	for _, row := range x {
		for j := 0; j < cols; j++ {
			if math.IsNaN(row[j]) {
				continue
			}
			if s.IQR[j] == 0 {
				row[j] = 0
				continue
			}
			row[j] = (row[j] - s.Median[j]) / s.IQR[j]
		}
	}
}

// splitColumns lists the time/pace/speed columns up to and including the
// named checkpoint.
func splitColumns(upTo string) ([]string, error) {
	limit := records.CheckpointIndex(upTo)
	if limit < 0 {
		return nil, fmt.Errorf("unknown checkpoint %q", upTo)
	}
	var cols []string
	for i := 0; i <= limit; i++ {
		k := records.Checkpoints[i]
		cols = append(cols, k+"_time", k+"_pace", k+"_speed")
	}
	return cols, nil
}

func floatColumn(df dataframe.DataFrame, name string) ([]float64, error) {
	col := df.Col(name)
	if col.Err != nil {
		return nil, fmt.Errorf("column %s: %w", name, col.Err)
	}
	return col.Float(), nil
}

// BuildMatrix turns a concatenated frame into a design matrix: robust
// scaled split columns followed by one-hot gender and age category, with
// the target picked per Task. Null split cells stay NaN for the caller to
// filter or re-impute.
func BuildMatrix(df dataframe.DataFrame, opts Options) (*Matrix, error) {
	upTo := opts.UpToCheckpoint
	if upTo == "" {
		upTo = records.K30
	}
	numCols, err := splitColumns(upTo)
	if err != nil {
		return nil, err
	}

	n := df.Nrow()
	x := make([][]float64, n)
	for i := range x {
		x[i] = make([]float64, 0, len(numCols))
	}
	for _, name := range numCols {
		vals, err := floatColumn(df, name)
		if err != nil {
			return nil, err
		}
		for i, v := range vals {
			// The null sentinel means missing, same as NaN speeds.
			if v == float64(records.NullTime) {
				v = math.NaN()
			}
			x[i] = append(x[i], v)
		}
	}

	var scaler RobustScaler
	scaler.Fit(x, len(numCols))
	scaler.Transform(x, len(numCols))

	genders := df.Col("gender").Records()
	ages := df.Col("age_cat").Records()
	var genderEnc, ageEnc impute.OneHotEncoder
	genderEnc.Fit(genders)
	ageEnc.Fit(ages)
	features := append([]string{}, numCols...)
	for _, c := range genderEnc.Categories {
		features = append(features, "gender_"+c)
	}
	for _, c := range ageEnc.Categories {
		features = append(features, "age_cat_"+c)
	}
	for i := range x {
		x[i] = genderEnc.Encode(x[i], genders[i])
		x[i] = ageEnc.Encode(x[i], ages[i])
	}

	y, err := target(df, opts.Task)
	if err != nil {
		return nil, err
	}
	return &Matrix{X: x, Y: y, Features: features}, nil
}

func target(df dataframe.DataFrame, task Task) ([]float64, error) {
	switch task {
	case TaskClassify, "":
		states := df.Col("race_state")
		if states.Err != nil {
			return nil, fmt.Errorf("column race_state: %w", states.Err)
		}
		y := make([]float64, states.Len())
		for i, s := range states.Records() {
			if s == records.StateStarted {
				y[i] = 1
			}
		}
		return y, nil
	case TaskRegress:
		finish, err := floatColumn(df, records.KFinish+"_time")
		if err != nil {
			return nil, err
		}
		for i, v := range finish {
			if v == float64(records.NullTime) {
				finish[i] = math.NaN()
			}
		}
		return finish, nil
	default:
		return nil, fmt.Errorf("unknown task %q", task)
	}
}
