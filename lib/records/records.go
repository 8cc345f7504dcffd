package records

import "math"

// Checkpoint keys in course order. The half marathon sits between 20k and
// 25k, which is why the segment distances around it are not a flat 5km.
const (
	K5      = "k_5"
	K10     = "k_10"
	K15     = "k_15"
	K20     = "k_20"
	KHalf   = "k_half"
	K25     = "k_25"
	K30     = "k_30"
	K35     = "k_35"
	K40     = "k_40"
	KFinish = "k_finish"
)

var Checkpoints = []string{K5, K10, K15, K20, KHalf, K25, K30, K35, K40, KFinish}

const NumCheckpoints = 10

// CumulativeKm holds the course distance at each checkpoint.
var CumulativeKm = [NumCheckpoints]float64{
	5, 10, 15, 20, 21.0975, 25, 30, 35, 40, 42.195,
}

// SegmentKm holds the leg length between a checkpoint and the one before
// it, derived from CumulativeKm. The first leg starts at the gun.
var SegmentKm = func() [NumCheckpoints]float64 {
	var seg [NumCheckpoints]float64
	prev := 0.0
	for i, d := range CumulativeKm {
		seg[i] = d - prev
		prev = d
	}
	return seg
}()

// CheckpointIndex returns the course-order index of a checkpoint key, or
// -1 for an unknown key.
func CheckpointIndex(key string) int {
	for i, k := range Checkpoints {
		if k == key {
			return i
		}
	}
	return -1
}

// Race states derived by the cleaner.
const (
	StateFinished   = "Finished"
	StateStarted    = "Started"
	StateNotStarted = "Not Started"
)

// RunnerRecord is one row of a results listing page, kept as raw strings
// the way the site rendered them.
type RunnerRecord struct {
	RunNo  string
	AgeCat string
	Gender string
	Half   string
	Finish string
	Idp    string
}

// SplitCell is the raw (time, pace, speed) triple of one checkpoint row on
// a runner's split page.
type SplitCell struct {
	Time  string
	Pace  string
	Speed string
}

// SplitRecord is one runner's split page. RaceState, LastSplit and AgeCat
// are only populated for sites that expose them there.
type SplitRecord struct {
	Idp       string
	RaceState string
	LastSplit string
	AgeCat    string
	Splits    [NumCheckpoints]SplitCell
}

// NullTime marks a missing time or pace in a cleaned row.
const NullTime = int32(-1)

// Row is the cleaned, typed per-runner record. Missing times and paces are
// NullTime; missing speeds are NaN.
type Row struct {
	Idp       string
	RunNo     string
	Gender    string
	AgeCat    string
	RaceState string
	LastSplit string
	Time      [NumCheckpoints]int32
	Pace      [NumCheckpoints]int32
	Speed     [NumCheckpoints]float32
}

// NewRow returns a Row with every checkpoint marked missing.
func NewRow() Row {
	r := Row{}
	for i := 0; i < NumCheckpoints; i++ {
		r.Time[i] = NullTime
		r.Pace[i] = NullTime
		r.Speed[i] = float32(math.NaN())
	}
	return r
}

func (r Row) HasTime(i int) bool  { return r.Time[i] != NullTime }
func (r Row) HasPace(i int) bool  { return r.Pace[i] != NullTime }
func (r Row) HasSpeed(i int) bool { return !math.IsNaN(float64(r.Speed[i])) }

// HasAnySplit reports whether any checkpoint carries any recorded value.
// Cleaned rows always do; a row without any is a pipeline bug.
func (r Row) HasAnySplit() bool {
	for i := 0; i < NumCheckpoints; i++ {
		if r.HasTime(i) || r.HasPace(i) || r.HasSpeed(i) {
			return true
		}
	}
	return false
}

// FurthestSplit returns the key of the furthest checkpoint with a recorded
// time, or "" when no time was recorded at all.
func (r Row) FurthestSplit() string {
	for i := NumCheckpoints - 1; i >= 0; i-- {
		if r.HasTime(i) {
			return Checkpoints[i]
		}
	}
	return ""
}

// AgeCategories is the canonical bucket set every marathon's source
// categories collapse into.
var AgeCategories = []string{
	"18-39", "40-44", "45-49", "50-54", "55-59", "60-64", "65-69", "70+",
}

// IsCanonicalAgeCat reports membership in AgeCategories.
func IsCanonicalAgeCat(cat string) bool {
	for _, c := range AgeCategories {
		if c == cat {
			return true
		}
	}
	return false
}
