package dataset

import (
	"fmt"
	"math"
	"math/rand"
)

// Split holds row indexes into a Matrix for each partition.
type Split struct {
	Train []int
	Test  []int
	Val   []int
}

// SplitFor picks the partitioning strategy for a task: class targets get
// a stratified split so every partition sees the same class balance,
// continuous targets get a plain shuffled split. Regression rows whose
// target is missing are left out of every partition.
func SplitFor(task Task, y []float64, trainFrac, testFrac float64, seed int64) (Split, error) {
	switch task {
	case TaskClassify, "":
		return StratifiedSplit(y, trainFrac, testFrac, seed)
	case TaskRegress:
		idx := make([]int, 0, len(y))
		for i, v := range y {
			if !math.IsNaN(v) {
				idx = append(idx, i)
			}
		}
		return RandomSplit(idx, trainFrac, testFrac, seed)
	default:
		return Split{}, fmt.Errorf("unknown task %q", task)
	}
}

func checkFractions(trainFrac, testFrac float64) error {
	if trainFrac <= 0 || testFrac < 0 || trainFrac+testFrac > 1 {
		return fmt.Errorf("bad split fractions train=%v test=%v", trainFrac, testFrac)
	}
	return nil
}

// RandomSplit shuffles the given row indexes with the seed and slices
// them by fraction; whatever remains after train and test goes to
// validation.
func RandomSplit(idx []int, trainFrac, testFrac float64, seed int64) (Split, error) {
	if err := checkFractions(trainFrac, testFrac); err != nil {
		return Split{}, err
	}

	shuffled := append([]int{}, idx...)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

	nTrain := int(trainFrac * float64(len(shuffled)))
	nTest := int(testFrac * float64(len(shuffled)))
	return Split{
		Train: shuffled[:nTrain],
		Test:  shuffled[nTrain : nTrain+nTest],
		Val:   shuffled[nTrain+nTest:],
	}, nil
}

// StratifiedSplit partitions row indexes by target value so each
// partition sees the same class balance. Fractions apply per stratum;
// whatever remains after train and test goes to validation. The seed
// fixes the shuffle, so the same inputs always produce the same split.
// Only meaningful for class-valued targets; a continuous target makes
// every row its own stratum, use RandomSplit for those.
func StratifiedSplit(y []float64, trainFrac, testFrac float64, seed int64) (Split, error) {
	if err := checkFractions(trainFrac, testFrac); err != nil {
		return Split{}, err
	}

	strata := map[float64][]int{}
	for i, v := range y {
		if math.IsNaN(v) {
			return Split{}, fmt.Errorf("target at row %d is NaN", i)
		}
		strata[v] = append(strata[v], i)
	}
	// Map order is random; sort keys for determinism.
	keys := make([]float64, 0, len(strata))
	for k := range strata {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}

	rng := rand.New(rand.NewSource(seed))
	var out Split
	for _, k := range keys {
		idx := strata[k]
		rng.Shuffle(len(idx), func(a, b int) { idx[a], idx[b] = idx[b], idx[a] })
		nTrain := int(trainFrac * float64(len(idx)))
		nTest := int(testFrac * float64(len(idx)))
		out.Train = append(out.Train, idx[:nTrain]...)
		out.Test = append(out.Test, idx[nTrain:nTrain+nTest]...)
		out.Val = append(out.Val, idx[nTrain+nTest:]...)
	}
	return out, nil
}

// Take materializes one partition of the matrix.
func (m *Matrix) Take(idx []int) *Matrix {
	out := &Matrix{Features: m.Features}
	for _, i := range idx {
		out.X = append(out.X, m.X[i])
		out.Y = append(out.Y, m.Y[i])
	}
	return out
}
