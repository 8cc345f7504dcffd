package impute

import (
	"math"
	"sort"
)

// KNNImputer fills NaN entries with the distance-weighted mean of the K
// nearest rows, using a NaN-aware euclidean distance that rescales by the
// share of comparable coordinates.
type KNNImputer struct {
	K int
}

// nanDistance is the euclidean distance over coordinates present in both
// rows, scaled up by total/present so sparse rows are not artificially
// close. Returns NaN when the rows share no coordinate.
func nanDistance(a, b []float64) float64 {
	var sum float64
	present := 0
	for j := range a {
		if math.IsNaN(a[j]) || math.IsNaN(b[j]) {
			continue
		}
		d := a[j] - b[j]
		sum += d * d
		present++
	}
	if present == 0 {
		return math.NaN()
	}
	return math.Sqrt(sum * float64(len(a)) / float64(present))
}

type neighbor struct {
	idx  int
	dist float64
}

// Impute fills missing entries of x in place.
func (imp *KNNImputer) Impute(x [][]float64) {
	k := imp.K
	if k <= 0 {
		k = 5
	}
	filled := make([][]float64, len(x))
	for i, row := range x {
		missing := false
		for _, v := range row {
			if math.IsNaN(v) {
				missing = true
				break
			}
		}
		if !missing {
			continue
		}

		neighbors := make([]neighbor, 0, len(x))
		for j, other := range x {
			if j == i {
				continue
			}
			d := nanDistance(row, other)
			if math.IsNaN(d) {
				continue
			}
			neighbors = append(neighbors, neighbor{idx: j, dist: d})
		}
		sort.Slice(neighbors, func(a, b int) bool { return neighbors[a].dist < neighbors[b].dist })

		out := make([]float64, len(row))
		copy(out, row)
		for col, v := range row {
			if !math.IsNaN(v) {
				continue
			}
			var sum, weight float64
			n := 0
			for _, nb := range neighbors {
				if n == k {
					break
				}
				nv := x[nb.idx][col]
				if math.IsNaN(nv) {
					continue
				}
				// An identical row decides the value outright.
				if nb.dist == 0 {
					sum, weight, n = nv, 1, k
					break
				}
				w := 1 / nb.dist
				sum += w * nv
				weight += w
				n++
			}
			if weight > 0 {
				out[col] = sum / weight
			}
		}
		filled[i] = out
	}
	for i, out := range filled {
		if out != nil {
			x[i] = out
		}
	}
}
