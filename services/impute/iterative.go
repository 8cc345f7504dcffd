package impute

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// IterativeImputer models each incomplete column as a linear function of
// the others, round-robin, refining the estimates until they settle or
// MaxIter rounds pass.
type IterativeImputer struct {
	MaxIter int
	Tol     float64
}

func colMean(x [][]float64, j int) float64 {
	var sum float64
	n := 0
	for _, row := range x {
		if math.IsNaN(row[j]) {
			continue
		}
		sum += row[j]
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// fitColumn solves least squares for column target on the remaining
// columns plus an intercept, over the rows where target was observed.
func fitColumn(x [][]float64, observed [][]bool, target int) *mat.VecDense {
	cols := len(x[0])
	var rows []int
	for i := range x {
		if observed[i][target] {
			rows = append(rows, i)
		}
	}
	if len(rows) < cols+1 {
		return nil
	}

	a := mat.NewDense(len(rows), cols, nil)
	b := mat.NewVecDense(len(rows), nil)
	for r, i := range rows {
		c := 0
		for j := 0; j < len(x[i]); j++ {
			if j == target {
				continue
			}
			a.Set(r, c, x[i][j])
			c++
		}
		a.Set(r, cols-1, 1)
		b.SetVec(r, x[i][target])
	}

	var qr mat.QR
	qr.Factorize(a)
	coef := mat.NewVecDense(cols, nil)
	if err := qr.SolveVecTo(coef, false, b); err != nil {
		return nil
	}
	return coef
}

func predict(row []float64, target int, coef *mat.VecDense) float64 {
	var v float64
	c := 0
	for j := range row {
		if j == target {
			continue
		}
		v += coef.AtVec(c) * row[j]
		c++
	}
	return v + coef.AtVec(coef.Len()-1)
}

// Impute fills missing entries of x in place. Every row must have at most
// len(row)-1 missing columns; fully observed rows drive the regressions.
func (imp *IterativeImputer) Impute(x [][]float64) {
	if len(x) == 0 {
		return
	}
	maxIter := imp.MaxIter
	if maxIter <= 0 {
		maxIter = 10
	}
	tol := imp.Tol
	if tol <= 0 {
		tol = 1e-3
	}

	cols := len(x[0])
	observed := make([][]bool, len(x))
	incomplete := make([]bool, cols)
	for i, row := range x {
		observed[i] = make([]bool, cols)
		for j, v := range row {
			observed[i][j] = !math.IsNaN(v)
			if math.IsNaN(v) {
				incomplete[j] = true
			}
		}
	}

	// Start from column means so every regression sees a dense matrix.
	for j := 0; j < cols; j++ {
		if !incomplete[j] {
			continue
		}
		mean := colMean(x, j)
		for i := range x {
			if !observed[i][j] {
				x[i][j] = mean
			}
		}
	}

	for iter := 0; iter < maxIter; iter++ {
		var maxDelta float64
		for j := 0; j < cols; j++ {
			if !incomplete[j] {
				continue
			}
			coef := fitColumn(x, observed, j)
			if coef == nil {
				continue
			}
			for i := range x {
				if observed[i][j] {
					continue
				}
				next := predict(x[i], j, coef)
				maxDelta = math.Max(maxDelta, math.Abs(next-x[i][j]))
				x[i][j] = next
			}
		}
		if maxDelta < tol {
			break
		}
	}
}
