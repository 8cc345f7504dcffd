package impute

import "sort"

// OneHotEncoder turns a categorical column into 0/1 indicator columns, one
// per category in sorted order. Unknown values at transform time encode as
// all zeros.
type OneHotEncoder struct {
	Categories []string
	index      map[string]int
}

func (e *OneHotEncoder) Fit(values []string) {
	seen := map[string]struct{}{}
	for _, v := range values {
		seen[v] = struct{}{}
	}
	e.Categories = e.Categories[:0]
	for v := range seen {
		e.Categories = append(e.Categories, v)
	}
	sort.Strings(e.Categories)
	e.index = make(map[string]int, len(e.Categories))
	for i, c := range e.Categories {
		e.index[c] = i
	}
}

func (e *OneHotEncoder) Width() int { return len(e.Categories) }

// Encode appends the indicator columns for v to dst.
func (e *OneHotEncoder) Encode(dst []float64, v string) []float64 {
	start := len(dst)
	for range e.Categories {
		dst = append(dst, 0)
	}
	if i, ok := e.index[v]; ok {
		dst[start+i] = 1
	}
	return dst
}
