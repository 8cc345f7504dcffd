package impute

import "math"

// MinMaxScaler maps each column onto [0, 1] so checkpoint paces and one-hot
// indicators carry comparable weight in the distance metric. NaN entries are
// ignored while fitting and pass through transforms untouched.
type MinMaxScaler struct {
	Min []float64
	Max []float64
}

func (s *MinMaxScaler) Fit(x [][]float64) {
	if len(x) == 0 {
		return
	}
	cols := len(x[0])
	s.Min = make([]float64, cols)
	s.Max = make([]float64, cols)
	for j := 0; j < cols; j++ {
		s.Min[j] = math.Inf(1)
		s.Max[j] = math.Inf(-1)
	}
	for _, row := range x {
		for j, v := range row {
			if math.IsNaN(v) {
				continue
			}
			s.Min[j] = math.Min(s.Min[j], v)
			s.Max[j] = math.Max(s.Max[j], v)
		}
	}
}

func (s *MinMaxScaler) Transform(x [][]float64) {
	for _, row := range x {
		for j, v := range row {
			if math.IsNaN(v) {
				continue
			}
			span := s.Max[j] - s.Min[j]
			if span == 0 {
				row[j] = 0
				continue
			}
			row[j] = (v - s.Min[j]) / span
		}
	}
}

// InverseColumn maps a scaled value in column j back to its original units.
func (s *MinMaxScaler) InverseColumn(j int, v float64) float64 {
	return v*(s.Max[j]-s.Min[j]) + s.Min[j]
}
