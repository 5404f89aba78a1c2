package features

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Scaler divides every column by its population standard deviation. It does not subtract
// the mean, so non-negative input stays non-negative and zeros stay zeros.
type Scaler struct {
	scales []float64
}

// FitScaler computes one scale factor per column over all rows. Constant or empty columns
// get a factor of 1.
func FitScaler(rows [][]float64, width int) Scaler {
	scales := make([]float64, width)
	col := make([]float64, len(rows))
	for j := 0; j < width; j++ {
		scales[j] = 1
		if len(rows) == 0 {
			continue
		}
		for i, r := range rows {
			col[i] = r[j]
		}
		sd := stat.PopStdDev(col, nil)
		if sd > 0 && !math.IsNaN(sd) && !math.IsInf(sd, 0) {
			scales[j] = sd
		}
	}
	return Scaler{scales: scales}
}

// Scales returns a copy of the fitted factors.
func (s Scaler) Scales() []float64 {
	return append([]float64(nil), s.scales...)
}

// Transform returns new rows scaled with the fitted factors.
func (s Scaler) Transform(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = make([]float64, len(r))
		for j, v := range r {
			out[i][j] = v / s.scales[j]
		}
	}
	return out
}
