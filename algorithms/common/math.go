package common

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Robust statistics used to characterise the noise floor of a recording

// StandardDeviation calculates the sample standard deviation
func StandardDeviation(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return stat.StdDev(data, nil)
}

// Median returns the middle value, averaging the two central values for
// even-length input
func Median(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2.0
	}
	return sorted[mid]
}

// MedianAbsolute returns median(|x|), the location estimate used for
// zero-mean band-limited signals
func MedianAbsolute(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	abs := make([]float64, len(data))
	for i, val := range data {
		abs[i] = math.Abs(val)
	}
	return Median(abs)
}

// RMS calculates root mean square
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Norm(data, 2) / math.Sqrt(float64(len(data)))
}
