package spikes

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/sonido-spikes/algorithms/common"
)

// madScale converts median(|x|) into a standard deviation estimate for
// Gaussian noise.
const madScale = 0.6745

// NoiseEstimator selects how the noise level of a recording is estimated.
type NoiseEstimator string

const (
	// NoiseMedian uses median(|x|)/0.6745, which spikes barely move.
	NoiseMedian NoiseEstimator = "median"
	// NoiseStdDev uses the sample standard deviation.
	NoiseStdDev NoiseEstimator = "std"
)

// EstimateNoise returns the noise level of samples using the median estimator.
func EstimateNoise(samples []float64) float64 {
	return common.MedianAbsolute(samples) / madScale
}

// NoiseLevel returns the noise level of samples using the given estimator.
func NoiseLevel(samples []float64, estimator NoiseEstimator) (float64, error) {
	switch estimator {
	case NoiseMedian, "":
		return EstimateNoise(samples), nil
	case NoiseStdDev:
		return common.StandardDeviation(samples), nil
	default:
		return 0, fmt.Errorf("%w: unknown noise estimator %q", ErrInvalidArgument, estimator)
	}
}

// ThresholdFromNoise scales the median noise estimate of samples by
// multiplier.
func ThresholdFromNoise(samples []float64, multiplier float64) (float64, error) {
	if multiplier < 0 || math.IsNaN(multiplier) {
		return 0, fmt.Errorf("%w: threshold multiplier must be non-negative, got %v", ErrInvalidArgument, multiplier)
	}
	return multiplier * EstimateNoise(samples), nil
}

// FramesFromMs converts a duration in milliseconds to a whole number of
// frames at sampleRate, rounding to nearest.
func FramesFromMs(ms float64, sampleRate int) (int, error) {
	if sampleRate <= 0 {
		return 0, fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidArgument, sampleRate)
	}
	if ms < 0 || math.IsNaN(ms) {
		return 0, fmt.Errorf("%w: duration must be non-negative, got %v ms", ErrInvalidArgument, ms)
	}
	return int(math.Round(ms * 1e-3 * float64(sampleRate))), nil
}
