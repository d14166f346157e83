package spikes

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/sonido-spikes/algorithms/filters"
)

// DetectorConfig configures a Detector. Durations are in milliseconds and are
// converted to frames using SampleRate.
type DetectorConfig struct {
	SampleRate int `json:"sample_rate"`

	// Threshold is a fixed magnitude cutoff. Zero derives the cutoff from the
	// recording as ThresholdMultiplier times its noise level.
	Threshold           float64        `json:"threshold"`
	ThresholdMultiplier float64        `json:"threshold_multiplier"`
	NoiseEstimator      NoiseEstimator `json:"noise_estimator"`

	PeakDurationMs float64 `json:"peak_duration_ms"`
	RefractoryMs   float64 `json:"refractory_ms"`

	Alignment AlignmentMode `json:"alignment"`
	Variant   Variant       `json:"variant"`

	// Prefilter band-limits the recording before scanning. Nil scans the raw
	// samples.
	Prefilter *filters.SpikeBand `json:"prefilter,omitempty"`
}

// DefaultDetectorConfig returns settings suited to extracellular recordings
// sampled at 30 kHz.
func DefaultDetectorConfig() *DetectorConfig {
	return &DetectorConfig{
		SampleRate:          30000,
		ThresholdMultiplier: 3.5,
		NoiseEstimator:      NoiseMedian,
		PeakDurationMs:      1.0,
		RefractoryMs:        1.5,
		Alignment:           HigherMagnitude,
		Variant:             Refined,
	}
}

// Validate checks every field that does not depend on the recording.
func (c *DetectorConfig) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidArgument, c.SampleRate)
	}
	if c.Threshold < 0 || math.IsNaN(c.Threshold) {
		return fmt.Errorf("%w: threshold must be non-negative, got %v", ErrInvalidArgument, c.Threshold)
	}
	if c.Threshold == 0 && !(c.ThresholdMultiplier > 0) {
		return fmt.Errorf("%w: threshold multiplier must be positive when no fixed threshold is set, got %v",
			ErrInvalidArgument, c.ThresholdMultiplier)
	}
	if _, err := NoiseLevel(nil, c.NoiseEstimator); err != nil {
		return err
	}

	params, err := c.scanParams(0)
	if err != nil {
		return err
	}
	if err := params.Validate(MinSamples); err != nil {
		return err
	}

	if c.Prefilter != nil {
		if c.Prefilter.SampleRate == 0 {
			c.Prefilter.SampleRate = c.SampleRate
		}
		if c.Prefilter.SampleRate != c.SampleRate {
			return fmt.Errorf("%w: prefilter sample rate %d does not match recording sample rate %d",
				ErrInvalidArgument, c.Prefilter.SampleRate, c.SampleRate)
		}
		if err := c.Prefilter.Validate(); err != nil {
			return fmt.Errorf("%w: prefilter: %v", ErrInvalidArgument, err)
		}
	}

	return nil
}

// scanParams converts the millisecond settings into frame-based Params using
// threshold as the magnitude cutoff.
func (c *DetectorConfig) scanParams(threshold float64) (Params, error) {
	peakDuration, err := FramesFromMs(c.PeakDurationMs, c.SampleRate)
	if err != nil {
		return Params{}, fmt.Errorf("peak duration: %w", err)
	}
	refractory, err := FramesFromMs(c.RefractoryMs, c.SampleRate)
	if err != nil {
		return Params{}, fmt.Errorf("refractory period: %w", err)
	}

	return Params{
		Threshold:        threshold,
		PeakDuration:     max(peakDuration, 1),
		RefractoryPeriod: refractory,
		Alignment:        c.Alignment,
		Variant:          c.Variant,
	}, nil
}
