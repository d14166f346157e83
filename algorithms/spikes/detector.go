package spikes

import (
	"context"
	"fmt"

	"github.com/RyanBlaney/sonido-spikes/algorithms/common"
	"github.com/RyanBlaney/sonido-spikes/logging"
)

// Detector runs the configured prefilter, threshold estimation and scan over
// single-channel recordings. It keeps no state between calls, so one Detector
// can serve many goroutines, one channel each.
type Detector struct {
	config DetectorConfig
	logger logging.Logger
}

// NewDetector validates cfg and builds a Detector. A nil cfg uses
// DefaultDetectorConfig and a nil logger uses the global logger.
func NewDetector(cfg *DetectorConfig, logger logging.Logger) (*Detector, error) {
	if cfg == nil {
		cfg = DefaultDetectorConfig()
	}
	config := *cfg
	if cfg.Prefilter != nil {
		band := *cfg.Prefilter
		config.Prefilter = &band
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	logger = logger.WithFields(logging.Fields{
		"component": "spike_detector",
		"variant":   config.Variant.String(),
	})

	if config.Variant == Legacy {
		logger.Warn("legacy scan variant selected; use only to reproduce historical outputs")
	}

	return &Detector{config: config, logger: logger}, nil
}

// Config returns a copy of the detector settings.
func (d *Detector) Config() DetectorConfig {
	return d.config
}

// Params resolves the frame-based scan parameters for samples, estimating the
// threshold from the recording when no fixed threshold is configured.
func (d *Detector) Params(samples []float64) (Params, error) {
	threshold := d.config.Threshold
	if threshold == 0 {
		noise, err := NoiseLevel(samples, d.config.NoiseEstimator)
		if err != nil {
			return Params{}, err
		}
		threshold = d.config.ThresholdMultiplier * noise
	}
	return d.config.scanParams(threshold)
}

// Detect scans one recording. ctx is checked before work starts; the scan
// itself is linear in len(samples) and not interruptible.
func (d *Detector) Detect(ctx context.Context, samples []float64) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(samples) < MinSamples {
		return nil, fmt.Errorf("%w: waveform needs at least %d samples, got %d", ErrInvalidArgument, MinSamples, len(samples))
	}

	logger := d.logger.WithContext(ctx)

	signal := samples
	if d.config.Prefilter != nil {
		signal = d.config.Prefilter.ProcessBuffer(samples)
	}

	params, err := d.Params(signal)
	if err != nil {
		return nil, err
	}
	if params.Threshold == 0 {
		logger.Warn("estimated threshold is zero; every extremum pair will be accepted", logging.Fields{
			"samples": len(signal),
		})
	}

	result, err := Detect(signal, params)
	if err != nil {
		logger.Error(err, "spike scan rejected parameters")
		return nil, err
	}

	logger.Debug("spike scan complete", logging.Fields{
		"samples":       len(signal),
		"spikes":        result.Count(),
		"threshold":     params.Threshold,
		"peak_duration": params.PeakDuration,
		"refractory":    params.RefractoryPeriod,
		"rms":           common.RMS(signal),
	})

	return result, nil
}
