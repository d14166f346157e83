package spikes

import (
	"fmt"
	"math"
)

// scanPolicy captures everything that differs between the two variants.
type scanPolicy struct {
	// firstCandidate is the first frame tested as a start peak.
	firstCandidate int
	// fullWindowRescan extends the start-peak replacement over the whole
	// window instead of stopping at the opposing extremum.
	fullWindowRescan bool
	// reorder swaps the pair when the replacement start lands after the end.
	reorder bool
}

func policyFor(v Variant) scanPolicy {
	if v == Legacy {
		// The historical routine started one frame later and kept the
		// truncated re-scan; both are needed to reproduce its outputs.
		return scanPolicy{firstCandidate: 2}
	}
	return scanPolicy{firstCandidate: 1, fullWindowRescan: true, reorder: true}
}

// extremaPair is a candidate start peak and its opposing extremum.
type extremaPair struct {
	startFrame int
	startValue float64
	endFrame   int
	endValue   float64
}

func (p extremaPair) magnitude() float64 {
	return math.Abs(p.startValue - p.endValue)
}

// timestamp applies the alignment policy to an accepted pair.
func (p extremaPair) timestamp(mode AlignmentMode) int {
	switch mode {
	case NegativeBiased:
		if p.startValue < p.endValue {
			return p.startFrame
		}
		return p.endFrame
	default:
		if math.Abs(p.startValue) > math.Abs(p.endValue) {
			return p.startFrame
		}
		return p.endFrame
	}
}

// Detect runs one forward scan over samples and returns the detected spikes
// in timestamp order. Invalid parameters are reported before any scanning.
func Detect(samples []float64, params Params) (*Result, error) {
	if err := params.Validate(len(samples)); err != nil {
		return nil, err
	}

	result := &Result{Samples: len(samples)}
	scan(samples, params, func(s Spike) {
		result.Spikes = append(result.Spikes, s)
	})
	return result, nil
}

// DetectInto scans samples and writes the spikes into caller-owned buffers,
// which must both have len(samples) elements. Slot 0 and every slot past the
// last spike are zeroed; spike k occupies slot k+1. It returns the spike count.
func DetectInto(samples []float64, params Params, magnitudes, timestamps []float64) (int, error) {
	if err := params.Validate(len(samples)); err != nil {
		return 0, err
	}
	if len(magnitudes) != len(samples) || len(timestamps) != len(samples) {
		return 0, fmt.Errorf("%w: output buffers must have %d elements, got %d and %d",
			ErrInvalidArgument, len(samples), len(magnitudes), len(timestamps))
	}

	clear(magnitudes)
	clear(timestamps)

	slot := 1
	count := scan(samples, params, func(s Spike) {
		mustBeInside("output slot", slot, len(samples))
		magnitudes[slot] = s.Magnitude
		timestamps[slot] = float64(s.Timestamp)
		slot++
	})
	return count, nil
}

// scan is the single forward pass shared by both variants. It calls emit once
// per accepted spike and returns the number of spikes.
func scan(x []float64, params Params, emit func(Spike)) int {
	n := len(x)
	policy := policyFor(params.Variant)

	count := 0
	nextAllowed := policy.firstCandidate

	// The candidate test reads x[i+1], so n-2 is the last frame that can
	// start a spike.
	for i := policy.firstCandidate; i < n-1; i++ {
		if i < nextAllowed {
			continue
		}

		level := math.Abs(x[i])
		if !(level > math.Abs(x[i-1]) && level >= math.Abs(x[i+1])) {
			continue
		}

		pair := searchPair(x, i, params.PeakDuration, policy)

		magnitude := pair.magnitude()
		// Written as a negated >= so a NaN magnitude is discarded too.
		if !(magnitude >= params.Threshold) {
			continue
		}

		ts := pair.timestamp(params.Alignment)
		emit(Spike{
			Magnitude:  magnitude,
			Timestamp:  ts,
			StartFrame: pair.startFrame,
			EndFrame:   pair.endFrame,
		})
		count++

		if ts+params.RefractoryPeriod > pair.endFrame && ts+params.RefractoryPeriod < n {
			nextAllowed = ts + params.RefractoryPeriod
		} else {
			nextAllowed = pair.endFrame + 1
		}
	}

	return count
}

// searchPair finds the opposing extremum of the start peak at frame i,
// refines the start peak inside the same window and extends the search past
// the window edge by Overlap frames when the extremum sits on that edge.
func searchPair(x []float64, i, peakDuration int, policy scanPolicy) extremaPair {
	n := len(x)
	last := i + min(peakDuration, n-1-i)
	mustBeInside("window search", last, n)

	// A positive start looks for a trough, anything else for a crest.
	positive := x[i] > 0
	opposes := func(candidate, current float64) bool {
		if positive {
			return candidate < current
		}
		return candidate > current
	}
	outdoes := func(candidate, current float64) bool {
		if positive {
			return candidate > current
		}
		return candidate < current
	}

	pair := extremaPair{
		startFrame: i,
		startValue: x[i],
		endFrame:   i + 1,
		endValue:   x[i+1],
	}

	for j := i + 1; j <= last; j++ {
		if opposes(x[j], pair.endValue) {
			pair.endFrame, pair.endValue = j, x[j]
		}
	}

	stop := last
	if !policy.fullWindowRescan {
		stop = pair.endFrame
	}
	for j := i + 1; j < stop; j++ {
		if outdoes(x[j], pair.startValue) {
			pair.startFrame, pair.startValue = j, x[j]
		}
	}

	if policy.reorder && pair.endFrame < pair.startFrame {
		pair.startFrame, pair.endFrame = pair.endFrame, pair.startFrame
		pair.startValue, pair.endValue = x[pair.startFrame], x[pair.endFrame]
	}

	if pair.endFrame == last && last+Overlap < n {
		mustBeInside("boundary extension", last+Overlap, n)
		for j := last + 1; j <= last+Overlap; j++ {
			if opposes(x[j], pair.endValue) {
				pair.endFrame, pair.endValue = j, x[j]
			}
		}
	}

	return pair
}
