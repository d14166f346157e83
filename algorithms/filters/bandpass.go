package filters

import (
	"fmt"
	"math"

	"github.com/mjibson/go-dsp/fft"
)

// SpikeBand is a zero-phase band-pass filter for extracellular recordings.
//
// The signal is transformed with mjibson/go-dsp, every bin outside
// [LowCutHz, HighCutHz] is zeroed (together with its mirror bin) and the
// inverse transform is taken. The mask is real and symmetric, so the output
// is real and has no phase shift: spike extrema stay on the frames where
// they occurred in the raw recording.
//
// Typical settings for single-unit activity are 300 Hz to 5 kHz.
type SpikeBand struct {
	SampleRate int     `json:"sample_rate"`
	LowCutHz   float64 `json:"low_cut_hz"`
	HighCutHz  float64 `json:"high_cut_hz"`
}

// NewSpikeBand creates a band-pass filter and validates its parameters.
//
// Parameters:
//   - sampleRate: Sample rate in Hz
//   - lowCut: Lower band edge in Hz (0 keeps DC)
//   - highCut: Upper band edge in Hz, at most the Nyquist frequency
func NewSpikeBand(sampleRate int, lowCut, highCut float64) (*SpikeBand, error) {
	sb := &SpikeBand{
		SampleRate: sampleRate,
		LowCutHz:   lowCut,
		HighCutHz:  highCut,
	}
	if err := sb.Validate(); err != nil {
		return nil, err
	}
	return sb, nil
}

// Validate checks the band edges against the sample rate.
func (sb *SpikeBand) Validate() error {
	if sb.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", sb.SampleRate)
	}

	nyquist := float64(sb.SampleRate) / 2
	if sb.LowCutHz < 0 || math.IsNaN(sb.LowCutHz) {
		return fmt.Errorf("low cut must be non-negative, got %v Hz", sb.LowCutHz)
	}
	if sb.HighCutHz > nyquist || math.IsNaN(sb.HighCutHz) {
		return fmt.Errorf("high cut must not exceed the Nyquist frequency (%v Hz), got %v Hz", nyquist, sb.HighCutHz)
	}
	if sb.LowCutHz >= sb.HighCutHz {
		return fmt.Errorf("low cut (%v Hz) must be below high cut (%v Hz)", sb.LowCutHz, sb.HighCutHz)
	}

	return nil
}

// ProcessBuffer returns the band-limited copy of input. The input is not
// modified.
func (sb *SpikeBand) ProcessBuffer(input []float64) []float64 {
	if len(input) == 0 {
		return []float64{}
	}

	spectrum := fft.FFTReal(input)
	n := len(spectrum)
	binWidth := float64(sb.SampleRate) / float64(n)

	for k := range spectrum {
		// Bins above n/2 carry the negative frequencies
		bin := k
		if k > n/2 {
			bin = n - k
		}
		freq := float64(bin) * binWidth
		if freq < sb.LowCutHz || freq > sb.HighCutHz {
			spectrum[k] = 0
		}
	}

	result := fft.IFFT(spectrum)
	output := make([]float64, len(result))
	for i, val := range result {
		output[i] = real(val)
	}

	return output
}
