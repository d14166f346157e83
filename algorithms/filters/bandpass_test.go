package filters

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sine(n, sampleRate int, freq, amp float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return out
}

func TestSpikeBandKeepsInBandTone(t *testing.T) {
	// 800 samples at 8 kHz gives 10 Hz bins, so every tone sits on a bin
	const n, rate = 800, 8000

	tone := sine(n, rate, 1000, 1)
	hum := sine(n, rate, 50, 3)

	input := make([]float64, n)
	for i := range input {
		input[i] = 2.5 + hum[i] + tone[i]
	}

	sb, err := NewSpikeBand(rate, 300, 3000)
	require.NoError(t, err)

	output := sb.ProcessBuffer(input)
	require.Len(t, output, n)
	for i := range output {
		assert.InDelta(t, tone[i], output[i], 1e-6, "sample %d", i)
	}
}

func TestSpikeBandLeavesInputUntouched(t *testing.T) {
	input := []float64{1, -2, 3, -4, 5, -6, 7, -8}
	before := append([]float64(nil), input...)

	sb, err := NewSpikeBand(16, 1, 8)
	require.NoError(t, err)
	sb.ProcessBuffer(input)

	assert.Equal(t, before, input)
}

func TestSpikeBandPreservesPulsePosition(t *testing.T) {
	input := make([]float64, 256)
	input[100], input[101] = 6, -8

	sb, err := NewSpikeBand(30000, 300, 15000)
	require.NoError(t, err)
	output := sb.ProcessBuffer(input)

	peak := 0
	for i := range output {
		if math.Abs(output[i]) > math.Abs(output[peak]) {
			peak = i
		}
	}
	assert.Equal(t, 101, peak)
}

func TestSpikeBandEmptyInput(t *testing.T) {
	sb, err := NewSpikeBand(30000, 300, 5000)
	require.NoError(t, err)
	assert.Empty(t, sb.ProcessBuffer(nil))
}

func TestSpikeBandValidation(t *testing.T) {
	tests := []struct {
		name            string
		rate            int
		lowCut, highCut float64
	}{
		{"zero sample rate", 0, 300, 5000},
		{"negative low cut", 30000, -1, 5000},
		{"above nyquist", 30000, 300, 15001},
		{"inverted band", 30000, 5000, 300},
		{"empty band", 30000, 300, 300},
		{"NaN high cut", 30000, 300, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sb, err := NewSpikeBand(tt.rate, tt.lowCut, tt.highCut)
			require.Error(t, err)
			assert.Nil(t, sb)
		})
	}
}
