package spikes

// Spike is one detected peak-to-opposing-extremum transition.
type Spike struct {
	// Magnitude is the absolute difference between the two extrema.
	Magnitude float64 `json:"magnitude"`
	// Timestamp is the frame chosen by the alignment mode.
	Timestamp int `json:"timestamp"`
	// StartFrame and EndFrame locate the two extrema, StartFrame first.
	StartFrame int `json:"start_frame"`
	EndFrame   int `json:"end_frame"`
}

// Result holds the spikes found in one waveform.
type Result struct {
	Spikes []Spike `json:"spikes"`
	// Samples is the length of the scanned waveform.
	Samples int `json:"samples"`
}

// Count returns the number of detected spikes.
func (r *Result) Count() int {
	return len(r.Spikes)
}

// Magnitudes returns the spike magnitudes in the dense array layout: one
// element per input sample, slot 0 unused, spike k at slot k+1 and zero
// everywhere after the last spike.
func (r *Result) Magnitudes() []float64 {
	out := make([]float64, r.Samples)
	for k, s := range r.Spikes {
		out[k+1] = s.Magnitude
	}
	return out
}

// Timestamps returns the spike timestamps in the same layout as Magnitudes.
func (r *Result) Timestamps() []float64 {
	out := make([]float64, r.Samples)
	for k, s := range r.Spikes {
		out[k+1] = float64(s.Timestamp)
	}
	return out
}

// TimestampFrames returns the spike timestamps as frame indices, one per
// spike with no sentinel slot.
func (r *Result) TimestampFrames() []int {
	frames := make([]int, len(r.Spikes))
	for k, s := range r.Spikes {
		frames[k] = s.Timestamp
	}
	return frames
}
