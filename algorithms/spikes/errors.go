package spikes

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is wrapped by every precondition failure. Callers match
// it with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrUnsupportedAlignment is returned when the legacy variant is asked for
// NegativeBiased alignment. The historical routine's alternate branch compared
// against a value it never computed, so there is no output to reproduce.
var ErrUnsupportedAlignment = fmt.Errorf("%w: legacy variant only supports higher_magnitude alignment", ErrInvalidArgument)

// InvariantError reports a window computation that left the waveform. It is
// raised with panic: it means the scan arithmetic is wrong, not the input.
type InvariantError struct {
	Frame   int
	Samples int
	Op      string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("spikes: %s reached frame %d outside waveform of %d samples", e.Op, e.Frame, e.Samples)
}

func mustBeInside(op string, frame, n int) {
	if frame < 0 || frame >= n {
		panic(&InvariantError{Frame: frame, Samples: n, Op: op})
	}
}
