package spikes

import (
	"encoding/json"
	"fmt"
	"math"
)

// Overlap is the extra frame allowance used to extend the opposing-extremum
// search when it lands exactly on the window boundary.
const Overlap = 5

// MinSamples is the shortest waveform the scanner accepts.
const MinSamples = 3

// AlignmentMode chooses which extremum of a detected pair becomes the
// reported timestamp.
type AlignmentMode int

const (
	// HigherMagnitude aligns to the extremum with the larger absolute value.
	// Ties go to the later (end) extremum.
	HigherMagnitude AlignmentMode = iota
	// NegativeBiased aligns to the more negative extremum.
	// Ties go to the later (end) extremum.
	NegativeBiased
)

func (a AlignmentMode) String() string {
	switch a {
	case HigherMagnitude:
		return "higher_magnitude"
	case NegativeBiased:
		return "negative_biased"
	default:
		return "unknown"
	}
}

// ParseAlignmentMode converts the string form back into an AlignmentMode.
func ParseAlignmentMode(s string) (AlignmentMode, error) {
	switch s {
	case "higher_magnitude", "":
		return HigherMagnitude, nil
	case "negative_biased":
		return NegativeBiased, nil
	default:
		return 0, fmt.Errorf("%w: unknown alignment mode %q", ErrInvalidArgument, s)
	}
}

func (a AlignmentMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *AlignmentMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	mode, err := ParseAlignmentMode(s)
	if err != nil {
		return err
	}
	*a = mode
	return nil
}

// Variant selects the scan routine.
type Variant int

const (
	// Refined is the default scan: full-window start-peak replacement followed
	// by an ordering fix-up.
	Refined Variant = iota
	// Legacy reproduces historical outputs of the original scan routine. It
	// exists for compatibility with previously processed datasets only.
	Legacy
)

func (v Variant) String() string {
	switch v {
	case Refined:
		return "refined"
	case Legacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// ParseVariant converts the string form back into a Variant.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "refined", "":
		return Refined, nil
	case "legacy":
		return Legacy, nil
	default:
		return 0, fmt.Errorf("%w: unknown scan variant %q", ErrInvalidArgument, s)
	}
}

func (v Variant) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

func (v *Variant) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseVariant(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Params holds the scan parameters for a single call.
type Params struct {
	// Threshold is the minimum peak-to-peak magnitude of an accepted spike.
	Threshold float64
	// PeakDuration is the maximum number of frames between a candidate peak
	// and its opposing extremum.
	PeakDuration int
	// RefractoryPeriod is the minimum frame gap after an assigned timestamp
	// before the next candidate may be considered.
	RefractoryPeriod int
	// Alignment picks the reported timestamp of each spike.
	Alignment AlignmentMode
	// Variant picks the scan routine. The zero value is Refined.
	Variant Variant
}

// Validate checks the parameters against a waveform of n samples.
func (p Params) Validate(n int) error {
	if n < MinSamples {
		return fmt.Errorf("%w: waveform needs at least %d samples, got %d", ErrInvalidArgument, MinSamples, n)
	}
	if p.Threshold < 0 || math.IsNaN(p.Threshold) {
		return fmt.Errorf("%w: threshold must be non-negative, got %v", ErrInvalidArgument, p.Threshold)
	}
	if p.PeakDuration < 1 {
		return fmt.Errorf("%w: peak duration must be at least 1 frame, got %d", ErrInvalidArgument, p.PeakDuration)
	}
	if p.RefractoryPeriod < 0 {
		return fmt.Errorf("%w: refractory period must be non-negative, got %d", ErrInvalidArgument, p.RefractoryPeriod)
	}

	switch p.Alignment {
	case HigherMagnitude, NegativeBiased:
	default:
		return fmt.Errorf("%w: unknown alignment mode %d", ErrInvalidArgument, int(p.Alignment))
	}

	switch p.Variant {
	case Refined:
	case Legacy:
		if p.Alignment != HigherMagnitude {
			return ErrUnsupportedAlignment
		}
	default:
		return fmt.Errorf("%w: unknown scan variant %d", ErrInvalidArgument, int(p.Variant))
	}

	return nil
}
