// Package pitchdist wraps the pitch distribution of a recording: a
// smoothed, normalized histogram of pitch values over equally spaced
// cent bins, together with the transforms that higher-level tonic and
// mode estimation builds on (octave folding, shifting, zero-padding).
package pitchdist

import (
	"errors"
	"fmt"
	"math"

	"github.com/makamlab/modetonic/peaks"
)

const (
	// OctaveCents is the cent span of one octave.
	OctaveCents = 1200.0

	// DefaultRefFreq is the reference frequency assumed when none is
	// recorded.
	DefaultRefFreq = 440.0

	// OverlapNone marks a distribution that does not come from an
	// overlapping chunk of a recording.
	OverlapNone = -1.0
)

var (
	// ErrEmptyTrack is returned when a distribution is requested for an
	// empty cent track.
	ErrEmptyTrack = errors.New("pitchdist: empty cent track")

	// ErrInvalidStepSize is returned for non-positive bin step sizes.
	ErrInvalidStepSize = errors.New("pitchdist: step size must be positive")

	// ErrNegativeSmoothing is returned for negative kernel widths.
	ErrNegativeSmoothing = errors.New("pitchdist: smoothing factor must be non-negative")

	// ErrStepMismatch is returned when two distributions with different
	// bin step sizes are aligned.
	ErrStepMismatch = errors.New("pitchdist: step size mismatch")
)

// Kind tags the two distribution variants. The tag is fixed at
// construction time and selects the shift semantics, instead of being
// re-derived from bin extents on every call.
type Kind int

const (
	// KindPitch is a pitch distribution (PD): an unbounded cent range,
	// shifted linearly with zero fill.
	KindPitch Kind = iota
	// KindPitchClass is a pitch-class distribution (PCD): bins folded
	// into [0, 1200), shifted circularly.
	KindPitchClass
)

func (k Kind) String() string {
	if k == KindPitchClass {
		return "pitch-class"
	}
	return "pitch"
}

// Span marks the part of the recording a distribution covers, in
// seconds.
type Span struct {
	Start float64
	End   float64
}

// PitchDistribution is the pitch distribution of a recording or of one
// of its chunks. Bins hold strictly increasing cent values spaced by
// StepSize, and Vals holds the matching non-negative densities.
type PitchDistribution struct {
	Bins []float64
	Vals []float64

	// Kind selects circular (pitch-class) or zero-fill (pitch) shift
	// semantics.
	Kind Kind

	// StepSize is Bins[1]-Bins[0], quantized to one decimal place so
	// that floating-point drift (7.4999... for 7.5) cannot leak into
	// bin generation.
	StepSize float64

	// KernelWidth is the standard deviation of the Gaussian kernel the
	// values were smoothed with; 0 means a raw histogram.
	KernelWidth float64

	// RefFreq is the reference frequency (Hz) of the original Hz-to-cent
	// conversion. Informational, not used in computation.
	RefFreq float64

	// Source identifies the recording the distribution came from.
	Source string

	// Segment is the slice of the recording this distribution covers;
	// nil means the whole recording.
	Segment *Span

	// Overlap is the hop/window ratio for chunk-derived distributions,
	// or OverlapNone.
	Overlap float64
}

// New wraps bins and vals in a PitchDistribution, deriving the
// quantized step size. It panics when the two lengths differ: that is
// a construction bug in the caller, never a recoverable condition.
func New(bins, vals []float64, kind Kind) *PitchDistribution {
	if len(bins) != len(vals) {
		panic(fmt.Sprintf("pitchdist: bins and vals lengths differ (%d vs %d)", len(bins), len(vals)))
	}
	step := 0.0
	if len(bins) >= 2 {
		step = quantizeStep(bins[1] - bins[0])
	}
	return &PitchDistribution{
		Bins:     append([]float64(nil), bins...),
		Vals:     append([]float64(nil), vals...),
		Kind:     kind,
		StepSize: step,
		RefFreq:  DefaultRefFreq,
		Overlap:  OverlapNone,
	}
}

// quantizeStep rounds a bin spacing to one decimal place.
func quantizeStep(step float64) float64 {
	return math.Round(step*10) / 10
}

// IsPitchClass reports whether the distribution is octave-folded.
func (pd *PitchDistribution) IsPitchClass() bool {
	return pd.Kind == KindPitchClass
}

// classifyKind recovers the variant tag from bin extents: a
// distribution is pitch-class iff its bins exactly span
// [0, 1200-step]. Used once when loading snapshots; live instances
// carry the tag from construction.
func classifyKind(bins []float64, step float64) Kind {
	const eps = 1e-6
	if len(bins) == 0 {
		return KindPitch
	}
	if math.Abs(bins[0]) < eps && math.Abs(bins[len(bins)-1]-(OctaveCents-step)) < eps {
		return KindPitchClass
	}
	return KindPitch
}

// Clone returns a deep value copy.
func (pd *PitchDistribution) Clone() *PitchDistribution {
	out := *pd
	out.Bins = append([]float64(nil), pd.Bins...)
	out.Vals = append([]float64(nil), pd.Vals...)
	if pd.Segment != nil {
		seg := *pd.Segment
		out.Segment = &seg
	}
	return &out
}

// Shift moves the distribution values by offset samples and returns the
// result as a new instance; the receiver is untouched. Pitch-class
// distributions rotate circularly, so values falling off one end
// reappear at the other, modelling the octave wraparound of a tonic
// hypothesis. Pitch distributions shift linearly with zero fill; the
// caller is expected to have zero-padded beforehand so that no non-zero
// mass is dropped.
func (pd *PitchDistribution) Shift(offset int) *PitchDistribution {
	out := pd.Clone()
	if offset == 0 {
		return out
	}
	n := len(pd.Vals)
	shifted := make([]float64, n)
	switch {
	case pd.Kind == KindPitchClass:
		for i := range shifted {
			shifted[i] = pd.Vals[((i+offset)%n+n)%n]
		}
	case offset > 0:
		if offset < n {
			copy(shifted, pd.Vals[offset:])
		}
	default:
		if -offset < n {
			copy(shifted[-offset:], pd.Vals[:n+offset])
		}
	}
	out.Vals = shifted
	return out
}

// Extend prepends left and appends right zero-valued bins, continuing
// the bin grid in both directions. Used before shifting a pitch
// distribution so the shift cannot push non-zero mass off either edge.
func (pd *PitchDistribution) Extend(left, right int) *PitchDistribution {
	if left < 0 {
		left = 0
	}
	if right < 0 {
		right = 0
	}
	if left == 0 && right == 0 {
		return pd.Clone()
	}
	n := len(pd.Bins)
	bins := make([]float64, left+n+right)
	vals := make([]float64, left+n+right)
	for i := 0; i < left; i++ {
		bins[i] = pd.Bins[0] - float64(left-i)*pd.StepSize
	}
	copy(bins[left:], pd.Bins)
	copy(vals[left:], pd.Vals)
	for i := 0; i < right; i++ {
		bins[left+n+i] = pd.Bins[n-1] + float64(i+1)*pd.StepSize
	}
	out := pd.Clone()
	out.Bins = bins
	out.Vals = vals
	return out
}

// ZeroPad extends two pitch distributions with zero mass so that both
// span the union of their bin ranges, making them directly comparable.
// Both inputs must share a step size and include bin 0, which the
// builder guarantees. The inputs are not mutated; two new instances are
// returned, in argument order.
func ZeroPad(a, b *PitchDistribution) (*PitchDistribution, *PitchDistribution, error) {
	if a.StepSize != b.StepSize {
		return nil, nil, fmt.Errorf("%w: %v vs %v", ErrStepMismatch, a.StepSize, b.StepSize)
	}
	lo := math.Min(a.Bins[0], b.Bins[0])
	hi := math.Max(a.Bins[len(a.Bins)-1], b.Bins[len(b.Bins)-1])
	return a.padTo(lo, hi), b.padTo(lo, hi), nil
}

// padTo extends the distribution so its bins cover [lo, hi].
func (pd *PitchDistribution) padTo(lo, hi float64) *PitchDistribution {
	left := int(math.Round((pd.Bins[0] - lo) / pd.StepSize))
	right := int(math.Round((hi - pd.Bins[len(pd.Bins)-1]) / pd.StepSize))
	return pd.Extend(left, right)
}

// DetectPeaks finds the peak bins of the distribution, the tonic
// candidates of higher-level estimation. Normalized peak positions are
// converted to bin indices and the detector's first-bin edge artifact
// is filtered out; see peaks.DropEdgeArtifact. Returns the peak indices
// and the matching peak values.
func (pd *PitchDistribution) DetectPeaks(p peaks.Params) ([]int, []float64) {
	found := peaks.Detect(pd.Vals, p)
	positions := make([]float64, len(found))
	vals := make([]float64, len(found))
	for i, pk := range found {
		positions[i] = pk.Position
		vals[i] = pk.Value
	}
	idxs := peaks.PositionsToIndexes(positions, len(pd.Bins))
	return peaks.DropEdgeArtifact(idxs, vals)
}
