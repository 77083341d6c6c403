package pitchdist

import (
	"math"

	"github.com/mjibson/go-dsp/dsputils"
	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat/distuv"
)

// BuilderParams configures FromCents.
type BuilderParams struct {
	// RefFreq is the reference frequency (Hz) used for the upstream
	// Hz-to-cent conversion. Recorded on the distribution, not used in
	// the computation.
	RefFreq float64

	// SmoothFactor is the standard deviation (cents) of the Gaussian
	// kernel used for density estimation. 0 keeps the raw histogram.
	SmoothFactor float64

	// StepSize is the bin spacing in cents.
	StepSize float64

	// Source identifies the recording.
	Source string

	// Segment is the covered part of the recording; nil for the whole
	// recording.
	Segment *Span

	// Overlap is the hop/window ratio for chunk-derived tracks, or
	// OverlapNone.
	Overlap float64
}

// DefaultBuilderParams returns the canonical 7.5-cent configuration.
func DefaultBuilderParams() BuilderParams {
	return BuilderParams{
		RefFreq:      DefaultRefFreq,
		SmoothFactor: 7.5,
		StepSize:     7.5,
		Overlap:      OverlapNone,
	}
}

// FromCents builds the pitch distribution of a cent-valued pitch track.
// Bin edges extend outward from ±StepSize/2 so that 0 is always a bin
// center, a density histogram is taken over them, and, when
// SmoothFactor is positive, the histogram is convolved with a
// discretized Gaussian and renormalized to unit area.
//
// The caller is expected to sanitize the track beforehand: NaN and Inf
// samples are not filtered here.
func FromCents(centTrack []float64, p BuilderParams) (*PitchDistribution, error) {
	if len(centTrack) == 0 {
		return nil, ErrEmptyTrack
	}
	if p.StepSize <= 0 {
		return nil, ErrInvalidStepSize
	}
	if p.SmoothFactor < 0 {
		return nil, ErrNegativeSmoothing
	}

	edges := histogramEdges(centTrack, p.StepSize)
	vals := densityHistogram(centTrack, edges, p.StepSize)
	bins := midpoints(edges)

	if p.SmoothFactor > 0 {
		kernel := gaussianKernel(p.SmoothFactor, p.StepSize)
		smoothed := convolveFull(vals, kernel)
		// The full convolution grows a tail of len(kernel)/2 samples on
		// each side; trim them so vals stays aligned with bins.
		trim := len(kernel) / 2
		vals = smoothed[trim : len(smoothed)-trim]
		normalizeArea(bins, vals, p.StepSize)
	}

	// Higher-level functions assume bins and vals stay index-aligned.
	if len(bins) != len(vals) {
		panic("pitchdist: bins and vals lengths differ after histogram construction")
	}

	pd := New(bins, vals, KindPitch)
	if len(bins) < 2 {
		pd.StepSize = quantizeStep(p.StepSize)
	}
	pd.KernelWidth = p.SmoothFactor
	pd.RefFreq = p.RefFreq
	pd.Source = p.Source
	if p.Segment != nil {
		seg := *p.Segment
		pd.Segment = &seg
	}
	pd.Overlap = p.Overlap
	return pd, nil
}

// ToPitchClass folds the distribution modulo one octave into the
// pitch-class space of 1200/StepSize bins spanning [0, 1200). Source
// mass accumulates into the target bins, so total mass is conserved.
// All metadata except bins and vals is inherited.
func (pd *PitchDistribution) ToPitchClass() *PitchDistribution {
	n := int(math.Round(OctaveCents / pd.StepSize))
	bins := make([]float64, n)
	vals := make([]float64, n)
	for i := range bins {
		bins[i] = float64(i) * pd.StepSize
	}
	for k, b := range pd.Bins {
		m := math.Mod(b, OctaveCents)
		if m < 0 {
			m += OctaveCents
		}
		idx := int(m / pd.StepSize)
		if idx >= n {
			// A bin center within rounding distance of 1200 wraps to 0.
			idx = 0
		}
		vals[idx] += pd.Vals[k]
	}
	out := pd.Clone()
	out.Bins = bins
	out.Vals = vals
	out.Kind = KindPitchClass
	out.StepSize = quantizeStep(pd.StepSize)
	return out
}

// histogramEdges builds bin edges spaced by step, growing outward from
// ±step/2 until [min(track)-step/2, max(track)+step/2] is covered. The
// boundary edges ±step/2 are inserted explicitly when the whole track
// lies strictly on one side of zero, so a bin centered at 0 always
// exists.
func histogramEdges(track []float64, step float64) []float64 {
	minEdge := floats.Min(track) - step/2
	maxEdge := floats.Max(track) + step/2

	var left []float64
	for i := 0; ; i++ {
		e := -step/2 - float64(i)*step
		if e <= minEdge {
			break
		}
		left = append(left, e)
	}
	var right []float64
	for i := 0; ; i++ {
		e := step/2 + float64(i)*step
		if e >= maxEdge {
			break
		}
		right = append(right, e)
	}

	edges := make([]float64, 0, len(left)+len(right)+2)
	if len(left) == 0 {
		edges = append(edges, -step/2)
	}
	for i := len(left) - 1; i >= 0; i-- {
		edges = append(edges, left[i])
	}
	edges = append(edges, right...)
	if len(right) == 0 {
		edges = append(edges, step/2)
	}
	return edges
}

// densityHistogram counts track samples into the bins delimited by
// edges and normalizes to a density: counts / (total * step), so the
// rectangle-rule area is 1. The rightmost edge is inclusive.
func densityHistogram(track, edges []float64, step float64) []float64 {
	nbins := len(edges) - 1
	counts := make([]float64, nbins)
	total := 0.0
	for _, v := range track {
		if v < edges[0] || v > edges[nbins] {
			continue
		}
		idx := int((v - edges[0]) / step)
		if idx >= nbins {
			idx = nbins - 1
		}
		counts[idx]++
		total++
	}
	vals := make([]float64, nbins)
	if total > 0 {
		for i := range counts {
			vals[i] = counts[i] / (total * step)
		}
	}
	return vals
}

// midpoints returns the centers of consecutive edges.
func midpoints(edges []float64) []float64 {
	bins := make([]float64, len(edges)-1)
	for i := range bins {
		bins[i] = (edges[i] + edges[i+1]) / 2
	}
	return bins
}

// gaussianKernel samples a zero-mean Gaussian pdf at multiples of step
// out to ±5 sigma (exclusive). The sample count is always odd, so the
// convolution tails trim symmetrically. The kernel is deliberately not
// normalized; the smoothed curve is renormalized by quadrature
// afterwards.
func gaussianKernel(sigma, step float64) []float64 {
	norm := distuv.Normal{Mu: 0, Sigma: sigma}
	k := 0
	for float64(k+1)*step < 5*sigma {
		k++
	}
	kernel := make([]float64, 2*k+1)
	for i := range kernel {
		kernel[i] = norm.Prob(float64(i-k) * step)
	}
	return kernel
}

// convolveFull computes the full linear convolution of x and kernel
// (output length len(x)+len(kernel)-1) by zero-padding both to the
// output length and circularly convolving via FFT.
func convolveFull(x, kernel []float64) []float64 {
	size := len(x) + len(kernel) - 1
	cx := dsputils.ZeroPad(dsputils.ToComplex(x), size)
	ck := dsputils.ZeroPad(dsputils.ToComplex(kernel), size)
	conv := fft.Convolve(cx, ck)
	out := make([]float64, size)
	for i := range out {
		out[i] = real(conv[i])
		if out[i] < 0 {
			// FFT round-off can leave ~1e-16 negatives; the convolution
			// of two non-negative sequences cannot be negative.
			out[i] = 0
		}
	}
	return out
}

// normalizeArea scales vals so the numerically integrated area at
// spacing step equals 1. Simpson quadrature needs at least three
// points; shorter curves fall back to the rectangle rule.
func normalizeArea(bins, vals []float64, step float64) {
	var area float64
	if len(vals) >= 3 {
		area = integrate.Simpsons(bins, vals)
	} else {
		area = floats.Sum(vals) * step
	}
	if area > 0 {
		floats.Scale(1/area, vals)
	}
}
