// Package peaks picks candidate peaks from a 1-D value sequence. The
// detector reports positions normalized to [0, 1] over the sequence
// range, the convention of the external peak pickers this library was
// designed to interoperate with, together with helpers to convert the
// positions back to bin indices.
package peaks

import "sort"

// Peak is a detected local maximum.
type Peak struct {
	Position float64 // normalized position in [0, 1]
	Value    float64 // value at the peak
}

// Params controls peak detection.
type Params struct {
	// MinHeight is the minimum value a sample must reach to qualify as
	// a peak. Zero accepts every local maximum.
	MinHeight float64
	// MaxPeaks caps the number of reported peaks, keeping the highest
	// ones. Zero means unlimited.
	MaxPeaks int
}

// DefaultParams returns detection parameters that accept every local
// maximum.
func DefaultParams() Params {
	return Params{}
}

// Detect finds the local maxima of vals and returns them ordered by
// position. Boundary samples qualify when they exceed their single
// neighbor; interior plateaus report their first sample.
func Detect(vals []float64, p Params) []Peak {
	n := len(vals)
	if n == 0 {
		return []Peak{}
	}
	if n == 1 {
		if vals[0] >= p.MinHeight {
			return []Peak{{Position: 0, Value: vals[0]}}
		}
		return []Peak{}
	}

	var found []Peak
	appendPeak := func(i int) {
		if vals[i] < p.MinHeight {
			return
		}
		found = append(found, Peak{
			Position: float64(i) / float64(n-1),
			Value:    vals[i],
		})
	}

	if vals[0] > vals[1] {
		appendPeak(0)
	}
	for i := 1; i < n-1; i++ {
		if vals[i] <= vals[i-1] {
			continue
		}
		// Walk over a flat top; the peak is reported at its left edge.
		j := i
		for j < n-1 && vals[j+1] == vals[i] {
			j++
		}
		if j < n-1 && vals[j+1] < vals[i] {
			appendPeak(i)
		}
		i = j
	}
	if vals[n-1] > vals[n-2] {
		appendPeak(n - 1)
	}

	if p.MaxPeaks > 0 && len(found) > p.MaxPeaks {
		sort.Slice(found, func(a, b int) bool { return found[a].Value > found[b].Value })
		found = found[:p.MaxPeaks]
		sort.Slice(found, func(a, b int) bool { return found[a].Position < found[b].Position })
	}
	if found == nil {
		return []Peak{}
	}
	return found
}

// PositionsToIndexes converts normalized peak positions to integer bin
// indices for a sequence of numBins bins, rounding to the nearest bin.
func PositionsToIndexes(positions []float64, numBins int) []int {
	idxs := make([]int, len(positions))
	for i, pos := range positions {
		idx := int(pos*float64(numBins-1) + 0.5)
		if idx < 0 {
			idx = 0
		} else if idx > numBins-1 {
			idx = numBins - 1
		}
		idxs[i] = idx
	}
	return idxs
}

// DropEdgeArtifact removes the spurious trailing candidate that some
// position-normalizing peak pickers emit when a peak is pinned at the
// very first bin: whenever the first index is 0, the last (index,
// value) pair is dropped. Detectors without this artifact can skip the
// filter. Both slices are returned re-sliced, never mutated.
func DropEdgeArtifact(idxs []int, vals []float64) ([]int, []float64) {
	if len(idxs) == 0 || idxs[0] != 0 {
		return idxs, vals
	}
	return idxs[:len(idxs)-1], vals[:len(vals)-1]
}
