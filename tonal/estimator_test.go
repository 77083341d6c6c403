package tonal_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/makamlab/modetonic/pitchdist"
	"github.com/makamlab/modetonic/stats"
	"github.com/makamlab/modetonic/tonal"
)

// twelveBinPCD builds a pitch-class distribution on a 100-cent grid.
func twelveBinPCD(vals []float64) *pitchdist.PitchDistribution {
	bins := make([]float64, 12)
	for i := range bins {
		bins[i] = float64(i) * 100
	}
	return pitchdist.New(bins, vals, pitchdist.KindPitchClass)
}

func testPCD() *pitchdist.PitchDistribution {
	return twelveBinPCD([]float64{0.5, 0.2, 0.1, 0, 0, 0, 0.05, 0, 0, 0.1, 0.05, 0})
}

// TestDistanceMatrixShape verifies the candidate-pair scoring loop
// produces a len(peaks) x len(modes) matrix.
func TestDistanceMatrixShape(t *testing.T) {
	dist := testPCD()
	modes := []*pitchdist.PitchDistribution{dist.Shift(3), dist.Shift(5)}

	matrix, err := tonal.DistanceMatrix(dist, []int{0, 3, 5}, modes, stats.Euclidean)
	require.NoError(t, err)
	require.Len(t, matrix, 3)
	for _, row := range matrix {
		require.Len(t, row, 2)
	}
	// A trial shifted by k matches the mode built from the same shift.
	require.Zero(t, matrix[1][0])
	require.Zero(t, matrix[2][1])
	require.Greater(t, matrix[0][0], 0.0)
}

// TestTonicEstimatePitchClass verifies that the candidate matching the
// mode template's rotation scores a zero distance and the others do
// not.
func TestTonicEstimatePitchClass(t *testing.T) {
	dist := testPCD()
	mode := dist.Shift(3)

	est := tonal.NewEstimator(stats.Euclidean, tonal.MetricPitchClass)
	vector, err := est.TonicEstimate(dist, []int{0, 3, 5}, mode)
	require.NoError(t, err)
	require.Len(t, vector, 3)
	require.Zero(t, vector[1])
	require.Greater(t, vector[0], 0.0)
	require.Greater(t, vector[2], 0.0)
}

// TestTonicEstimatePitch verifies the pitch-metric path: zero-padding
// to a shared range plus the extra extension keeps a self-comparison at
// zero for the unshifted candidate.
func TestTonicEstimatePitch(t *testing.T) {
	bins := []float64{-15, -7.5, 0, 7.5, 15}
	dist := pitchdist.New(bins, []float64{0.1, 0.2, 0.4, 0.2, 0.1}, pitchdist.KindPitch)
	mode := dist.Clone()

	est := tonal.NewEstimator(stats.Euclidean, tonal.MetricPitch)
	vector, err := est.TonicEstimate(dist, []int{0, 2}, mode)
	require.NoError(t, err)
	require.Len(t, vector, 2)
	require.Zero(t, vector[0])
	require.Greater(t, vector[1], 0.0)

	// The inputs are not mutated by the padding steps.
	require.Len(t, dist.Vals, 5)
	require.Len(t, mode.Vals, 5)
}

// TestTonicEstimatePitchDifferentRanges verifies padding against a mode
// template spanning other bins than the recording.
func TestTonicEstimatePitchDifferentRanges(t *testing.T) {
	dist := pitchdist.New([]float64{0, 7.5, 15}, []float64{0.2, 0.5, 0.3}, pitchdist.KindPitch)
	mode := pitchdist.New([]float64{-15, -7.5, 0, 7.5}, []float64{0.1, 0.3, 0.4, 0.2}, pitchdist.KindPitch)

	est := tonal.NewEstimator(stats.Manhattan, tonal.MetricPitch)
	vector, err := est.TonicEstimate(dist, []int{-1, 0, 1}, mode)
	require.NoError(t, err)
	require.Len(t, vector, 3)
	for _, d := range vector {
		require.GreaterOrEqual(t, d, 0.0)
	}
}

// TestModeEstimatePitchClass verifies the one-row matrix path with an
// assumed tonic: the template equal to the recording scores zero.
func TestModeEstimatePitchClass(t *testing.T) {
	dist := testPCD()
	modes := []*pitchdist.PitchDistribution{dist.Clone(), dist.Shift(1)}

	est := tonal.NewEstimator(stats.Euclidean, tonal.MetricPitchClass)
	vector, err := est.ModeEstimate(dist, modes)
	require.NoError(t, err)
	require.Len(t, vector, 2)
	require.Zero(t, vector[0])
	require.Greater(t, vector[1], 0.0)
}

// TestModeEstimatePitch verifies the per-template padding path: each
// template is padded against a fresh copy, so templates of different
// extents are scored independently.
func TestModeEstimatePitch(t *testing.T) {
	dist := pitchdist.New([]float64{0, 7.5, 15}, []float64{0.2, 0.5, 0.3}, pitchdist.KindPitch)
	same := dist.Clone()
	wider := pitchdist.New([]float64{-15, -7.5, 0, 7.5, 15, 22.5}, []float64{0, 0.1, 0.2, 0.4, 0.2, 0.1}, pitchdist.KindPitch)

	est := tonal.NewEstimator(stats.Euclidean, tonal.MetricPitch)
	vector, err := est.ModeEstimate(dist, []*pitchdist.PitchDistribution{same, wider})
	require.NoError(t, err)
	require.Len(t, vector, 2)
	require.Zero(t, vector[0])
	require.Greater(t, vector[1], 0.0)
	require.Len(t, dist.Vals, 3, "input distribution must not grow")
}

// TestEmptyCandidateSetsYieldEmptyVectors verifies the documented edge
// policy: no candidates is not an error.
func TestEmptyCandidateSetsYieldEmptyVectors(t *testing.T) {
	dist := testPCD()
	est := tonal.NewEstimator(stats.Euclidean, tonal.MetricPitchClass)

	vector, err := est.TonicEstimate(dist, nil, dist)
	require.NoError(t, err)
	require.Empty(t, vector)

	vector, err = est.ModeEstimate(dist, nil)
	require.NoError(t, err)
	require.Empty(t, vector)
}

// TestMismatchedLengthsSurfaceShapeError verifies that comparing
// distributions of different bin counts fails loudly.
func TestMismatchedLengthsSurfaceShapeError(t *testing.T) {
	dist := testPCD()
	short := pitchdist.New([]float64{0, 100}, []float64{0.5, 0.5}, pitchdist.KindPitchClass)

	est := tonal.NewEstimator(stats.Euclidean, tonal.MetricPitchClass)
	_, err := est.TonicEstimate(dist, []int{0}, short)
	require.ErrorIs(t, err, stats.ErrShapeMismatch)
}
