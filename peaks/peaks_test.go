package peaks_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/makamlab/modetonic/peaks"
)

// TestDetectInteriorMaxima verifies basic local-maximum picking with
// normalized positions.
func TestDetectInteriorMaxima(t *testing.T) {
	found := peaks.Detect([]float64{0, 1, 0, 2, 0}, peaks.DefaultParams())
	require.Len(t, found, 2)
	require.Equal(t, 0.25, found[0].Position)
	require.Equal(t, 1.0, found[0].Value)
	require.Equal(t, 0.75, found[1].Position)
	require.Equal(t, 2.0, found[1].Value)
}

// TestDetectBoundaryMaxima verifies that boundary samples exceeding
// their single neighbor qualify as peaks.
func TestDetectBoundaryMaxima(t *testing.T) {
	found := peaks.Detect([]float64{3, 1, 2}, peaks.DefaultParams())
	require.Len(t, found, 2)
	require.Equal(t, 0.0, found[0].Position)
	require.Equal(t, 1.0, found[1].Position)
}

// TestDetectPlateau verifies a flat top is reported once, at its left
// edge.
func TestDetectPlateau(t *testing.T) {
	found := peaks.Detect([]float64{0, 2, 2, 2, 0}, peaks.DefaultParams())
	require.Len(t, found, 1)
	require.Equal(t, 0.25, found[0].Position)
}

// TestDetectMinHeight verifies the height threshold.
func TestDetectMinHeight(t *testing.T) {
	p := peaks.Params{MinHeight: 1.5}
	found := peaks.Detect([]float64{0, 1, 0, 2, 0}, p)
	require.Len(t, found, 1)
	require.Equal(t, 2.0, found[0].Value)
}

// TestDetectMaxPeaks verifies the cap keeps the highest peaks, ordered
// by position.
func TestDetectMaxPeaks(t *testing.T) {
	p := peaks.Params{MaxPeaks: 2}
	found := peaks.Detect([]float64{0, 3, 0, 1, 0, 2, 0}, p)
	require.Len(t, found, 2)
	require.Equal(t, 3.0, found[0].Value)
	require.Equal(t, 2.0, found[1].Value)
	require.Less(t, found[0].Position, found[1].Position)
}

// TestPositionsToIndexes verifies the round(pos*(n-1)) conversion.
func TestPositionsToIndexes(t *testing.T) {
	idxs := peaks.PositionsToIndexes([]float64{0, 0.25, 0.75, 1}, 5)
	require.Equal(t, []int{0, 1, 3, 4}, idxs)
}

// TestDropEdgeArtifact pins the post-filter: a first candidate at bin 0
// drops the trailing pair, anything else passes through unchanged.
func TestDropEdgeArtifact(t *testing.T) {
	idxs, vals := peaks.DropEdgeArtifact([]int{0, 5, 9}, []float64{3, 2, 1})
	require.Equal(t, []int{0, 5}, idxs)
	require.Equal(t, []float64{3, 2}, vals)

	idxs, vals = peaks.DropEdgeArtifact([]int{2, 5, 9}, []float64{3, 2, 1})
	require.Equal(t, []int{2, 5, 9}, idxs)
	require.Equal(t, []float64{3, 2, 1}, vals)

	idxs, vals = peaks.DropEdgeArtifact(nil, nil)
	require.Empty(t, idxs)
	require.Empty(t, vals)
}
