// Package segment slices long pitch tracks into fixed-duration,
// optionally overlapping analysis chunks. Boundaries are measured
// against the real timestamps of the track, not sample counts.
package segment

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrLengthMismatch is returned when the time and pitch tracks have
	// different lengths.
	ErrLengthMismatch = errors.New("segment: time and pitch track lengths differ")

	// ErrInvalidChunkSize is returned for non-positive chunk sizes.
	ErrInvalidChunkSize = errors.New("segment: chunk size must be positive")
)

// Chunk describes one slice of a recording.
type Chunk struct {
	Source string
	Start  float64 // seconds, rounded to the nearest second
	End    float64 // seconds, rounded to the nearest second
}

// Params controls slicing.
type Params struct {
	// ChunkSize is the target chunk duration in seconds.
	ChunkSize float64
	// Threshold is the smallest acceptable tail, as a fraction of
	// ChunkSize. A shorter tail is discarded, unless the whole track is
	// shorter than one chunk.
	Threshold float64
	// Overlap is the fraction by which consecutive chunks overlap;
	// 0 makes each chunk start where the previous one ended.
	Overlap float64
}

// DefaultParams returns slicing parameters with the canonical 0.5 tail
// threshold and no overlap.
func DefaultParams(chunkSize float64) Params {
	return Params{ChunkSize: chunkSize, Threshold: 0.5}
}

// Slice cuts pitchTrack into chunks of p.ChunkSize seconds, walking
// chunk boundaries at multiples of the chunk size over timeTrack. The
// returned pitch chunks and Chunk records are index-aligned.
//
// Tail policy: the remainder after the last full boundary is kept as a
// final chunk when it spans at least p.Threshold*p.ChunkSize seconds
// and discarded otherwise - unless no boundary was ever crossed, in
// which case the whole track is returned as a single chunk so short
// recordings are never dropped entirely.
func Slice(timeTrack, pitchTrack []float64, source string, p Params) ([][]float64, []Chunk, error) {
	if len(timeTrack) != len(pitchTrack) {
		return nil, nil, fmt.Errorf("%w: %d vs %d samples", ErrLengthMismatch, len(timeTrack), len(pitchTrack))
	}
	if p.ChunkSize <= 0 {
		return nil, nil, ErrInvalidChunkSize
	}
	if len(timeTrack) == 0 {
		return [][]float64{}, []Chunk{}, nil
	}

	maxTime := floats.Max(timeTrack)
	var chunks [][]float64
	var info []Chunk
	last := 0

	for k := 1; k <= int(maxTime/p.ChunkSize); k++ {
		below := lastIndexBelow(timeTrack, p.ChunkSize*float64(k))
		if below < 0 {
			continue
		}
		cur := below + 1
		end := cur - 1
		if end < last {
			end = last
		}
		chunks = append(chunks, append([]float64(nil), pitchTrack[last:end]...))
		info = append(info, Chunk{
			Source: source,
			Start:  math.Round(timeTrack[last]),
			End:    math.Round(timeTrack[cur-1]),
		})

		// With overlap, the next chunk starts at the boundary scaled by
		// (1-overlap) rather than at the end of this one.
		if p.Overlap > 0 {
			hop := lastIndexBelow(timeTrack, p.ChunkSize*float64(k)*(1-p.Overlap))
			if hop >= 0 {
				last = hop + 1
			}
		} else {
			last = cur
		}
	}

	lastSec := timeTrack[len(timeTrack)-1]
	switch {
	case maxTime-timeTrack[last] >= p.ChunkSize*p.Threshold:
		chunks = append(chunks, append([]float64(nil), pitchTrack[last:]...))
		info = append(info, Chunk{
			Source: source,
			Start:  math.Round(timeTrack[last]),
			End:    math.Round(lastSec),
		})
	case last == 0:
		// The entire track is shorter than the threshold; keep it whole
		// so the recording is still represented.
		chunks = append(chunks, append([]float64(nil), pitchTrack...))
		info = append(info, Chunk{Source: source, Start: 0, End: math.Round(lastSec)})
	}

	return chunks, info, nil
}

// lastIndexBelow returns the largest index whose timestamp is strictly
// below bound, or -1.
func lastIndexBelow(timeTrack []float64, bound float64) int {
	idx := -1
	for i, t := range timeTrack {
		if t < bound {
			idx = i
		}
	}
	return idx
}
