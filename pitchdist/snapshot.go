package pitchdist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrCorruptSnapshot is returned when a persisted snapshot fails the
// bins/vals length contract.
var ErrCorruptSnapshot = errors.New("pitchdist: corrupt snapshot")

// snapshot is the persisted form of a distribution. Bins and vals
// round-trip exactly; step_size is re-derived on load through the same
// quantization rule as construction. An empty segmentation means the
// whole recording.
type snapshot struct {
	Bins         []float64 `json:"bins"`
	Vals         []float64 `json:"vals"`
	KernelWidth  float64   `json:"kernel_width"`
	Source       string    `json:"source"`
	RefFreq      float64   `json:"ref_freq"`
	Segmentation []float64 `json:"segmentation"`
	Overlap      float64   `json:"overlap"`
	StepSize     float64   `json:"step_size"`
}

// Save writes the distribution as a JSON snapshot.
func (pd *PitchDistribution) Save(w io.Writer) error {
	s := snapshot{
		Bins:        pd.Bins,
		Vals:        pd.Vals,
		KernelWidth: pd.KernelWidth,
		Source:      pd.Source,
		RefFreq:     pd.RefFreq,
		Overlap:     pd.Overlap,
		StepSize:    pd.StepSize,
	}
	if pd.Segment != nil {
		s.Segmentation = []float64{pd.Segment.Start, pd.Segment.End}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("pitchdist: encoding snapshot: %w", err)
	}
	return nil
}

// SaveFile writes the distribution to a JSON file at path.
func (pd *PitchDistribution) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("pitchdist: creating snapshot file: %w", err)
	}
	defer f.Close()
	if err := pd.Save(f); err != nil {
		return err
	}
	return f.Close()
}

// Load reads a JSON snapshot back into a PitchDistribution. The
// distribution kind is classified once from the loaded bin extents.
func Load(r io.Reader) (*PitchDistribution, error) {
	var s snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("pitchdist: decoding snapshot: %w", err)
	}
	if len(s.Bins) != len(s.Vals) {
		return nil, fmt.Errorf("%w: %d bins vs %d vals", ErrCorruptSnapshot, len(s.Bins), len(s.Vals))
	}
	if len(s.Bins) == 0 {
		return nil, fmt.Errorf("%w: no bins", ErrCorruptSnapshot)
	}

	step := s.StepSize
	if len(s.Bins) >= 2 {
		step = quantizeStep(s.Bins[1] - s.Bins[0])
	}
	pd := New(s.Bins, s.Vals, classifyKind(s.Bins, step))
	if len(s.Bins) < 2 {
		pd.StepSize = quantizeStep(s.StepSize)
	}
	pd.KernelWidth = s.KernelWidth
	pd.Source = s.Source
	pd.RefFreq = s.RefFreq
	pd.Overlap = s.Overlap
	if len(s.Segmentation) == 2 {
		pd.Segment = &Span{Start: s.Segmentation[0], End: s.Segmentation[1]}
	}
	return pd, nil
}

// LoadFile reads a JSON snapshot from a file at path.
func LoadFile(path string) (*PitchDistribution, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pitchdist: opening snapshot file: %w", err)
	}
	defer f.Close()
	return Load(f)
}
