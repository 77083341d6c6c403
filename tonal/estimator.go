// Package tonal scores tonic and mode candidates for a recording by
// comparing its pitch distribution against externally trained mode
// templates. Estimation returns ranked distance vectors; selecting the
// arg-min is left to the caller's decision layer.
package tonal

import (
	"github.com/makamlab/modetonic/logging"
	"github.com/makamlab/modetonic/pitchdist"
	"github.com/makamlab/modetonic/stats"
)

// Metric selects the distribution space candidates are compared in.
type Metric int

const (
	// MetricPitchClass compares octave-folded distributions; tonic
	// candidates are circular shifts.
	MetricPitchClass Metric = iota
	// MetricPitch compares unfolded distributions; the compared pair is
	// zero-padded to a shared bin range first.
	MetricPitch
)

func (m Metric) String() string {
	if m == MetricPitch {
		return "pitch"
	}
	return "pitch-class"
}

// Estimator scores tonic and mode candidates under a fixed distance
// method and metric.
type Estimator struct {
	method stats.Method
	metric Metric
	log    logging.Logger
}

// NewEstimator creates an estimator. Logging goes to the package
// default logger; see SetLogger.
func NewEstimator(method stats.Method, metric Metric) *Estimator {
	return &Estimator{
		method: method,
		metric: metric,
		log:    logging.Default(),
	}
}

// SetLogger redirects the estimator's diagnostics.
func (e *Estimator) SetLogger(l logging.Logger) {
	if l == nil {
		l = &logging.NoOpLogger{}
	}
	e.log = l
}

// DistanceMatrix calculates the distance of dist from every (tonic
// candidate, mode candidate) pair: entry [i][j] is the distance between
// dist shifted by peakIdxs[i] and modeDists[j]. Works for either
// distribution kind; the shift follows the kind of dist.
func DistanceMatrix(dist *pitchdist.PitchDistribution, peakIdxs []int, modeDists []*pitchdist.PitchDistribution, method stats.Method) ([][]float64, error) {
	result := make([][]float64, len(peakIdxs))
	for i, peakIdx := range peakIdxs {
		trial := dist.Shift(peakIdx)
		row := make([]float64, len(modeDists))
		for j, modeDist := range modeDists {
			d, err := stats.Distance(trial.Vals, modeDist.Vals, method)
			if err != nil {
				return nil, err
			}
			row[j] = d
		}
		result[i] = row
	}
	return result, nil
}

// TonicEstimate compares the recording's distribution against one mode
// template at every tonic candidate in peakIdxs and returns the
// distance vector indexed like peakIdxs. An empty candidate set yields
// an empty vector.
//
// In the pitch metric the pair is first zero-padded to a shared bin
// range and then extended by the extreme candidate offsets on both
// sides, so no non-zero mass can be shifted off either edge.
func (e *Estimator) TonicEstimate(dist *pitchdist.PitchDistribution, peakIdxs []int, modeDist *pitchdist.PitchDistribution) ([]float64, error) {
	e.log.Debug("estimating tonic", logging.Fields{
		logging.FieldSource:     dist.Source,
		logging.FieldMethod:     e.method.String(),
		logging.FieldMetric:     e.metric.String(),
		logging.FieldCandidates: len(peakIdxs),
	})
	if len(peakIdxs) == 0 {
		return []float64{}, nil
	}

	trial, modeTrial := dist, modeDist
	if e.metric == MetricPitch {
		var err error
		trial, modeTrial, err = pitchdist.ZeroPad(dist, modeDist)
		if err != nil {
			return nil, err
		}
		maxIdx, minIdx := extremes(peakIdxs)
		left, right := abs(maxIdx), abs(minIdx)
		trial = trial.Extend(left, right)
		modeTrial = modeTrial.Extend(left, right)
	}

	matrix, err := DistanceMatrix(trial, peakIdxs, []*pitchdist.PitchDistribution{modeTrial}, e.method)
	if err != nil {
		return nil, err
	}
	vector := make([]float64, len(matrix))
	for i, row := range matrix {
		vector[i] = row[0]
	}
	return vector, nil
}

// ModeEstimate compares the recording's distribution against every mode
// template, with the tonic assumed already normalized to bin 0
// upstream, and returns the distance vector indexed like modeDists. An
// empty template set yields an empty vector.
//
// In the pitch metric each template may have a different bin extent, so
// the distribution is zero-padded per template and scored one template
// at a time instead of through a shared matrix.
func (e *Estimator) ModeEstimate(dist *pitchdist.PitchDistribution, modeDists []*pitchdist.PitchDistribution) ([]float64, error) {
	e.log.Debug("estimating mode", logging.Fields{
		logging.FieldSource: dist.Source,
		logging.FieldMethod: e.method.String(),
		logging.FieldMetric: e.metric.String(),
		logging.FieldModes:  len(modeDists),
	})
	if len(modeDists) == 0 {
		return []float64{}, nil
	}

	if e.metric == MetricPitchClass {
		matrix, err := DistanceMatrix(dist, []int{0}, modeDists, e.method)
		if err != nil {
			return nil, err
		}
		return matrix[0], nil
	}

	vector := make([]float64, len(modeDists))
	for i, modeDist := range modeDists {
		trial, modeTrial, err := pitchdist.ZeroPad(dist, modeDist)
		if err != nil {
			return nil, err
		}
		d, err := stats.Distance(trial.Vals, modeTrial.Vals, e.method)
		if err != nil {
			return nil, err
		}
		vector[i] = d
	}
	return vector, nil
}

// extremes returns the maximum and minimum of a non-empty index set.
func extremes(idxs []int) (maxIdx, minIdx int) {
	maxIdx, minIdx = idxs[0], idxs[0]
	for _, idx := range idxs[1:] {
		if idx > maxIdx {
			maxIdx = idx
		}
		if idx < minIdx {
			minIdx = idx
		}
	}
	return maxIdx, minIdx
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
