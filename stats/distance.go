package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrShapeMismatch is returned when two value sequences of different
// lengths are compared.
var ErrShapeMismatch = errors.New("stats: shape mismatch")

// Method selects the distance metric used to compare two distributions.
type Method int

const (
	// Euclidean is the Minkowski distance of 2nd degree (default).
	Euclidean Method = iota
	// Manhattan is the Minkowski distance of 1st degree.
	Manhattan
	// L3 is the Minkowski distance of 3rd degree.
	L3
	// Bhattacharyya measures the overlap of two probability-like
	// distributions.
	Bhattacharyya
	// Intersection is the inverted histogram-intersection similarity:
	// small when the histograms overlap heavily.
	Intersection
	// Correlation is the inverted cross-correlation similarity.
	Correlation
)

func (m Method) String() string {
	switch m {
	case Euclidean:
		return "euclidean"
	case Manhattan:
		return "manhattan"
	case L3:
		return "l3"
	case Bhattacharyya:
		return "bhat"
	case Intersection:
		return "intersection"
	case Correlation:
		return "corr"
	default:
		return "unknown"
	}
}

// Valid reports whether m is one of the recognized metrics. Distance
// silently yields 0 for unrecognized methods, so callers that receive
// the method from configuration should guard with Valid first.
func (m Method) Valid() bool {
	return m >= Euclidean && m <= Correlation
}

// Distance calculates the distance between two equal-length value
// sequences. The function is symmetric, the two inputs are
// interchangeable. Unrecognized methods yield 0 rather than an error;
// see Method.Valid.
func Distance(v1, v2 []float64, method Method) (float64, error) {
	if len(v1) != len(v2) {
		return 0, fmt.Errorf("%w: %d vs %d values", ErrShapeMismatch, len(v1), len(v2))
	}

	switch method {
	case Euclidean:
		return minkowski(v1, v2, 2), nil
	case Manhattan:
		return minkowski(v1, v2, 1), nil
	case L3:
		return minkowski(v1, v2, 3), nil
	case Bhattacharyya:
		return bhattacharyya(v1, v2), nil
	case Intersection:
		return intersection(v1, v2), nil
	case Correlation:
		return correlation(v1, v2), nil
	default:
		return 0, nil
	}
}

// minkowski calculates the Minkowski distance of degree p.
func minkowski(a, b []float64, p float64) float64 {
	switch p {
	case 1:
		sum := 0.0
		for i := range a {
			sum += math.Abs(a[i] - b[i])
		}
		return sum
	case 2:
		sum := 0.0
		for i := range a {
			diff := a[i] - b[i]
			sum += diff * diff
		}
		return math.Sqrt(sum)
	default:
		sum := 0.0
		for i := range a {
			sum += math.Pow(math.Abs(a[i]-b[i]), p)
		}
		return math.Pow(sum, 1.0/p)
	}
}

// bhattacharyya calculates the Bhattacharyya distance. The distance is
// +Inf when the two distributions do not overlap at all.
func bhattacharyya(a, b []float64) float64 {
	bc := 0.0 // Bhattacharyya coefficient
	for i := range a {
		bc += math.Sqrt(a[i] * b[i])
	}
	if bc <= 0 {
		return math.Inf(1)
	}
	return -math.Log(bc)
}

// intersection inverts the histogram-intersection similarity: the
// length of the sequences divided by the summed element-wise minima.
// Maximum similarity gives the minimum inverse, so smaller is closer.
func intersection(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += math.Min(a[i], b[i])
	}
	return float64(len(a)) / sum
}

// correlation inverts the zero-lag cross-correlation similarity.
func correlation(a, b []float64) float64 {
	return 1.0 - floats.Dot(a, b)
}
