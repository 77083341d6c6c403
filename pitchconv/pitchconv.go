// Package pitchconv converts pitch tracks between Hertz and the
// log-frequency cent scale. 1200 cents span one octave relative to a
// reference frequency.
package pitchconv

import "math"

// CentsPerOctave is the number of cents in one octave.
const CentsPerOctave = 1200.0

// HzToCents converts an array of Hertz values into cents relative to
// refFreq. Non-positive samples are dropped before conversion: they are
// meaningless as pitch and the logarithm is undefined for them, so the
// returned slice may be shorter than the input.
func HzToCents(hzTrack []float64, refFreq float64) []float64 {
	cents := make([]float64, 0, len(hzTrack))
	for _, hz := range hzTrack {
		if hz <= 0 {
			continue
		}
		cents = append(cents, CentsPerOctave*math.Log2(hz/refFreq))
	}
	return cents
}

// CentsToHz converts an array of cent values back into Hertz relative
// to refFreq.
func CentsToHz(centTrack []float64, refFreq float64) []float64 {
	hz := make([]float64, len(centTrack))
	for i, c := range centTrack {
		hz[i] = refFreq * math.Exp2(c/CentsPerOctave)
	}
	return hz
}
