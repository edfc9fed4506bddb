package pass

import (
	"math"

	"github.com/cwbudde/algo-ott/dsp/filter/biquad"
)

// LowpassRBJ designs a second-order lowpass section at freq with quality
// factor q using the RBJ cookbook formulas. Invalid input yields zero
// Coefficients.
func LowpassRBJ(freq, q, sampleRate float64) biquad.Coefficients {
	cw, alpha, ok := rbjPrewarp(freq, q, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	b1 := 1 - cw
	return normalize(b1/2, b1, b1/2, 1+alpha, -2*cw, 1-alpha)
}

// HighpassRBJ designs a second-order highpass section at freq with quality
// factor q using the RBJ cookbook formulas. Invalid input yields zero
// Coefficients.
func HighpassRBJ(freq, q, sampleRate float64) biquad.Coefficients {
	cw, alpha, ok := rbjPrewarp(freq, q, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	b1 := 1 + cw
	return normalize(b1/2, -b1, b1/2, 1+alpha, -2*cw, 1-alpha)
}

func rbjPrewarp(freq, q, sampleRate float64) (cw, alpha float64, ok bool) {
	if !validFreq(freq, sampleRate) {
		return 0, 0, false
	}
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		q = 1 / math.Sqrt2
	}

	w0 := 2 * math.Pi * freq / sampleRate
	return math.Cos(w0), math.Sin(w0) / (2 * q), true
}

func normalize(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
