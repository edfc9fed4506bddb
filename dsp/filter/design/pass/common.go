package pass

import (
	"math"

	"github.com/cwbudde/algo-ott/dsp/filter/biquad"
)

// validFreq reports whether freq is a usable corner frequency at sampleRate.
func validFreq(freq, sampleRate float64) bool {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return false
	}
	return freq > 0 && freq < sampleRate/2 && !math.IsNaN(freq)
}

// butterworthQ returns the quality factor for a Butterworth filter section.
// index ranges from 0 to (order/2 - 1) for the biquad sections.
func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))

	s := math.Sin(theta)
	if s == 0 {
		return 1 / math.Sqrt2
	}

	return 1 / (2 * s)
}

// firstOrder designs a first-order Butterworth section via the bilinear
// transform. Used for odd-order cascades.
func firstOrder(freq, sampleRate float64, highpass bool) biquad.Coefficients {
	if !validFreq(freq, sampleRate) {
		return biquad.Coefficients{}
	}

	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)

	if highpass {
		return biquad.Coefficients{B0: norm, B1: -norm, A1: (k - 1) * norm}
	}
	return biquad.Coefficients{B0: k * norm, B1: k * norm, A1: (k - 1) * norm}
}
