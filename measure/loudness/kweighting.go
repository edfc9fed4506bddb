package loudness

import (
	"math"

	"github.com/cwbudde/algo-ott/dsp/filter/biquad"
)

// K-weighting stage parameters from ITU-R BS.1770, valid at any rate.
const (
	shelfFreq = 1681.974450955533
	shelfGain = 3.999843853973347
	shelfQ    = 0.7071752369554196
	shelfVb   = 0.4996667741545416

	highpassFreq = 38.13547087602444
	highpassQ    = 0.5003270373238773
)

// KWeighting returns the two K-weighting sections for sampleRate: the
// head-related high shelf followed by the RLB highpass.
func KWeighting(sampleRate float64) []biquad.Coefficients {
	k := math.Tan(math.Pi * shelfFreq / sampleRate)
	vh := math.Pow(10, shelfGain/20)
	vb := math.Pow(vh, shelfVb)
	a0 := 1 + k/shelfQ + k*k
	shelf := biquad.Coefficients{
		B0: (vh + vb*k/shelfQ + k*k) / a0,
		B1: 2 * (k*k - vh) / a0,
		B2: (vh - vb*k/shelfQ + k*k) / a0,
		A1: 2 * (k*k - 1) / a0,
		A2: (1 - k/shelfQ + k*k) / a0,
	}

	k = math.Tan(math.Pi * highpassFreq / sampleRate)
	a0 = 1 + k/highpassQ + k*k
	highpass := biquad.Coefficients{
		B0: 1,
		B1: -2,
		B2: 1,
		A1: 2 * (k*k - 1) / a0,
		A2: (1 - k/highpassQ + k*k) / a0,
	}

	return []biquad.Coefficients{shelf, highpass}
}
