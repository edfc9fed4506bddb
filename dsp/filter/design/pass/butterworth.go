package pass

import "github.com/cwbudde/algo-ott/dsp/filter/biquad"

// ButterworthLP designs a lowpass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0).
func ButterworthLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	return butterworth(freq, order, sampleRate, false)
}

// ButterworthHP designs a highpass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0).
func ButterworthHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	return butterworth(freq, order, sampleRate, true)
}

func butterworth(freq float64, order int, sampleRate float64, highpass bool) []biquad.Coefficients {
	if order <= 0 || !validFreq(freq, sampleRate) {
		return nil
	}
	sections := make([]biquad.Coefficients, 0, (order+1)/2)

	for i := order/2 - 1; i >= 0; i-- {
		q := butterworthQ(order, i)
		if highpass {
			sections = append(sections, HighpassRBJ(freq, q, sampleRate))
		} else {
			sections = append(sections, LowpassRBJ(freq, q, sampleRate))
		}
	}
	if order%2 != 0 {
		sections = append(sections, firstOrder(freq, sampleRate, highpass))
	}
	return sections
}
