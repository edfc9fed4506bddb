package pass

import "github.com/cwbudde/algo-ott/dsp/filter/biquad"

// LinkwitzRileyLP designs a lowpass Linkwitz-Riley cascade of the given order.
//
// A Linkwitz-Riley filter of order 2N is two cascaded Butterworth filters
// of order N. It is -6.02 dB at the crossover frequency, and its sum with
// the matching [LinkwitzRileyHP] has a flat magnitude response.
//
// The order must be a positive even integer (2, 4, 6, 8, …). Returns nil
// for invalid parameters.
func LinkwitzRileyLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	return linkwitzRiley(freq, order, sampleRate, false)
}

// LinkwitzRileyHP designs a highpass Linkwitz-Riley cascade of the given order.
//
// For orders divisible by 4 (LR4, LR8, …) the output is in phase with
// [LinkwitzRileyLP]. For orders ≡ 2 mod 4 the highpass is 180° out of phase
// at the crossover; see [LinkwitzRileyNeedsHPInvert].
func LinkwitzRileyHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	sections := linkwitzRiley(freq, order, sampleRate, true)
	if sections != nil && LinkwitzRileyNeedsHPInvert(order) {
		// One negated section flips the polarity of the whole cascade.
		sections[0].B0 = -sections[0].B0
		sections[0].B1 = -sections[0].B1
		sections[0].B2 = -sections[0].B2
	}
	return sections
}

// LinkwitzRileyNeedsHPInvert reports whether the given Linkwitz-Riley order
// requires HP polarity inversion for allpass summation. Returns true for
// orders ≡ 2 mod 4 (LR2, LR6, LR10, …). [LinkwitzRileyHP] applies it.
func LinkwitzRileyNeedsHPInvert(order int) bool {
	return order > 0 && order%4 == 2
}

func linkwitzRiley(freq float64, order int, sampleRate float64, highpass bool) []biquad.Coefficients {
	if order <= 0 || order%2 != 0 {
		return nil
	}

	bw := butterworth(freq, order/2, sampleRate, highpass)
	if bw == nil {
		return nil
	}

	sections := make([]biquad.Coefficients, 0, 2*len(bw))
	sections = append(sections, bw...)
	sections = append(sections, bw...)
	return sections
}
