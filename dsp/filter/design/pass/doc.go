// Package pass designs lowpass and highpass biquad cascades: RBJ
// second-order sections, Butterworth cascades, and Linkwitz-Riley
// crossover filters built from squared Butterworth responses.
//
// Design functions return nil (or zero Coefficients) for invalid input
// instead of an error; callers such as dsp/filter/crossover validate and
// report.
package pass
