// Package biquad provides the second-order IIR runtime used by the
// crossover network.
//
// A [Section] implements Direct Form II Transposed processing for one
// second-order section defined by [Coefficients]. Sections are cascaded by
// [Chain] to form higher-order filters such as the Linkwitz-Riley stages in
// dsp/filter/crossover. Coefficient design lives in dsp/filter/design/pass.
package biquad
