// Package response measures the magnitude response of a linear system from
// its impulse response.
//
// The impulse response is zero-padded to a power of two and transformed
// with github.com/MeKo-Christian/algo-fft. [Spectrum.Deviation] reports the
// largest departure from 0 dB inside a frequency range, which is how the
// band-sum flatness of a crossover is verified.
//
// # Usage
//
//	analyzer := response.NewAnalyzer(48000)
//	spec, err := analyzer.Analyze(impulseResponse)
//	dev := spec.Deviation(20, 20000)
//	fmt.Printf("flat within %.2f dB\n", dev.MaxAbsDB)
package response
