package response

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
)

const minFFTSize = 16

// Analyzer computes magnitude spectra of impulse responses.
type Analyzer struct {
	sampleRate float64
	minSize    int
}

// NewAnalyzer creates an analyzer for the given sample rate.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{sampleRate: sampleRate, minSize: minFFTSize}
}

// WithMinSize returns a copy of the analyzer that zero-pads to at least n
// points, giving a finer frequency grid for short impulse responses.
func (a *Analyzer) WithMinSize(n int) *Analyzer {
	cp := *a
	cp.minSize = max(n, minFFTSize)
	return &cp
}

// SampleRate returns the configured sample rate in Hz.
func (a *Analyzer) SampleRate() float64 { return a.sampleRate }

// Spectrum holds the non-negative frequency bins of a transformed impulse
// response.
type Spectrum struct {
	SampleRate float64
	FFTSize    int
	Bins       []complex128 // bins 0..FFTSize/2
}

// Deviation summarizes how far a magnitude response departs from 0 dB.
type Deviation struct {
	MinDB    float64
	MaxDB    float64
	MaxAbsDB float64
	WorstHz  float64
}

// Analyze transforms ir and returns its spectrum.
func (a *Analyzer) Analyze(ir []float64) (*Spectrum, error) {
	if a.sampleRate <= 0 || math.IsNaN(a.sampleRate) || math.IsInf(a.sampleRate, 0) {
		return nil, fmt.Errorf("response: sample rate must be positive and finite: %v", a.sampleRate)
	}
	if len(ir) == 0 {
		return nil, fmt.Errorf("response: impulse response must not be empty")
	}

	fftSize := nextPowerOf2(max(len(ir), a.minSize))

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("response: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, fftSize)
	for i, v := range ir {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("response: forward FFT failed: %w", err)
	}

	return &Spectrum{
		SampleRate: a.sampleRate,
		FFTSize:    fftSize,
		Bins:       out[:fftSize/2+1],
	}, nil
}

// BinHz returns the frequency spacing of the bins.
func (s *Spectrum) BinHz() float64 { return s.SampleRate / float64(s.FFTSize) }

// Freq returns the center frequency of bin i.
func (s *Spectrum) Freq(i int) float64 { return float64(i) * s.BinHz() }

// MagnitudeDB returns the magnitude of bin i in dB.
func (s *Spectrum) MagnitudeDB(i int) float64 {
	return 20 * math.Log10(cmplx.Abs(s.Bins[i]))
}

// MagnitudeAt returns the magnitude in dB of the bin nearest to freqHz.
func (s *Spectrum) MagnitudeAt(freqHz float64) float64 {
	i := int(math.Round(freqHz / s.BinHz()))
	i = min(max(i, 0), len(s.Bins)-1)
	return s.MagnitudeDB(i)
}

// Deviation returns the extreme magnitudes of the bins inside
// [lowHz, highHz]. DC is skipped when lowHz is 0.
func (s *Spectrum) Deviation(lowHz, highHz float64) Deviation {
	d := Deviation{MinDB: math.Inf(1), MaxDB: math.Inf(-1)}

	binHz := s.BinHz()
	first := max(int(math.Ceil(lowHz/binHz)), 1)
	last := min(int(math.Floor(highHz/binHz)), len(s.Bins)-1)

	for i := first; i <= last; i++ {
		db := s.MagnitudeDB(i)
		d.MinDB = math.Min(d.MinDB, db)
		d.MaxDB = math.Max(d.MaxDB, db)
		if abs := math.Abs(db); abs > d.MaxAbsDB {
			d.MaxAbsDB = abs
			d.WorstHz = s.Freq(i)
		}
	}

	if first > last {
		d.MinDB, d.MaxDB = 0, 0
	}
	return d
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
