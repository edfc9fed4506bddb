package crossover

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-ott/dsp/filter/biquad"
	"github.com/cwbudde/algo-ott/dsp/filter/design/pass"
)

// Band indexes the outputs of a [ThreeBand] splitter.
type Band int

const (
	Low Band = iota
	Mid
	High

	NumBands = 3
)

// String returns the lowercase band name used in parameter ids.
func (b Band) String() string {
	switch b {
	case Low:
		return "low"
	case Mid:
		return "mid"
	case High:
		return "high"
	default:
		return fmt.Sprintf("band(%d)", int(b))
	}
}

// ThreeBand splits each channel of a signal into low, mid and high bands
// using Linkwitz-Riley filters at two crossover frequencies. Every channel
// owns its own filter state, so channels never share history.
type ThreeBand struct {
	lowFreq  float64
	highFreq float64
	order    int
	sr       float64
	chans    []splitState
}

type splitState struct {
	lowLP  *biquad.Chain // LP(f1) -> low
	lowHP  *biquad.Chain // HP(f1) -> feeds midLP
	midLP  *biquad.Chain // LP(f2) on HP(f1) -> mid
	highHP *biquad.Chain // HP(f2) -> high
}

// NewThreeBand creates a splitter for the given number of channels.
// lowFreq must be below highFreq and both must lie in (0, sampleRate/2).
func NewThreeBand(lowFreq, highFreq float64, order int, sampleRate float64, channels int) (*ThreeBand, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("crossover: channel count must be positive, got %d", channels)
	}
	if !(lowFreq < highFreq) {
		return nil, fmt.Errorf("crossover: frequencies must be strictly ascending, got %.1f after %.1f", highFreq, lowFreq)
	}

	if err := validate(lowFreq, order, sampleRate); err != nil {
		return nil, fmt.Errorf("crossover: low split: %w", err)
	}
	if err := validate(highFreq, order, sampleRate); err != nil {
		return nil, fmt.Errorf("crossover: high split: %w", err)
	}

	tb := &ThreeBand{
		lowFreq:  lowFreq,
		highFreq: highFreq,
		order:    order,
		sr:       sampleRate,
		chans:    make([]splitState, channels),
	}
	lpLow := pass.LinkwitzRileyLP(lowFreq, order, sampleRate)
	hpLow := pass.LinkwitzRileyHP(lowFreq, order, sampleRate)
	lpHigh := pass.LinkwitzRileyLP(highFreq, order, sampleRate)
	hpHigh := pass.LinkwitzRileyHP(highFreq, order, sampleRate)
	for i := range tb.chans {
		tb.chans[i] = splitState{
			lowLP:  biquad.NewChain(lpLow),
			lowHP:  biquad.NewChain(hpLow),
			midLP:  biquad.NewChain(lpHigh),
			highHP: biquad.NewChain(hpHigh),
		}
	}
	return tb, nil
}

// NumChannels returns the number of independently filtered channels.
func (t *ThreeBand) NumChannels() int { return len(t.chans) }

// Frequencies returns the low/mid and mid/high crossover frequencies in Hz.
func (t *ThreeBand) Frequencies() (low, high float64) { return t.lowFreq, t.highFreq }

// Order returns the Linkwitz-Riley order used at both crossovers.
func (t *ThreeBand) Order() int { return t.order }

// SampleRate returns the sample rate in Hz.
func (t *ThreeBand) SampleRate() float64 { return t.sr }

// ProcessSample splits one sample of channel ch.
func (t *ThreeBand) ProcessSample(ch int, x float64) (low, mid, high float64) {
	s := &t.chans[ch]
	low = s.lowLP.ProcessSample(x)
	mid = s.midLP.ProcessSample(s.lowHP.ProcessSample(x))
	high = s.highHP.ProcessSample(x)
	return low, mid, high
}

// ProcessBlock splits input of channel ch into low, mid and high. The
// output slices must be at least len(input) long and must not alias input.
// No allocation takes place.
func (t *ThreeBand) ProcessBlock(ch int, input, low, mid, high []float64) {
	n := len(input)
	if n == 0 {
		return
	}
	low, mid, high = low[:n], mid[:n], high[:n]
	s := &t.chans[ch]

	copy(low, input)
	s.lowLP.ProcessBlock(low)

	copy(mid, input)
	s.lowHP.ProcessBlock(mid)
	s.midLP.ProcessBlock(mid)

	copy(high, input)
	s.highHP.ProcessBlock(high)
}

// Reset clears the filter history of every channel.
func (t *ThreeBand) Reset() {
	for i := range t.chans {
		s := &t.chans[i]
		s.lowLP.Reset()
		s.lowHP.Reset()
		s.midLP.Reset()
		s.highHP.Reset()
	}
}

// Response returns the complex frequency response of each band at freqHz.
func (t *ThreeBand) Response(freqHz float64) [NumBands]complex128 {
	s := &t.chans[0]
	return [NumBands]complex128{
		Low:  s.lowLP.Response(freqHz, t.sr),
		Mid:  s.lowHP.Response(freqHz, t.sr) * s.midLP.Response(freqHz, t.sr),
		High: s.highHP.Response(freqHz, t.sr),
	}
}

// SumResponse returns the complex response of low+mid+high at freqHz.
func (t *ThreeBand) SumResponse(freqHz float64) complex128 {
	r := t.Response(freqHz)
	return r[Low] + r[Mid] + r[High]
}

// SumMagnitudeDB returns the magnitude of [ThreeBand.SumResponse] in dB.
func (t *ThreeBand) SumMagnitudeDB(freqHz float64) float64 {
	return 20 * math.Log10(cmplx.Abs(t.SumResponse(freqHz)))
}

func validate(freq float64, order int, sampleRate float64) error {
	if order <= 0 || order%2 != 0 {
		return fmt.Errorf("crossover: order must be a positive even integer, got %d", order)
	}
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("crossover: sample rate must be positive, got %v", sampleRate)
	}
	if !(freq > 0 && freq < sampleRate/2) {
		return fmt.Errorf("crossover: frequency must be in (0, %v), got %v", sampleRate/2, freq)
	}
	return nil
}
