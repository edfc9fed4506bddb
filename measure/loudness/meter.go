// Package loudness implements ITU-R BS.1770 / EBU R128 loudness metering
// of planar audio blocks.
package loudness

import (
	"math"

	"github.com/cwbudde/algo-ott/dsp/core"
	"github.com/cwbudde/algo-ott/dsp/filter/biquad"
)

const (
	momentaryDuration = 0.4
	shortTermDuration = 3.0
	gateStepDuration  = 0.1 // 75% overlap of momentary blocks

	absThreshold = -70.0
	relThreshold = -10.0

	// Floor is reported for zero power.
	Floor = -120.0
)

// Meter measures momentary, short-term and gated integrated loudness
// together with the sample peak. Integrated loudness keeps one value per
// 100 ms, so a Meter is meant for offline analysis rather than the audio
// goroutine.
type Meter struct {
	cfg MeterConfig

	weighting []*biquad.Chain

	// ring holds squared K-weighted samples of the last short-term window.
	ring      [][]float64
	pos       int
	momSums   []float64
	shortSums []float64

	momWindow   int
	shortWindow int
	step        int
	total       int64

	blocks []float64
	peak   float64
}

// NewMeter creates a loudness meter.
func NewMeter(opts ...MeterOption) (*Meter, error) {
	cfg := ApplyMeterOptions(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Meter{
		cfg:         cfg,
		weighting:   make([]*biquad.Chain, cfg.Channels),
		ring:        make([][]float64, cfg.Channels),
		momSums:     make([]float64, cfg.Channels),
		shortSums:   make([]float64, cfg.Channels),
		momWindow:   int(math.Round(momentaryDuration * cfg.SampleRate)),
		shortWindow: int(math.Round(shortTermDuration * cfg.SampleRate)),
		step:        max(int(math.Round(gateStepDuration*cfg.SampleRate)), 1),
	}
	coeffs := KWeighting(cfg.SampleRate)
	for ch := range cfg.Channels {
		m.weighting[ch] = biquad.NewChain(coeffs)
		m.ring[ch] = make([]float64, m.shortWindow)
	}
	return m, nil
}

// Channels returns the configured channel count.
func (m *Meter) Channels() int { return m.cfg.Channels }

// SampleRate returns the configured sample rate.
func (m *Meter) SampleRate() float64 { return m.cfg.SampleRate }

// Reset clears filter, window, gating and peak state.
func (m *Meter) Reset() {
	for ch := range m.cfg.Channels {
		m.weighting[ch].Reset()
		clear(m.ring[ch])
		m.momSums[ch] = 0
		m.shortSums[ch] = 0
	}
	m.pos = 0
	m.total = 0
	m.blocks = m.blocks[:0]
	m.peak = 0
}

// ProcessBlock meters a planar block. Channels beyond the configured count
// are ignored; missing channels count as silence. The block is not
// modified.
func (m *Meter) ProcessBlock(block [][]float64) {
	n := 0
	for _, ch := range block {
		n = max(n, len(ch))
	}
	for i := range n {
		m.processFrame(block, i)
	}
}

func (m *Meter) processFrame(block [][]float64, i int) {
	old := (m.pos - m.momWindow + m.shortWindow) % m.shortWindow
	for ch := range m.cfg.Channels {
		x := 0.0
		if ch < len(block) && i < len(block[ch]) {
			x = block[ch][i]
		}
		m.peak = math.Max(m.peak, math.Abs(x))

		y := m.weighting[ch].ProcessSample(x)
		sq := y * y

		m.momSums[ch] = math.Max(m.momSums[ch]+sq-m.ring[ch][old], 0)
		m.shortSums[ch] = math.Max(m.shortSums[ch]+sq-m.ring[ch][m.pos], 0)
		m.ring[ch][m.pos] = sq
	}
	m.pos = (m.pos + 1) % m.shortWindow
	m.total++

	if m.total >= int64(m.momWindow) && (m.total-int64(m.momWindow))%int64(m.step) == 0 {
		m.blocks = append(m.blocks, m.power(m.momSums, m.momWindow))
	}
}

func (m *Meter) power(sums []float64, window int) float64 {
	p := 0.0
	for _, s := range sums {
		p += s / float64(window)
	}
	return p
}

// Momentary returns the loudness of the last 400 ms in LUFS.
func (m *Meter) Momentary() float64 {
	return toLUFS(m.power(m.momSums, m.momWindow))
}

// ShortTerm returns the loudness of the last 3 s in LUFS.
func (m *Meter) ShortTerm() float64 {
	return toLUFS(m.power(m.shortSums, m.shortWindow))
}

// Integrated returns the gated loudness since the last Reset in LUFS, or
// -Inf when no 400 ms block passed the gates.
func (m *Meter) Integrated() float64 {
	var absSum float64
	absCount := 0
	for _, b := range m.blocks {
		if toLUFS(b) > absThreshold {
			absSum += b
			absCount++
		}
	}
	if absCount == 0 {
		return math.Inf(-1)
	}

	gate := toLUFS(absSum/float64(absCount)) + relThreshold
	var relSum float64
	relCount := 0
	for _, b := range m.blocks {
		if l := toLUFS(b); l > absThreshold && l > gate {
			relSum += b
			relCount++
		}
	}
	if relCount == 0 {
		return math.Inf(-1)
	}
	return toLUFS(relSum / float64(relCount))
}

// Peak returns the largest absolute sample seen since Reset.
func (m *Meter) Peak() float64 { return m.peak }

// PeakDB returns Peak in dBFS.
func (m *Meter) PeakDB() float64 { return core.LinearToDB(m.peak) }

func toLUFS(meanSquare float64) float64 {
	if meanSquare <= 0 {
		return Floor
	}
	return -0.691 + 10*math.Log10(meanSquare)
}
