package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ott/dsp/core"
)

// BandParams configures one band of the OTT dynamics stage.
type BandParams struct {
	ThreshDownDB float64
	RatioDown    float64
	ThreshUpDB   float64
	RatioUp      float64
	AttackMs     float64
	ReleaseMs    float64
	MakeupDB     float64
}

// BandProcessor applies the OTT gain law to one frequency band. Each channel
// owns an envelope; the gain law and makeup gain are shared.
type BandProcessor struct {
	sampleRate float64
	envs       []Envelope
	computer   GainComputer
	makeupLin  float64

	attackMs  float64
	releaseMs float64
}

// NewBandProcessor creates a band processor for the given sample rate and
// channel count with unity parameters (ratios 1, no makeup).
func NewBandProcessor(sampleRate float64, channels int) (*BandProcessor, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("dynamics: sample rate must be positive and finite: %v", sampleRate)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("dynamics: channel count must be positive: %d", channels)
	}

	b := &BandProcessor{
		sampleRate: sampleRate,
		envs:       make([]Envelope, channels),
		makeupLin:  1,
		attackMs:   math.NaN(),
		releaseMs:  math.NaN(),
	}
	b.SetParams(BandParams{RatioDown: 1, RatioUp: 1, AttackMs: 1, ReleaseMs: 100})
	return b, nil
}

// SetParams updates the band parameters. Envelope coefficients are only
// recomputed when attack or release change; envelope state is kept.
func (b *BandProcessor) SetParams(p BandParams) {
	b.computer = GainComputer{
		ThreshDownDB: p.ThreshDownDB,
		RatioDown:    unityRatio(p.RatioDown),
		ThreshUpDB:   p.ThreshUpDB,
		RatioUp:      unityRatio(p.RatioUp),
	}
	b.makeupLin = core.DBToLinear(p.MakeupDB)

	if p.AttackMs != b.attackMs || p.ReleaseMs != b.releaseMs {
		b.attackMs, b.releaseMs = p.AttackMs, p.ReleaseMs
		for i := range b.envs {
			b.envs[i].SetTimes(p.AttackMs, p.ReleaseMs, b.sampleRate)
		}
	}
}

// GainComputer returns the active gain law with clamped ratios.
func (b *BandProcessor) GainComputer() GainComputer { return b.computer }

// NumChannels returns the number of channel envelopes.
func (b *BandProcessor) NumChannels() int { return len(b.envs) }

// SampleRate returns the sample rate in Hz.
func (b *BandProcessor) SampleRate() float64 { return b.sampleRate }

// Envelope returns the current envelope value of channel ch.
func (b *BandProcessor) Envelope(ch int) float64 { return b.envs[ch].Value() }

// ProcessSample processes one sample of channel ch.
func (b *BandProcessor) ProcessSample(ch int, x float64) float64 {
	env := b.envs[ch].Process(x)
	return x * b.computer.Gain(env) * b.makeupLin
}

// ProcessBlock processes buf of channel ch in place.
func (b *BandProcessor) ProcessBlock(ch int, buf []float64) {
	e := &b.envs[ch]
	gc := b.computer
	makeup := b.makeupLin

	for i, x := range buf {
		buf[i] = x * gc.Gain(e.Process(x)) * makeup
	}
}

// Reset clears all channel envelopes.
func (b *BandProcessor) Reset() {
	for i := range b.envs {
		b.envs[i].Reset()
	}
}
