package ott

import (
	"math"

	"github.com/cwbudde/algo-ott/dsp/core"
	"github.com/cwbudde/algo-ott/dsp/filter/crossover"
)

// BandParams holds the per-band controls.
type BandParams struct {
	ThreshDownDB float64 // downward compression threshold
	RatioDown    float64 // downward ratio, 1 = off
	ThreshUpDB   float64 // upward compression threshold
	RatioUp      float64 // upward ratio, 1 = off
	AttackMs     float64
	ReleaseMs    float64
	GainDB       float64 // band makeup gain
	WidthPercent float64 // 0 = mono, 100 = unchanged, 200 = doubled side
	Solo         bool
}

// Parameters is an immutable snapshot of every processor control, read once
// per block.
type Parameters struct {
	DepthPercent float64
	InputGainDB  float64
	OutputGainDB float64
	TimePercent  float64
	GainMatch    bool
	Bands        [crossover.NumBands]BandParams
}

// DefaultParameters returns the factory defaults of every control.
func DefaultParameters() Parameters {
	var p Parameters
	for i := range layout {
		p.setIndex(i, layout[i].Default)
	}
	return p
}

// AnySolo reports whether at least one band is soloed.
func (p Parameters) AnySolo() bool {
	for i := range p.Bands {
		if p.Bands[i].Solo {
			return true
		}
	}
	return false
}

// Normalize clamps every control to its range. NaN values fall back to the
// control's default. Ratios therefore never drop below 1 and attack and
// release times stay positive.
func (p Parameters) Normalize() Parameters {
	for i := range layout {
		p.setIndex(i, layout[i].clamp(p.index(i)))
	}
	return p
}

// Get returns the value of the control with the given id. Toggles read as
// 0 or 1.
func (p Parameters) Get(id string) (float64, bool) {
	i, ok := indexOf(id)
	if !ok {
		return 0, false
	}
	return p.index(i), true
}

// Set assigns a clamped value to the control with the given id and reports
// whether the id exists.
func (p *Parameters) Set(id string, value float64) bool {
	i, ok := indexOf(id)
	if !ok {
		return false
	}
	p.setIndex(i, layout[i].clamp(value))
	return true
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// index maps a layout position to the corresponding field.
func (p *Parameters) index(i int) float64 {
	if i < numGlobalParams {
		switch i {
		case paramDepth:
			return p.DepthPercent
		case paramInputGain:
			return p.InputGainDB
		case paramOutputGain:
			return p.OutputGainDB
		case paramTime:
			return p.TimePercent
		default:
			return boolValue(p.GainMatch)
		}
	}

	b := &p.Bands[(i-numGlobalParams)/numBandParams]
	switch (i - numGlobalParams) % numBandParams {
	case bandThreshDown:
		return b.ThreshDownDB
	case bandRatioDown:
		return b.RatioDown
	case bandThreshUp:
		return b.ThreshUpDB
	case bandRatioUp:
		return b.RatioUp
	case bandAttack:
		return b.AttackMs
	case bandRelease:
		return b.ReleaseMs
	case bandGain:
		return b.GainDB
	case bandWidth:
		return b.WidthPercent
	default:
		return boolValue(b.Solo)
	}
}

func (p *Parameters) setIndex(i int, v float64) {
	if i < numGlobalParams {
		switch i {
		case paramDepth:
			p.DepthPercent = v
		case paramInputGain:
			p.InputGainDB = v
		case paramOutputGain:
			p.OutputGainDB = v
		case paramTime:
			p.TimePercent = v
		default:
			p.GainMatch = v >= 0.5
		}
		return
	}

	b := &p.Bands[(i-numGlobalParams)/numBandParams]
	switch (i - numGlobalParams) % numBandParams {
	case bandThreshDown:
		b.ThreshDownDB = v
	case bandRatioDown:
		b.RatioDown = v
	case bandThreshUp:
		b.ThreshUpDB = v
	case bandRatioUp:
		b.RatioUp = v
	case bandAttack:
		b.AttackMs = v
	case bandRelease:
		b.ReleaseMs = v
	case bandGain:
		b.GainDB = v
	case bandWidth:
		b.WidthPercent = v
	default:
		b.Solo = v >= 0.5
	}
}

func (s ParamSpec) clamp(v float64) float64 {
	if math.IsNaN(v) {
		return s.Default
	}
	if s.Toggle {
		return boolValue(v >= 0.5)
	}
	return core.Clamp(v, s.Min, s.Max)
}
