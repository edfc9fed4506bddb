package ott

import (
	"math"

	"github.com/cwbudde/algo-ott/dsp/buffer"
	"github.com/cwbudde/algo-ott/dsp/core"
	"github.com/cwbudde/algo-ott/dsp/filter/crossover"
)

// activeBands returns which bands reach the mix: the soloed ones when any
// solo is set, all of them otherwise.
func activeBands(solo [crossover.NumBands]bool) [crossover.NumBands]bool {
	if solo == [crossover.NumBands]bool{} {
		return [crossover.NumBands]bool{true, true, true}
	}
	return solo
}

// MixBands overwrites dst with the sum of the active bands. No gain is
// applied for the number of bands summed. dst and every band must share
// one shape.
func MixBands(dst *buffer.Block, bands [crossover.NumBands]*buffer.Block, solo [crossover.NumBands]bool) {
	dst.Clear()
	for b, on := range activeBands(solo) {
		if on {
			dst.AddFrom(bands[b])
		}
	}
}

// GainMatchGain returns the factor that brings a wet block at wetRMS to the
// dry level dryRMS. It is 1 unless both levels exceed [core.LevelFloor].
func GainMatchGain(dryRMS, wetRMS float64) float64 {
	if dryRMS > core.LevelFloor && wetRMS > core.LevelFloor {
		return dryRMS / wetRMS
	}
	return 1
}

// gainMatcher applies block gain matching, optionally smoothing the factor
// across blocks with a one-pole filter.
type gainMatcher struct {
	smoothingMs float64
	sampleRate  float64
	gain        float64
	primed      bool
}

func (g *gainMatcher) reset(sampleRate float64) {
	g.sampleRate = sampleRate
	g.gain = 1
	g.primed = false
}

// next returns the factor for a block of n samples.
func (g *gainMatcher) next(dryRMS, wetRMS float64, n int) float64 {
	target := GainMatchGain(dryRMS, wetRMS)
	if g.smoothingMs <= 0 || !g.primed {
		g.gain = target
		g.primed = true
		return g.gain
	}

	c := math.Exp(-float64(n) / (g.smoothingMs * 0.001 * g.sampleRate))
	g.gain = c*g.gain + (1-c)*target
	return g.gain
}

// Blend writes dry*(1-depth) + wet*depth into wet. depth is clamped to
// [0, 1]. dry is used as scratch and is scaled in place.
func Blend(wet, dry *buffer.Block, depth float64) {
	depth = core.Clamp(depth, 0, 1)
	switch depth {
	case 1:
		return
	case 0:
		wet.CopyFrom(dry.Channels())
		return
	}

	wet.Scale(depth)
	dry.Scale(1 - depth)
	wet.AddFrom(dry)
}
