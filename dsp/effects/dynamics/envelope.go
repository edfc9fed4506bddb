package dynamics

import (
	"math"

	"github.com/cwbudde/algo-ott/dsp/core"
)

// MinTimeMs is the smallest attack or release time used for coefficient
// computation. Shorter, zero, negative or NaN times are raised to it.
const MinTimeMs = 0.01

// EnvelopeCoefficient converts a time constant in milliseconds into the
// one-pole smoothing coefficient exp(-1 / (ms * 0.001 * sampleRate)).
// A non-positive sample rate yields 0 (no smoothing).
func EnvelopeCoefficient(timeMs, sampleRate float64) float64 {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return 0
	}
	if !(timeMs > MinTimeMs) {
		timeMs = MinTimeMs
	}
	return mathExp(-1 / (timeMs * 0.001 * sampleRate))
}

// UpdateEnvelope advances envelope state by one input sample. The attack
// coefficient applies while |input| exceeds the state, the release
// coefficient otherwise.
func UpdateEnvelope(state, input, attackMs, releaseMs, sampleRate float64) float64 {
	var e Envelope
	e.SetTimes(attackMs, releaseMs, sampleRate)
	e.value = state
	return e.Process(input)
}

// Envelope is an attack/release peak follower with cached coefficients.
// The zero value passes |x| through unsmoothed until SetTimes is called.
type Envelope struct {
	attackCoeff  float64
	releaseCoeff float64
	value        float64
}

// SetTimes recomputes the attack and release coefficients.
func (e *Envelope) SetTimes(attackMs, releaseMs, sampleRate float64) {
	e.attackCoeff = EnvelopeCoefficient(attackMs, sampleRate)
	e.releaseCoeff = EnvelopeCoefficient(releaseMs, sampleRate)
}

// Coefficients returns the cached attack and release coefficients.
func (e *Envelope) Coefficients() (attack, release float64) {
	return e.attackCoeff, e.releaseCoeff
}

// Process feeds one sample and returns the updated envelope value.
func (e *Envelope) Process(x float64) float64 {
	level := math.Abs(x)

	coeff := e.releaseCoeff
	if level > e.value {
		coeff = e.attackCoeff
	}

	e.value = core.FlushDenormals(coeff*e.value + (1-coeff)*level)
	return e.value
}

// Value returns the current envelope value.
func (e *Envelope) Value() float64 { return e.value }

// Reset clears the envelope state to zero.
func (e *Envelope) Reset() { e.value = 0 }
