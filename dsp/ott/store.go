package ott

import (
	"fmt"
	"math"
	"sync/atomic"
)

// ParameterProvider supplies the parameter snapshot read at the start of
// every block. Implementations must be safe to call from the audio
// goroutine: no blocking and no allocation.
type ParameterProvider interface {
	Snapshot() Parameters
}

// StaticParameters is a ParameterProvider that always returns itself.
type StaticParameters Parameters

// Snapshot implements ParameterProvider.
func (s StaticParameters) Snapshot() Parameters { return Parameters(s) }

// AtomicParameters is a lock-free parameter store. Each control is an
// independent atomic value: writers never block the audio goroutine and a
// snapshot may mix values from concurrent updates across controls, but
// never within one.
type AtomicParameters struct {
	values [NumParams]atomic.Uint64
}

// NewAtomicParameters returns a store holding the default parameters.
func NewAtomicParameters() *AtomicParameters {
	s := &AtomicParameters{}
	s.Reset()
	return s
}

// Reset restores every control to its default.
func (s *AtomicParameters) Reset() {
	for i := range layout {
		s.values[i].Store(math.Float64bits(layout[i].Default))
	}
}

// Set stores a value for the control with the given id, clamped to the
// control's range.
func (s *AtomicParameters) Set(id string, value float64) error {
	i, ok := indexOf(id)
	if !ok {
		return fmt.Errorf("ott: unknown parameter id: %q", id)
	}
	s.values[i].Store(math.Float64bits(layout[i].clamp(value)))
	return nil
}

// SetBool stores a toggle value.
func (s *AtomicParameters) SetBool(id string, on bool) error {
	return s.Set(id, boolValue(on))
}

// Get returns the stored value of the control with the given id.
func (s *AtomicParameters) Get(id string) (float64, bool) {
	i, ok := indexOf(id)
	if !ok {
		return 0, false
	}
	return math.Float64frombits(s.values[i].Load()), true
}

// Apply stores every control of p, clamped to range.
func (s *AtomicParameters) Apply(p Parameters) {
	for i := range layout {
		s.values[i].Store(math.Float64bits(layout[i].clamp(p.index(i))))
	}
}

// Snapshot implements ParameterProvider.
func (s *AtomicParameters) Snapshot() Parameters {
	var p Parameters
	for i := range s.values {
		p.setIndex(i, math.Float64frombits(s.values[i].Load()))
	}
	return p
}
