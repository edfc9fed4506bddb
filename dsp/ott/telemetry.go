package ott

import (
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-ott/dsp/core"
	"github.com/cwbudde/algo-ott/dsp/filter/crossover"
)

// Telemetry is the set of meter values published once per block.
type Telemetry struct {
	InputLevelDB     float64 // block level before input gain
	OutputLevelDB    float64 // block level after output gain
	DepthPercent     float64
	TimePercent      float64
	UpwardPercent    float64 // low band ratio-up mapped to 0–100 %
	DownwardPercent  float64 // high band ratio-up mapped to 0–100 %
	GainMatchEnabled bool
	BandLevels       [crossover.NumBands]float64 // linear RMS after width, before mixing
}

// TelemetrySink receives telemetry from the audio goroutine. Publish must
// not block or allocate.
type TelemetrySink interface {
	Publish(t Telemetry)
}

// DiscardTelemetry is a TelemetrySink that drops every update.
type DiscardTelemetry struct{}

// Publish implements TelemetrySink.
func (DiscardTelemetry) Publish(Telemetry) {}

// RatioToPercent maps a ratio in [1, 20] to [0, 100] %.
func RatioToPercent(ratio float64) float64 {
	return core.Clamp((ratio-1)/19*100, 0, 100)
}

// AtomicTelemetry stores the latest telemetry with one atomic value per
// field. Readers may observe fields from different blocks.
type AtomicTelemetry struct {
	inputLevel  atomic.Uint64
	outputLevel atomic.Uint64
	depth       atomic.Uint64
	time        atomic.Uint64
	upward      atomic.Uint64
	downward    atomic.Uint64
	gainMatch   atomic.Bool
	bands       [crossover.NumBands]atomic.Uint64
}

// NewAtomicTelemetry returns a store whose levels start at silence.
func NewAtomicTelemetry() *AtomicTelemetry {
	a := &AtomicTelemetry{}
	silence := core.LevelDB(0)
	storeFloat(&a.inputLevel, silence)
	storeFloat(&a.outputLevel, silence)
	return a
}

func storeFloat(v *atomic.Uint64, f float64) { v.Store(math.Float64bits(f)) }

func loadFloat(v *atomic.Uint64) float64 { return math.Float64frombits(v.Load()) }

// Publish implements TelemetrySink.
func (a *AtomicTelemetry) Publish(t Telemetry) {
	storeFloat(&a.inputLevel, t.InputLevelDB)
	for i := range a.bands {
		storeFloat(&a.bands[i], t.BandLevels[i])
	}
	storeFloat(&a.outputLevel, t.OutputLevelDB)
	storeFloat(&a.depth, t.DepthPercent)
	storeFloat(&a.time, t.TimePercent)
	storeFloat(&a.upward, t.UpwardPercent)
	storeFloat(&a.downward, t.DownwardPercent)
	a.gainMatch.Store(t.GainMatchEnabled)
}

// Load returns the stored fields. The result is not a coherent snapshot of
// one block.
func (a *AtomicTelemetry) Load() Telemetry {
	t := Telemetry{
		InputLevelDB:     loadFloat(&a.inputLevel),
		OutputLevelDB:    loadFloat(&a.outputLevel),
		DepthPercent:     loadFloat(&a.depth),
		TimePercent:      loadFloat(&a.time),
		UpwardPercent:    loadFloat(&a.upward),
		DownwardPercent:  loadFloat(&a.downward),
		GainMatchEnabled: a.gainMatch.Load(),
	}
	for i := range a.bands {
		t.BandLevels[i] = loadFloat(&a.bands[i])
	}
	return t
}

// InputLevelDB returns the latest input level in dB.
func (a *AtomicTelemetry) InputLevelDB() float64 { return loadFloat(&a.inputLevel) }

// OutputLevelDB returns the latest output level in dB.
func (a *AtomicTelemetry) OutputLevelDB() float64 { return loadFloat(&a.outputLevel) }

// BandLevel returns the latest linear RMS level of band b.
func (a *AtomicTelemetry) BandLevel(b crossover.Band) float64 { return loadFloat(&a.bands[b]) }
