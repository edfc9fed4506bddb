// Package ott implements a three-band "OTT" style multiband dynamics
// processor.
//
// A [Processor] splits each block at 250 Hz and 2 kHz with LR4 crossovers,
// applies combined upward and downward compression per band, adjusts the
// stereo width of each band, remixes the bands honoring solo flags and
// blends the result with the dry signal under a depth control. Optional gain
// matching scales the wet path to the dry block RMS before blending.
//
// Parameters are read once per block through a [ParameterProvider];
// [AtomicParameters] is a lock-free store that a control goroutine may write
// while the audio goroutine reads snapshots. Per-block meter values are
// published to a [TelemetrySink]; [AtomicTelemetry] stores them for
// lock-free reads from a display goroutine.
//
// The block path performs no allocation, locking or logging once
// [Processor.Prepare] has returned.
package ott
