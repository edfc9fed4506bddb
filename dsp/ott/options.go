package ott

import (
	"fmt"
	"math"
)

// Crossover frequencies and Linkwitz-Riley order of the band splitter.
const (
	LowCrossoverHz  = 250.0
	HighCrossoverHz = 2000.0
	CrossoverOrder  = 4
)

// Option configures a Processor.
type Option func(*config) error

type config struct {
	gainMatchSmoothingMs float64
}

func defaultConfig() config {
	return config{}
}

// WithGainMatchSmoothing smooths the gain-match factor across blocks with
// the given time constant in milliseconds. 0 (the default) applies each
// block's factor unsmoothed.
func WithGainMatchSmoothing(ms float64) Option {
	return func(cfg *config) error {
		if ms < 0 || math.IsNaN(ms) || math.IsInf(ms, 0) {
			return fmt.Errorf("ott: gain match smoothing must be >= 0 and finite: %v", ms)
		}
		cfg.gainMatchSmoothingMs = ms
		return nil
	}
}
