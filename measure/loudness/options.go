package loudness

import (
	"fmt"

	"github.com/cwbudde/algo-ott/dsp/core"
)

// MeterConfig defines configuration for the loudness meter.
type MeterConfig struct {
	SampleRate float64
	Channels   int
}

// MeterOption mutates a MeterConfig.
type MeterOption func(*MeterConfig)

// DefaultMeterConfig returns a stereo 48 kHz configuration.
func DefaultMeterConfig() MeterConfig {
	return MeterConfig{
		SampleRate: core.DefaultProcessorConfig().SampleRate,
		Channels:   2,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) MeterOption {
	return func(cfg *MeterConfig) {
		cfg.SampleRate = sampleRate
	}
}

// WithChannels sets the number of channels (1 for mono, 2 for stereo).
func WithChannels(channels int) MeterOption {
	return func(cfg *MeterConfig) {
		cfg.Channels = channels
	}
}

// ApplyMeterOptions applies zero or more options to the default config.
func ApplyMeterOptions(opts ...MeterOption) MeterConfig {
	cfg := DefaultMeterConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Validate reports whether the config can be metered. The K-weighting
// shelf sits near 1.7 kHz, so rates below 8 kHz are rejected.
func (c MeterConfig) Validate() error {
	pc := core.ProcessorConfig{SampleRate: c.SampleRate, MaxBlockSize: 1}
	if err := pc.Validate(); err != nil {
		return fmt.Errorf("loudness: %w", err)
	}
	if c.SampleRate < 8000 {
		return fmt.Errorf("loudness: sample rate must be at least 8000 Hz: %v", c.SampleRate)
	}
	if c.Channels < 1 {
		return fmt.Errorf("loudness: channel count must be positive: %d", c.Channels)
	}
	return nil
}
