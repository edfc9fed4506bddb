package spatial

import (
	"fmt"
	"math"
)

const (
	defaultWidenerWidth = 1.0

	minWidenerWidth = 0.0
	maxWidenerWidth = 2.0
)

// StereoWidenerOption mutates stereo widener construction parameters.
type StereoWidenerOption func(*stereoWidenerConfig) error

type stereoWidenerConfig struct {
	width float64
}

func defaultStereoWidenerConfig() stereoWidenerConfig {
	return stereoWidenerConfig{width: defaultWidenerWidth}
}

// WithWidth sets the stereo width factor.
// 0 = mono, 1 = unchanged, 2 = side signal doubled.
func WithWidth(width float64) StereoWidenerOption {
	return func(cfg *stereoWidenerConfig) error {
		if err := validateWidth(width); err != nil {
			return err
		}

		cfg.width = width

		return nil
	}
}

func validateWidth(width float64) error {
	if width < minWidenerWidth || width > maxWidenerWidth ||
		math.IsNaN(width) || math.IsInf(width, 0) {
		return fmt.Errorf("stereo widener width must be in [%g, %g]: %f",
			minWidenerWidth, maxWidenerWidth, width)
	}
	return nil
}

// WidthFromPercent maps a 0–200 % width parameter to a width factor,
// clamped to the valid range. NaN maps to unity width.
func WidthFromPercent(percent float64) float64 {
	switch {
	case math.IsNaN(percent):
		return defaultWidenerWidth
	case percent < 0:
		return minWidenerWidth
	case percent > 100*maxWidenerWidth:
		return maxWidenerWidth
	}
	return percent / 100
}

// StereoWidener adjusts the width of a stereo image using mid/side processing.
//
// The processor encodes left/right channels into mid (sum) and side (difference)
// components, scales the side signal by a configurable width factor, and decodes
// back to left/right. A width of 1 leaves the signal unchanged, 0 collapses to
// mono, and 2 doubles the left/right difference.
//
// The widener is stateless, real-time safe, and not thread-safe.
type StereoWidener struct {
	width float64
}

// NewStereoWidener creates a stereo widener with unity width and optional
// overrides.
func NewStereoWidener(opts ...StereoWidenerOption) (*StereoWidener, error) {
	cfg := defaultStereoWidenerConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	return &StereoWidener{width: cfg.width}, nil
}

// ProcessStereo processes a single stereo sample pair and returns the
// widened left and right outputs.
func (w *StereoWidener) ProcessStereo(left, right float64) (float64, float64) {
	mid := (left + right) * 0.5
	side := (left - right) * 0.5 * w.width

	return mid + side, mid - side
}

// ProcessChannels widens a planar block in place. Blocks with fewer than two
// channels are left untouched; only the first two channels are processed.
// Channels shorter than the first are processed up to their common length.
func (w *StereoWidener) ProcessChannels(channels [][]float64) {
	if len(channels) < 2 || w.width == 1 {
		return
	}

	left, right := channels[0], channels[1]
	n := min(len(left), len(right))
	left, right = left[:n], right[:n]
	for i := range left {
		left[i], right[i] = w.ProcessStereo(left[i], right[i])
	}
}

// Width returns the current stereo width factor.
func (w *StereoWidener) Width() float64 { return w.width }

// SetWidth sets the stereo width factor.
// 0 = mono, 1 = unchanged, 2 = side signal doubled.
func (w *StereoWidener) SetWidth(width float64) error {
	if err := validateWidth(width); err != nil {
		return err
	}

	w.width = width

	return nil
}
