package buffer

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// MaxChannels is the largest channel count a Block supports (stereo).
const MaxChannels = 2

// Block is a planar multi-channel sample buffer with a fixed capacity.
// Channel slices returned by [Block.Channel] and [Block.Channels] are views
// into the backing arrays and are only valid until the next Resize.
type Block struct {
	data     [MaxChannels][]float64
	views    [MaxChannels][]float64
	channels int
	length   int
	capacity int
}

// New returns a zero-filled Block with numChannels channels and room for
// capacity samples per channel. The initial length equals capacity.
func New(numChannels, capacity int) (*Block, error) {
	if numChannels < 1 || numChannels > MaxChannels {
		return nil, fmt.Errorf("buffer: channel count must be in [1, %d]: %d", MaxChannels, numChannels)
	}
	if capacity < 0 {
		return nil, fmt.Errorf("buffer: capacity must be >= 0: %d", capacity)
	}

	b := &Block{capacity: capacity}
	for ch := range b.data {
		b.data[ch] = make([]float64, capacity)
	}
	b.setShape(numChannels, capacity)

	return b, nil
}

// NumChannels returns the active channel count.
func (b *Block) NumChannels() int { return b.channels }

// Len returns the active number of samples per channel.
func (b *Block) Len() int { return b.length }

// Cap returns the per-channel capacity fixed at construction.
func (b *Block) Cap() int { return b.capacity }

// Channel returns the active samples of channel ch.
func (b *Block) Channel(ch int) []float64 { return b.views[ch] }

// Channels returns the active channel views. The returned slice aliases
// internal storage; do not append to it.
func (b *Block) Channels() [][]float64 { return b.views[:b.channels] }

// Resize sets the active shape without allocating. It reports false and
// leaves the block unchanged if the shape exceeds the block's capacity.
func (b *Block) Resize(numChannels, n int) bool {
	if numChannels < 1 || numChannels > MaxChannels || n < 0 || n > b.capacity {
		return false
	}
	b.setShape(numChannels, n)
	return true
}

func (b *Block) setShape(numChannels, n int) {
	b.channels = numChannels
	b.length = n
	for ch := range b.views {
		b.views[ch] = b.data[ch][:n]
	}
}

// CopyFrom resizes the block to the shape of src and copies its samples.
// It reports false if src does not fit.
func (b *Block) CopyFrom(src [][]float64) bool {
	if len(src) == 0 || !b.Resize(len(src), len(src[0])) {
		return false
	}
	for ch := range src {
		copy(b.views[ch], src[ch])
	}
	return true
}

// CopyTo writes the active samples into dst channel by channel.
func (b *Block) CopyTo(dst [][]float64) {
	for ch := 0; ch < b.channels && ch < len(dst); ch++ {
		copy(dst[ch], b.views[ch])
	}
}

// AddFrom accumulates src into the block sample by sample. Both blocks
// must have the same shape.
func (b *Block) AddFrom(src *Block) {
	for ch := 0; ch < b.channels; ch++ {
		vecmath.AddBlockInPlace(b.views[ch], src.views[ch])
	}
}

// Clear zeroes the active samples.
func (b *Block) Clear() {
	for ch := 0; ch < b.channels; ch++ {
		clear(b.views[ch])
	}
}

// Scale multiplies every active sample by gain.
func (b *Block) Scale(gain float64) {
	Scale(b.Channels(), gain)
}

// RMS returns the largest per-channel RMS level of the active samples.
func (b *Block) RMS() float64 {
	return MaxRMS(b.Channels())
}

// Scale multiplies every sample of every channel by gain in place.
// A gain of exactly 1 is a no-op.
func Scale(channels [][]float64, gain float64) {
	if gain == 1 {
		return
	}
	for _, ch := range channels {
		vecmath.ScaleBlockInPlace(ch, gain)
	}
}

// ChannelRMS returns the root-mean-square level of x, or 0 for an empty slice.
func ChannelRMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return math.Sqrt(vecmath.DotProduct(x, x) / float64(len(x)))
}

// MaxRMS returns the channel-max of per-channel RMS levels. Loud material
// on either side therefore determines the block level.
func MaxRMS(channels [][]float64) float64 {
	level := 0.0
	for _, ch := range channels {
		if r := ChannelRMS(ch); r > level {
			level = r
		}
	}
	return level
}
