// Package testutil provides deterministic signals and tolerance helpers
// shared by the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// StereoNoise returns a planar stereo block of two decorrelated noise
// channels.
func StereoNoise(seed int64, amplitude float64, length int) [][]float64 {
	return [][]float64{
		DeterministicNoise(seed, amplitude, length),
		DeterministicNoise(seed+1, amplitude, length),
	}
}

// StereoSine returns a planar stereo block with a sine on each channel; the
// right channel is offset by phase radians.
func StereoSine(freqHz, sampleRate, amplitude, phase float64, length int) [][]float64 {
	left := DeterministicSine(freqHz, sampleRate, amplitude, length)
	right := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range right {
		right[i] = amplitude * math.Sin(step*float64(i)+phase)
	}
	return [][]float64{left, right}
}

// Clone deep-copies a planar block.
func Clone(block [][]float64) [][]float64 {
	out := make([][]float64, len(block))
	for ch := range block {
		out[ch] = append([]float64(nil), block[ch]...)
	}
	return out
}

// InBlocks calls process on consecutive sub-blocks of signal of at most
// blockSize samples, in order, and stops at the first error. The
// sub-blocks alias signal.
func InBlocks(signal [][]float64, blockSize int, process func([][]float64) error) error {
	if len(signal) == 0 {
		return nil
	}
	n := len(signal[0])
	sub := make([][]float64, len(signal))
	for start := 0; start < n; start += blockSize {
		end := min(start+blockSize, n)
		for ch := range signal {
			sub[ch] = signal[ch][start:end]
		}
		if err := process(sub); err != nil {
			return err
		}
	}
	return nil
}

// RMS returns the root-mean-square level of x.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}
