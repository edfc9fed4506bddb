// Package wavio reads and writes PCM WAV files as planar float64 audio.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Audio is planar PCM audio normalized to [-1, 1).
type Audio struct {
	SampleRate int
	BitDepth   int
	Channels   [][]float64
}

// ErrInvalidFile is returned when the input is not a readable WAV stream.
var ErrInvalidFile = errors.New("wavio: not a valid WAV file")

// NumChannels returns the channel count.
func (a *Audio) NumChannels() int { return len(a.Channels) }

// NumFrames returns the number of samples per channel.
func (a *Audio) NumFrames() int {
	if len(a.Channels) == 0 {
		return 0
	}
	return len(a.Channels[0])
}

// Duration returns the length in seconds.
func (a *Audio) Duration() float64 {
	if a.SampleRate <= 0 {
		return 0
	}
	return float64(a.NumFrames()) / float64(a.SampleRate)
}

func validBitDepth(bits int) bool {
	return bits == 16 || bits == 24 || bits == 32
}

func fullScale(bits int) float64 {
	return float64(int64(1) << (bits - 1))
}

// Decode reads a complete integer PCM WAV stream.
func Decode(r io.ReadSeeker) (*Audio, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidFile
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wavio: decode: %w", err)
	}

	bits := int(dec.BitDepth)
	if !validBitDepth(bits) {
		return nil, fmt.Errorf("wavio: unsupported bit depth: %d", bits)
	}
	numCh := buf.Format.NumChannels
	if numCh < 1 {
		return nil, fmt.Errorf("wavio: invalid channel count: %d", numCh)
	}

	frames := len(buf.Data) / numCh
	a := &Audio{
		SampleRate: buf.Format.SampleRate,
		BitDepth:   bits,
		Channels:   make([][]float64, numCh),
	}
	for ch := range a.Channels {
		a.Channels[ch] = make([]float64, frames)
	}

	scale := 1 / fullScale(bits)
	for i := range frames {
		for ch := range numCh {
			a.Channels[ch][i] = float64(buf.Data[i*numCh+ch]) * scale
		}
	}
	return a, nil
}

// ReadFile decodes the WAV file at path.
func ReadFile(path string) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	a, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// Encode writes a as integer PCM with the given bit depth. Samples outside
// [-1, 1) are clipped.
func Encode(w io.WriteSeeker, a *Audio, bitDepth int) error {
	if !validBitDepth(bitDepth) {
		return fmt.Errorf("wavio: unsupported bit depth: %d", bitDepth)
	}
	if a.SampleRate <= 0 {
		return fmt.Errorf("wavio: sample rate must be positive: %d", a.SampleRate)
	}
	numCh := a.NumChannels()
	if numCh < 1 {
		return errors.New("wavio: no channels to encode")
	}
	frames := a.NumFrames()
	for ch, data := range a.Channels {
		if len(data) != frames {
			return fmt.Errorf("wavio: channel %d has %d frames, want %d", ch, len(data), frames)
		}
	}

	full := fullScale(bitDepth)
	maxInt := full - 1
	data := make([]int, frames*numCh)
	for i := range frames {
		for ch := range numCh {
			v := math.Round(a.Channels[ch][i] * full)
			data[i*numCh+ch] = int(math.Max(-full, math.Min(maxInt, v)))
		}
	}

	enc := wav.NewEncoder(w, a.SampleRate, bitDepth, numCh, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numCh, SampleRate: a.SampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavio: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavio: encode: %w", err)
	}
	return nil
}

// WriteFile encodes a into a new file at path.
func WriteFile(path string, a *Audio, bitDepth int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Encode(f, a, bitDepth)
}
