package wavio

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-ott/internal/testutil"
)

func TestRoundTrip(t *testing.T) {
	src := &Audio{
		SampleRate: 44100,
		Channels:   testutil.StereoSine(440, 44100, 0.5, 0.7, 1000),
	}

	for _, bits := range []int{16, 24, 32} {
		path := filepath.Join(t.TempDir(), "out.wav")
		if err := WriteFile(path, src, bits); err != nil {
			t.Fatalf("%d bit: write: %v", bits, err)
		}
		got, err := ReadFile(path)
		if err != nil {
			t.Fatalf("%d bit: read: %v", bits, err)
		}
		if got.SampleRate != 44100 || got.BitDepth != bits || got.NumChannels() != 2 || got.NumFrames() != 1000 {
			t.Fatalf("%d bit: format = %d Hz %d bit %d ch %d frames", bits, got.SampleRate, got.BitDepth, got.NumChannels(), got.NumFrames())
		}
		eps := 1 / fullScale(bits)
		testutil.RequireBlocksNearlyEqual(t, got.Channels, src.Channels, eps)
	}
}

func TestEncodeClips(t *testing.T) {
	src := &Audio{SampleRate: 8000, Channels: [][]float64{{2, -2, 1, -1}}}
	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := WriteFile(path, src, 16); err != nil {
		t.Fatal(err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{32767.0 / 32768, -1, 32767.0 / 32768, -1}
	testutil.RequireSliceNearlyEqual(t, got.Channels[0], want, 0)
}

func TestEncodeValidation(t *testing.T) {
	tests := []struct {
		name string
		a    *Audio
		bits int
	}{
		{"bit depth", &Audio{SampleRate: 48000, Channels: [][]float64{{0}}}, 8},
		{"sample rate", &Audio{Channels: [][]float64{{0}}}, 16},
		{"no channels", &Audio{SampleRate: 48000}, 16},
		{"ragged", &Audio{SampleRate: 48000, Channels: [][]float64{{0, 0}, {0}}}, 16},
	}
	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "bad.wav")
		if err := WriteFile(path, tt.a, tt.bits); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("definitely not a wav file")))
	if !errors.Is(err, ErrInvalidFile) {
		t.Fatalf("err = %v, want ErrInvalidFile", err)
	}
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestAudioAccessors(t *testing.T) {
	var empty Audio
	if empty.NumFrames() != 0 || empty.Duration() != 0 {
		t.Fatal("empty audio should report zero length")
	}
	a := &Audio{SampleRate: 1000, Channels: [][]float64{make([]float64, 250)}}
	if math.Abs(a.Duration()-0.25) > 1e-12 {
		t.Fatalf("Duration = %v", a.Duration())
	}
}
