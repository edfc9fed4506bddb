package ott

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-ott/dsp/buffer"
	"github.com/cwbudde/algo-ott/dsp/filter/crossover"
)

func filledBlock(t *testing.T, values ...float64) *buffer.Block {
	t.Helper()
	b, err := buffer.New(2, len(values))
	if err != nil {
		t.Fatal(err)
	}
	for ch := range 2 {
		copy(b.Channel(ch), values)
	}
	return b
}

func TestMixBands_Solo(t *testing.T) {
	low := filledBlock(t, 1, 1)
	mid := filledBlock(t, 10, 10)
	high := filledBlock(t, 100, 100)
	bands := [crossover.NumBands]*buffer.Block{low, mid, high}

	tests := []struct {
		name string
		solo [crossover.NumBands]bool
		want float64
	}{
		{"no solo sums all", [3]bool{}, 111},
		{"low solo", [3]bool{true, false, false}, 1},
		{"mid and high solo", [3]bool{false, true, true}, 110},
		{"all solo", [3]bool{true, true, true}, 111},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := filledBlock(t, -5, -5)
			MixBands(dst, bands, tt.solo)
			for ch := range 2 {
				for i, v := range dst.Channel(ch) {
					if v != tt.want {
						t.Fatalf("ch %d sample %d = %v, want %v", ch, i, v, tt.want)
					}
				}
			}
		})
	}
}

func TestGainMatchGain(t *testing.T) {
	tests := []struct {
		dry, wet, want float64
	}{
		{0.5, 0.25, 2},
		{0.1, 0.4, 0.25},
		{0, 0.4, 1},
		{0.4, 0, 1},
		{1e-6, 0.5, 1},
	}
	for _, tt := range tests {
		if got := GainMatchGain(tt.dry, tt.wet); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("GainMatchGain(%v, %v) = %v, want %v", tt.dry, tt.wet, got, tt.want)
		}
	}
}

func TestGainMatcher_Smoothing(t *testing.T) {
	var g gainMatcher
	g.reset(48000)
	if got := g.next(1, 0.5, 480); got != 2 {
		t.Fatalf("unsmoothed = %v, want 2", got)
	}

	s := gainMatcher{smoothingMs: 10}
	s.reset(48000)
	// First block primes the smoother with the target.
	if got := s.next(1, 0.5, 480); got != 2 {
		t.Fatalf("first block = %v, want 2", got)
	}
	// One time constant later the gain has covered 1-1/e of the step.
	got := s.next(1, 1, 480)
	want := 1 + math.Exp(-1)
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("smoothed = %v, want %v", got, want)
	}
}

func TestBlend(t *testing.T) {
	tests := []struct {
		depth float64
		want  float64
	}{
		{0, 2},
		{1, 10},
		{0.25, 2*0.75 + 10*0.25},
		{-1, 2},
		{3, 10},
	}
	for _, tt := range tests {
		wet := filledBlock(t, 10, 10, 10)
		dry := filledBlock(t, 2, 2, 2)
		Blend(wet, dry, tt.depth)
		for ch := range 2 {
			for i, v := range wet.Channel(ch) {
				if math.Abs(v-tt.want) > 1e-12 {
					t.Fatalf("depth %v ch %d sample %d = %v, want %v", tt.depth, ch, i, v, tt.want)
				}
			}
		}
	}
}
