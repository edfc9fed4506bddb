package dynamics

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-ott/dsp/core"
)

func TestGainComputer_GainDB(t *testing.T) {
	tests := []struct {
		name  string
		gc    GainComputer
		level float64
		want  float64
	}{
		{"downward above threshold", GainComputer{ThreshDownDB: -20, RatioDown: 4, ThreshUpDB: -60, RatioUp: 1}, -8, -9},
		{"downward at threshold", GainComputer{ThreshDownDB: -20, RatioDown: 4, ThreshUpDB: -60, RatioUp: 1}, -20, 0},
		{"upward below threshold", GainComputer{ThreshDownDB: 0, RatioDown: 1, ThreshUpDB: -40, RatioUp: 2}, -60, 10},
		{"upward at threshold", GainComputer{ThreshDownDB: 0, RatioDown: 1, ThreshUpDB: -40, RatioUp: 2}, -40, 0},
		{"sweet band untouched", GainComputer{ThreshDownDB: -20, RatioDown: 3, ThreshUpDB: -40, RatioUp: 2}, -30, 0},
		{"both stages", GainComputer{ThreshDownDB: -30, RatioDown: 2, ThreshUpDB: -10, RatioUp: 2}, -20, 0},
		{"both stages uneven", GainComputer{ThreshDownDB: -30, RatioDown: 2, ThreshUpDB: -10, RatioUp: 5}, -20, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.gc.GainDB(tt.level); math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("GainDB(%v) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestGainComputer_RatioAtOrBelowOneIsInactive(t *testing.T) {
	for _, r := range []float64{1, 0.5, 0, -3, math.NaN()} {
		gc := GainComputer{ThreshDownDB: -20, RatioDown: r, ThreshUpDB: -40, RatioUp: r}
		for _, level := range []float64{-80, -40, -30, -20, 0, 6} {
			if got := gc.GainDB(level); got != 0 {
				t.Fatalf("ratio %v level %v: GainDB = %v, want 0", r, level, got)
			}
		}
		if got := gc.Gain(0.5); got != 1 {
			t.Fatalf("ratio %v: Gain = %v, want 1", r, got)
		}
	}
}

func TestGainComputer_Gain(t *testing.T) {
	gc := GainComputer{ThreshDownDB: -20, RatioDown: 3, ThreshUpDB: -40, RatioUp: 2}

	// Envelope of 1-floor is exactly 0 dB: target -20 + 20/3.
	got := gc.Gain(1 - core.LevelFloor)
	want := math.Pow(10, (-20+20.0/3)/20)
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("Gain(0 dB) = %v, want %v", got, want)
	}

	// Silence sits at -100 dB: boosted halfway to -40 dB.
	got = gc.Gain(0)
	want = math.Pow(10, 30.0/20)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("Gain(silence) = %v, want %v", got, want)
	}
}

func TestGainComputer_MonotoneOutputLevel(t *testing.T) {
	gc := GainComputer{ThreshDownDB: -20, RatioDown: 20, ThreshUpDB: -40, RatioUp: 20}
	prev := math.Inf(-1)
	for level := -100.0; level <= 0; level += 0.5 {
		out := level + gc.GainDB(level)
		if out < prev-1e-9 {
			t.Fatalf("output level decreased at %v dB: %v < %v", level, out, prev)
		}
		prev = out
	}
}
