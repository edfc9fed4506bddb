package crossover

import (
	"math"
	"testing"
)

func newSplitter(t *testing.T, channels int) *ThreeBand {
	t.Helper()
	tb, err := NewThreeBand(250, 2000, 4, 48000, channels)
	if err != nil {
		t.Fatal(err)
	}
	return tb
}

func TestNewThreeBand_Errors(t *testing.T) {
	tests := []struct {
		name      string
		low, high float64
		order     int
		sr        float64
		channels  int
	}{
		{"no channels", 250, 2000, 4, 48000, 0},
		{"descending", 2000, 250, 4, 48000, 2},
		{"equal", 1000, 1000, 4, 48000, 2},
		{"odd order", 250, 2000, 3, 48000, 2},
		{"high at nyquist", 250, 24000, 4, 48000, 2},
		{"zero low", 0, 2000, 4, 48000, 2},
		{"bad sample rate", 250, 2000, 4, 0, 2},
	}
	for _, tt := range tests {
		if _, err := NewThreeBand(tt.low, tt.high, tt.order, tt.sr, tt.channels); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestThreeBand_Accessors(t *testing.T) {
	tb := newSplitter(t, 2)
	lo, hi := tb.Frequencies()
	if lo != 250 || hi != 2000 || tb.Order() != 4 || tb.SampleRate() != 48000 || tb.NumChannels() != 2 {
		t.Fatalf("unexpected accessors: %v %v %d %v %d", lo, hi, tb.Order(), tb.SampleRate(), tb.NumChannels())
	}
}

func TestThreeBand_SumIsNearlyFlat(t *testing.T) {
	tb := newSplitter(t, 1)
	for f := 20.0; f <= 20000; f *= 1.05 {
		if db := tb.SumMagnitudeDB(f); math.Abs(db) > 0.5 {
			t.Fatalf("sum at %.1f Hz = %.3f dB, want within 0.5 dB", f, db)
		}
	}
}

func TestThreeBand_BandShapes(t *testing.T) {
	tb := newSplitter(t, 1)
	tests := []struct {
		freq      float64
		band      Band
		minDB     float64
		otherMaxB float64
	}{
		{50, Low, -0.5, -20},
		{700, Mid, -1.5, -10},
		{10000, High, -0.5, -20},
	}
	for _, tt := range tests {
		r := tb.Response(tt.freq)
		for b := range NumBands {
			db := 20 * math.Log10(cmplxAbs(r[b]))
			if Band(b) == tt.band && db < tt.minDB {
				t.Errorf("%v at %.0f Hz = %.2f dB, want >= %.1f", tt.band, tt.freq, db, tt.minDB)
			}
			if Band(b) != tt.band && db > tt.otherMaxB {
				t.Errorf("%v leaks %.2f dB at %.0f Hz (dominant %v)", Band(b), db, tt.freq, tt.band)
			}
		}
	}
}

func TestThreeBand_CrossoverPointsAreMinus6dB(t *testing.T) {
	tb := newSplitter(t, 1)
	r := tb.Response(250)
	if db := 20 * math.Log10(cmplxAbs(r[Low])); math.Abs(db+6.02) > 0.05 {
		t.Errorf("low at 250 Hz = %.3f dB", db)
	}
	r = tb.Response(2000)
	if db := 20 * math.Log10(cmplxAbs(r[High])); math.Abs(db+6.02) > 0.05 {
		t.Errorf("high at 2000 Hz = %.3f dB", db)
	}
}

func TestThreeBand_BlockMatchesSample(t *testing.T) {
	const n = 256
	a := newSplitter(t, 1)
	b := newSplitter(t, 1)

	input := make([]float64, n)
	for i := range input {
		input[i] = math.Sin(2*math.Pi*440*float64(i)/48000) + 0.3*math.Sin(2*math.Pi*5000*float64(i)/48000)
	}
	low := make([]float64, n)
	mid := make([]float64, n)
	high := make([]float64, n)
	b.ProcessBlock(0, input, low, mid, high)

	for i, x := range input {
		l, m, h := a.ProcessSample(0, x)
		if math.Abs(l-low[i]) > 1e-12 || math.Abs(m-mid[i]) > 1e-12 || math.Abs(h-high[i]) > 1e-12 {
			t.Fatalf("sample %d: (%g %g %g) vs block (%g %g %g)", i, l, m, h, low[i], mid[i], high[i])
		}
	}
}

func TestThreeBand_ChannelsAreIndependent(t *testing.T) {
	tb := newSplitter(t, 2)
	ref := newSplitter(t, 1)

	// Drive channel 1 hard; channel 0 must match a fresh mono splitter.
	for i := range 64 {
		x := 0.0
		if i == 0 {
			x = 1
		}
		tb.ProcessSample(1, 1)
		l0, m0, h0 := tb.ProcessSample(0, x)
		l1, m1, h1 := ref.ProcessSample(0, x)
		if l0 != l1 || m0 != m1 || h0 != h1 {
			t.Fatalf("sample %d: channel 0 affected by channel 1", i)
		}
	}
}

func TestThreeBand_Reset(t *testing.T) {
	tb := newSplitter(t, 2)
	tb.ProcessSample(0, 1)
	tb.ProcessSample(1, -1)
	tb.Reset()

	fresh := newSplitter(t, 2)
	for ch := range 2 {
		l0, m0, h0 := tb.ProcessSample(ch, 0.5)
		l1, m1, h1 := fresh.ProcessSample(ch, 0.5)
		if l0 != l1 || m0 != m1 || h0 != h1 {
			t.Fatalf("channel %d not reset", ch)
		}
	}
}

func TestThreeBand_ProcessBlockDoesNotAllocate(t *testing.T) {
	tb := newSplitter(t, 1)
	in := make([]float64, 512)
	in[0] = 1
	low := make([]float64, 512)
	mid := make([]float64, 512)
	high := make([]float64, 512)

	allocs := testing.AllocsPerRun(100, func() {
		tb.ProcessBlock(0, in, low, mid, high)
	})
	if allocs != 0 {
		t.Fatalf("ProcessBlock allocated %.1f times", allocs)
	}
}

func TestBand_String(t *testing.T) {
	for b, want := range map[Band]string{Low: "low", Mid: "mid", High: "high", Band(7): "band(7)"} {
		if got := b.String(); got != want {
			t.Errorf("%d: got %q, want %q", int(b), got, want)
		}
	}
}

func BenchmarkThreeBand_ProcessBlock(b *testing.B) {
	tb, _ := NewThreeBand(250, 2000, 4, 48000, 1)
	in := make([]float64, 512)
	for i := range in {
		in[i] = math.Sin(float64(i) * 0.05)
	}
	low := make([]float64, 512)
	mid := make([]float64, 512)
	high := make([]float64, 512)

	for b.Loop() {
		tb.ProcessBlock(0, in, low, mid, high)
	}
}

func cmplxAbs(z complex128) float64 { return math.Hypot(real(z), imag(z)) }
