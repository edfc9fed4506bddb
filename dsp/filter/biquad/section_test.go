package biquad

import (
	"math"
	"testing"
)

const eps = 1e-12

func testCoeffs() Coefficients {
	return Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
}

func TestSection_HandTracedImpulse(t *testing.T) {
	s := NewSection(testCoeffs())
	// n=0: y=0.25, d0=0.55, d1=0.24
	// n=1: y=0.55, d0=0.35, d1=-0.022
	// n=2: y=0.35, d0=0.048, d1=-0.014
	want := []float64{0.25, 0.55, 0.35, 0.048}
	for i, w := range want {
		x := 0.0
		if i == 0 {
			x = 1
		}
		if got := s.ProcessSample(x); math.Abs(got-w) > eps {
			t.Fatalf("y[%d] = %v, want %v", i, got, w)
		}
	}
}

func TestSection_ProcessBlockMatchesSample(t *testing.T) {
	for _, n := range []int{0, 1, 2, 7, 64} {
		bySample := NewSection(testCoeffs())
		byBlock := NewSection(testCoeffs())

		buf := make([]float64, n)
		for i := range buf {
			buf[i] = math.Sin(float64(i) * 0.3)
		}
		want := make([]float64, n)
		for i, x := range buf {
			want[i] = bySample.ProcessSample(x)
		}

		byBlock.ProcessBlock(buf)
		for i := range buf {
			if math.Abs(buf[i]-want[i]) > eps {
				t.Fatalf("n=%d: block[%d]=%v sample=%v", n, i, buf[i], want[i])
			}
		}
		if byBlock.State() != bySample.State() {
			t.Fatalf("n=%d: state mismatch %v vs %v", n, byBlock.State(), bySample.State())
		}
	}
}

func TestSection_ResetAndState(t *testing.T) {
	s := NewSection(testCoeffs())
	s.ProcessSample(1)
	saved := s.State()
	if saved == [2]float64{} {
		t.Fatal("state should be non-zero after input")
	}

	s.Reset()
	if s.State() != [2]float64{} {
		t.Fatalf("Reset left state %v", s.State())
	}

	s.SetState(saved)
	if s.State() != saved {
		t.Fatalf("SetState = %v, want %v", s.State(), saved)
	}
}

func TestSection_BlockFlushesDenormalState(t *testing.T) {
	s := NewSection(Coefficients{B0: 1, A1: -0.5})
	s.SetState([2]float64{1e-300, 0})
	buf := make([]float64, 1)
	s.ProcessBlock(buf)
	if st := s.State(); st[0] != 0 || st[1] != 0 {
		t.Fatalf("state %v, want flushed to zero", st)
	}
}

func TestCoefficients_Stable(t *testing.T) {
	tests := []struct {
		name string
		c    Coefficients
		want bool
	}{
		{"fir", Coefficients{B0: 1}, true},
		{"damped", testCoeffs(), true},
		{"pole on circle", Coefficients{B0: 1, A2: 1}, false},
		{"unstable a1", Coefficients{B0: 1, A1: -2.5, A2: 0.5}, false},
		{"nan", Coefficients{B0: 1, A1: math.NaN()}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Stable(); got != tt.want {
				t.Fatalf("Stable() = %v, want %v", got, tt.want)
			}
		})
	}
}
