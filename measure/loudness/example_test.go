package loudness_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ott/measure/loudness"
)

func ExampleMeter() {
	const fs = 48000.0
	m, err := loudness.NewMeter(loudness.WithSampleRate(fs), loudness.WithChannels(1))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// 4 seconds of a 1 kHz sine at -6 dBFS.
	sig := make([]float64, int(4*fs))
	for i := range sig {
		sig[i] = 0.5 * math.Sin(2*math.Pi*1000/fs*float64(i))
	}
	m.ProcessBlock([][]float64{sig})

	fmt.Printf("Momentary: %.1f LUFS\n", m.Momentary())
	fmt.Printf("Integrated: %.1f LUFS\n", m.Integrated())
	fmt.Printf("Peak: %.1f dBFS\n", m.PeakDB())
	// Output:
	// Momentary: -9.0 LUFS
	// Integrated: -9.0 LUFS
	// Peak: -6.0 dBFS
}
