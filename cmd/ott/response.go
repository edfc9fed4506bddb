package main

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/cwbudde/algo-ott/dsp/ott"
	"github.com/cwbudde/algo-ott/internal/cli"
	"github.com/cwbudde/algo-ott/measure/response"
)

// ResponseCmd measures the processor's band-sum response with all dynamics
// disabled and compares it with the analytic crossover response.
type ResponseCmd struct {
	SampleRate float64 `default:"48000" help:"Sample rate in Hz."`
	Size       int     `default:"16384" help:"Impulse response length in samples."`
	Points     int     `default:"12" help:"Number of log-spaced frequencies to print."`
}

// bandSumReport holds the measured response of the linear processor.
type bandSumReport struct {
	spectrum  *response.Spectrum
	deviation response.Deviation
	analytic  func(freqHz float64) float64
}

// measureBandSum runs an impulse through a processor whose ratios are all
// 1 at full depth, which leaves only the crossover.
func measureBandSum(sampleRate float64, size int) (*bandSumReport, error) {
	params := ott.DefaultParameters()
	params.DepthPercent = 100
	for b := range params.Bands {
		params.Bands[b].RatioDown = 1
		params.Bands[b].RatioUp = 1
	}

	proc, err := ott.New(ott.StaticParameters(params), nil)
	if err != nil {
		return nil, err
	}
	if err := proc.Prepare(sampleRate, size); err != nil {
		return nil, err
	}

	ir := make([]float64, size)
	ir[0] = 1
	if err := proc.ProcessBlock([][]float64{ir}); err != nil {
		return nil, err
	}

	spec, err := response.NewAnalyzer(sampleRate).Analyze(ir)
	if err != nil {
		return nil, err
	}
	return &bandSumReport{
		spectrum:  spec,
		deviation: spec.Deviation(20, math.Min(20000, 0.45*sampleRate)),
		analytic:  proc.Splitter().SumMagnitudeDB,
	}, nil
}

func (c *ResponseCmd) Run(logger *slog.Logger) error {
	if c.Points < 2 {
		return fmt.Errorf("response: points must be at least 2: %d", c.Points)
	}
	report, err := measureBandSum(c.SampleRate, c.Size)
	if err != nil {
		return err
	}
	logger.Debug("spectrum", "fft", report.spectrum.FFTSize, "bin_hz", report.spectrum.BinHz())

	fmt.Println(cli.TitleStyle.Render("Band-sum response"))
	fmt.Printf("%10s %12s %12s\n", "Hz", "measured dB", "analytic dB")
	high := math.Min(20000, 0.45*c.SampleRate)
	for i := range c.Points {
		f := 20 * math.Pow(high/20, float64(i)/float64(c.Points-1))
		fmt.Printf("%10.0f %12.3f %12.3f\n", f, report.spectrum.MagnitudeAt(f), report.analytic(f))
	}
	fmt.Println()
	fmt.Println(cli.KeyValue("Deviation:", fmt.Sprintf("%.3f dB (%.3f..%.3f), worst at %.0f Hz",
		report.deviation.MaxAbsDB, report.deviation.MinDB, report.deviation.MaxDB, report.deviation.WorstHz)))
	return nil
}
