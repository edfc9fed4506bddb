package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/cwbudde/algo-ott/dsp/ott"
	"github.com/cwbudde/algo-ott/internal/wavio"
	"github.com/cwbudde/algo-ott/measure/loudness"
)

// RenderCmd processes a WAV file offline.
type RenderCmd struct {
	ParamSource `embed:""`

	Input     string  `arg:"" type:"existingfile" help:"Input WAV file."`
	Output    string  `arg:"" help:"Output WAV file."`
	BlockSize int     `short:"b" default:"512" help:"Processing block size in frames."`
	BitDepth  int     `default:"0" help:"Output bit depth (16, 24 or 32), 0 keeps the input depth."`
	Smoothing float64 `default:"0" help:"Gain-match smoothing time in ms."`
}

func (c *RenderCmd) Run(logger *slog.Logger) error {
	store, err := c.store(logger)
	if err != nil {
		return err
	}

	src, err := wavio.ReadFile(c.Input)
	if err != nil {
		return err
	}
	logger.Info("input", "path", c.Input, "rate", src.SampleRate, "channels", src.NumChannels(),
		"bits", src.BitDepth, "seconds", fmt.Sprintf("%.2f", src.Duration()))

	inLUFS, _, err := measureLoudness(src)
	if err != nil {
		return err
	}

	meters := ott.NewAtomicTelemetry()
	start := time.Now()
	if err := renderAudio(src, store, meters, c.BlockSize, ott.WithGainMatchSmoothing(c.Smoothing)); err != nil {
		return err
	}
	elapsed := time.Since(start)

	outLUFS, outPeak, err := measureLoudness(src)
	if err != nil {
		return err
	}

	bits := c.BitDepth
	if bits == 0 {
		bits = src.BitDepth
	}
	if err := wavio.WriteFile(c.Output, src, bits); err != nil {
		return err
	}

	speed := 0.0
	if elapsed > 0 {
		speed = src.Duration() / elapsed.Seconds()
	}
	logger.Info("rendered", "path", c.Output, "elapsed", elapsed.Round(time.Millisecond),
		"realtime", fmt.Sprintf("%.0fx", speed), "last_out_db", fmt.Sprintf("%.1f", meters.OutputLevelDB()))
	logger.Info("loudness", "in_lufs", fmt.Sprintf("%.1f", inLUFS), "out_lufs", fmt.Sprintf("%.1f", outLUFS),
		"out_peak_dbfs", fmt.Sprintf("%.1f", outPeak))
	if outPeak > 0 {
		logger.Warn("output clips", "peak_dbfs", fmt.Sprintf("%.2f", outPeak))
	}
	return nil
}

// measureLoudness returns the integrated loudness and sample peak of a.
func measureLoudness(a *wavio.Audio) (lufs, peakDB float64, err error) {
	m, err := loudness.NewMeter(loudness.WithSampleRate(float64(a.SampleRate)), loudness.WithChannels(a.NumChannels()))
	if err != nil {
		return 0, 0, err
	}
	m.ProcessBlock(a.Channels)
	return m.Integrated(), m.PeakDB(), nil
}

// renderAudio processes src in place in blocks of blockSize frames.
func renderAudio(src *wavio.Audio, params ott.ParameterProvider, sink ott.TelemetrySink, blockSize int, opts ...ott.Option) error {
	if n := src.NumChannels(); n < 1 || n > 2 {
		return fmt.Errorf("render: only mono and stereo input is supported, got %d channels", n)
	}

	proc, err := ott.New(params, sink, opts...)
	if err != nil {
		return err
	}
	if err := proc.Prepare(float64(src.SampleRate), blockSize); err != nil {
		return err
	}

	block := make([][]float64, src.NumChannels())
	total := src.NumFrames()
	for pos := 0; pos < total; pos += blockSize {
		end := min(pos+blockSize, total)
		for ch := range block {
			block[ch] = src.Channels[ch][pos:end]
		}
		if err := proc.ProcessBlock(block); err != nil {
			return fmt.Errorf("render: frame %d: %w", pos, err)
		}
	}
	return nil
}
