package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/cwbudde/algo-ott/dsp/ott"
	"github.com/cwbudde/algo-ott/internal/cli"
	"github.com/cwbudde/algo-ott/internal/playback"
	"github.com/cwbudde/algo-ott/internal/preset"
	"github.com/cwbudde/algo-ott/internal/wavio"
)

// PlayCmd plays a file through the processor. With a preset, edits to the
// preset file are applied while playing.
type PlayCmd struct {
	ParamSource `embed:""`

	Input     string        `arg:"" type:"existingfile" help:"Input WAV file."`
	Loop      bool          `help:"Loop the input until interrupted."`
	BlockSize int           `short:"b" default:"256" help:"Processing block size in frames."`
	Buffer    time.Duration `default:"100ms" help:"Output buffer length."`
	Interval  time.Duration `default:"100ms" help:"Meter refresh interval."`
	NoMeter   bool          `help:"Do not print the live meter line."`
}

func (c *PlayCmd) Run(logger *slog.Logger) error {
	store, err := c.store(logger)
	if err != nil {
		return err
	}
	src, err := wavio.ReadFile(c.Input)
	if err != nil {
		return err
	}

	meters := ott.NewAtomicTelemetry()
	proc, err := ott.New(store, meters)
	if err != nil {
		return err
	}
	if err := proc.Prepare(float64(src.SampleRate), c.BlockSize); err != nil {
		return err
	}
	stream, err := playback.NewStream(src, proc, c.Loop)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if c.Preset != "" {
		go func() {
			if err := preset.Watch(ctx, c.Preset, store, logger); err != nil {
				logger.Warn("preset watch stopped", "err", err)
			}
		}()
	}

	player, err := playback.NewPlayer(stream, src.SampleRate, c.Buffer)
	if err != nil {
		return err
	}
	defer player.Close()

	logger.Info("playing", "path", c.Input, "rate", src.SampleRate, "block", c.BlockSize, "loop", c.Loop)
	player.Play()

	ticker := time.NewTicker(c.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			fmt.Println()
			logger.Info("interrupted", "seconds", float64(stream.FramesPlayed())/float64(src.SampleRate))
			return nil
		case <-ticker.C:
			if !c.NoMeter {
				fmt.Printf("\r%s", cli.RenderTelemetry(meters.Load(), 12))
			}
			if !player.IsPlaying() {
				fmt.Println()
				return nil
			}
		}
	}
}
