package ott

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-ott/dsp/buffer"
	"github.com/cwbudde/algo-ott/dsp/core"
	"github.com/cwbudde/algo-ott/dsp/effects/dynamics"
	"github.com/cwbudde/algo-ott/dsp/effects/spatial"
	"github.com/cwbudde/algo-ott/dsp/filter/crossover"
)

// Block path errors. The block is left untouched when one is returned.
var (
	ErrNotPrepared   = errors.New("ott: processor not prepared")
	ErrChannelCount  = errors.New("ott: block must have 1 or 2 channels")
	ErrChannelLength = errors.New("ott: block channels differ in length")
	ErrBlockTooLarge = errors.New("ott: block exceeds prepared max block size")
)

// Processor is the three-band OTT pipeline:
//
//	input level → input gain → split → per band {dynamics, width}
//	→ solo-aware mix → gain match → dry/wet blend → output gain → telemetry
//
// Prepare must be called before the first ProcessBlock and whenever the
// sample rate or maximum block size changes. Prepare and ProcessBlock must
// not run concurrently; parameters and telemetry may be accessed from other
// goroutines through the provider and sink.
type Processor struct {
	params ParameterProvider
	sink   TelemetrySink
	cfg    config

	format   core.ProcessorConfig
	prepared bool

	splitter *crossover.ThreeBand
	bands    [crossover.NumBands]*dynamics.BandProcessor
	wideners [crossover.NumBands]*spatial.StereoWidener

	dry      *buffer.Block
	wet      *buffer.Block
	bandBufs [crossover.NumBands]*buffer.Block
	gm       gainMatcher
}

// New creates a processor reading parameters from params and publishing to
// sink. A nil sink discards telemetry.
func New(params ParameterProvider, sink TelemetrySink, opts ...Option) (*Processor, error) {
	if params == nil {
		return nil, errors.New("ott: parameter provider must not be nil")
	}
	if sink == nil {
		sink = DiscardTelemetry{}
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Processor{params: params, sink: sink, cfg: cfg}, nil
}

// Prepare allocates all buffers for blocks of up to maxBlockSize samples,
// designs the crossovers for sampleRate and resets every filter and
// envelope to zero.
func (p *Processor) Prepare(sampleRate float64, maxBlockSize int) error {
	p.prepared = false

	format := core.ProcessorConfig{SampleRate: sampleRate, MaxBlockSize: maxBlockSize}
	if err := format.Validate(); err != nil {
		return fmt.Errorf("ott: prepare: %w", err)
	}

	splitter, err := crossover.NewThreeBand(LowCrossoverHz, HighCrossoverHz, CrossoverOrder, sampleRate, buffer.MaxChannels)
	if err != nil {
		return fmt.Errorf("ott: prepare: %w", err)
	}

	var (
		bands    [crossover.NumBands]*dynamics.BandProcessor
		wideners [crossover.NumBands]*spatial.StereoWidener
		bandBufs [crossover.NumBands]*buffer.Block
	)
	for b := range crossover.NumBands {
		if bands[b], err = dynamics.NewBandProcessor(sampleRate, buffer.MaxChannels); err != nil {
			return fmt.Errorf("ott: %v band: %w", crossover.Band(b), err)
		}
		if wideners[b], err = spatial.NewStereoWidener(); err != nil {
			return fmt.Errorf("ott: %v band: %w", crossover.Band(b), err)
		}
		if bandBufs[b], err = buffer.New(buffer.MaxChannels, maxBlockSize); err != nil {
			return fmt.Errorf("ott: %v band: %w", crossover.Band(b), err)
		}
	}

	dry, err := buffer.New(buffer.MaxChannels, maxBlockSize)
	if err != nil {
		return fmt.Errorf("ott: prepare: %w", err)
	}
	wet, err := buffer.New(buffer.MaxChannels, maxBlockSize)
	if err != nil {
		return fmt.Errorf("ott: prepare: %w", err)
	}

	p.format = format
	p.splitter = splitter
	p.bands = bands
	p.wideners = wideners
	p.bandBufs = bandBufs
	p.dry = dry
	p.wet = wet
	p.gm = gainMatcher{smoothingMs: p.cfg.gainMatchSmoothingMs}
	p.gm.reset(sampleRate)
	p.prepared = true

	return nil
}

// SampleRate returns the prepared sample rate, or 0 before Prepare.
func (p *Processor) SampleRate() float64 { return p.format.SampleRate }

// MaxBlockSize returns the prepared maximum block size, or 0 before Prepare.
func (p *Processor) MaxBlockSize() int { return p.format.MaxBlockSize }

// Prepared reports whether Prepare has completed successfully.
func (p *Processor) Prepared() bool { return p.prepared }

// Splitter returns the band splitter for response analysis, or nil before
// Prepare.
func (p *Processor) Splitter() *crossover.ThreeBand { return p.splitter }

// Envelope returns the envelope value of band b on channel ch.
func (p *Processor) Envelope(b crossover.Band, ch int) float64 {
	if !p.prepared {
		return 0
	}
	return p.bands[b].Envelope(ch)
}

// Reset clears filter, envelope and gain-match state without reallocating.
func (p *Processor) Reset() {
	if !p.prepared {
		return
	}
	p.splitter.Reset()
	for _, b := range p.bands {
		b.Reset()
	}
	p.gm.reset(p.format.SampleRate)
}

func (p *Processor) checkBlock(block [][]float64) (int, error) {
	if !p.prepared {
		return 0, ErrNotPrepared
	}
	if len(block) < 1 || len(block) > buffer.MaxChannels {
		return 0, ErrChannelCount
	}
	n := len(block[0])
	for _, ch := range block[1:] {
		if len(ch) != n {
			return 0, ErrChannelLength
		}
	}
	if n > p.format.MaxBlockSize {
		return 0, ErrBlockTooLarge
	}
	return n, nil
}

// ProcessBlock processes a planar mono or stereo block in place. It reads
// one parameter snapshot and publishes one telemetry update. Empty blocks
// are accepted and left as they are.
func (p *Processor) ProcessBlock(block [][]float64) error {
	n, err := p.checkBlock(block)
	if err != nil || n == 0 {
		return err
	}
	numCh := len(block)

	params := p.params.Snapshot().Normalize()

	var tm Telemetry
	tm.InputLevelDB = core.LevelDB(buffer.MaxRMS(block))

	buffer.Scale(block, core.DBToLinear(params.InputGainDB))
	p.dry.CopyFrom(block)

	var solo [crossover.NumBands]bool
	for b := range crossover.NumBands {
		bb := p.bandBufs[b]
		bb.Resize(numCh, n)
		bp := &params.Bands[b]
		solo[b] = bp.Solo

		p.bands[b].SetParams(dynamics.BandParams{
			ThreshDownDB: bp.ThreshDownDB,
			RatioDown:    bp.RatioDown,
			ThreshUpDB:   bp.ThreshUpDB,
			RatioUp:      bp.RatioUp,
			AttackMs:     bp.AttackMs,
			ReleaseMs:    bp.ReleaseMs,
			MakeupDB:     bp.GainDB,
		})
		// Normalized widths are always in range.
		_ = p.wideners[b].SetWidth(spatial.WidthFromPercent(bp.WidthPercent))
	}

	low, mid, high := p.bandBufs[crossover.Low], p.bandBufs[crossover.Mid], p.bandBufs[crossover.High]
	for ch := range numCh {
		p.splitter.ProcessBlock(ch, block[ch], low.Channel(ch), mid.Channel(ch), high.Channel(ch))
	}

	for b := range crossover.NumBands {
		bb := p.bandBufs[b]
		for ch := range numCh {
			p.bands[b].ProcessBlock(ch, bb.Channel(ch))
		}
		p.wideners[b].ProcessChannels(bb.Channels())
		tm.BandLevels[b] = bb.RMS()
	}

	p.wet.Resize(numCh, n)
	MixBands(p.wet, p.bandBufs, solo)

	if params.GainMatch {
		p.wet.Scale(p.gm.next(p.dry.RMS(), p.wet.RMS(), n))
	}

	Blend(p.wet, p.dry, core.PercentToFraction(params.DepthPercent))
	p.wet.Scale(core.DBToLinear(params.OutputGainDB))
	p.wet.CopyTo(block)

	tm.OutputLevelDB = core.LevelDB(p.wet.RMS())
	tm.DepthPercent = params.DepthPercent
	tm.TimePercent = params.TimePercent
	tm.UpwardPercent = RatioToPercent(params.Bands[crossover.Low].RatioUp)
	tm.DownwardPercent = RatioToPercent(params.Bands[crossover.High].RatioUp)
	tm.GainMatchEnabled = params.GainMatch
	p.sink.Publish(tm)

	return nil
}
