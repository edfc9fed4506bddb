package playback

import (
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Player owns the oto output context and a player pulling from a Stream.
// Only one Player may exist per process.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
}

// NewPlayer opens a stereo float32 output at sampleRate and attaches
// stream. bufferSize 0 selects the driver default.
func NewPlayer(stream *Stream, sampleRate int, bufferSize time.Duration) (*Player, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("playback: open output: %w", err)
	}
	<-ready

	return &Player{ctx: ctx, player: ctx.NewPlayer(stream)}, nil
}

// Play starts playback without blocking.
func (p *Player) Play() { p.player.Play() }

// IsPlaying reports whether the player still has data to play.
func (p *Player) IsPlaying() bool { return p.player.IsPlaying() }

// Close stops playback and releases the player.
func (p *Player) Close() error {
	p.player.Pause()
	return p.player.Close()
}
