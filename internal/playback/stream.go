// Package playback streams audio through the OTT processor to the
// system's audio output.
package playback

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-ott/dsp/ott"
	"github.com/cwbudde/algo-ott/internal/wavio"
)

// BytesPerFrame is the size of one interleaved stereo float32 frame.
const BytesPerFrame = 2 * 4

// Stream is an io.Reader producing interleaved stereo float32 little-endian
// frames. Each block of the source is processed in place before it is
// delivered; mono sources are duplicated to both outputs. Read runs on the
// audio goroutine and does not allocate.
type Stream struct {
	src  *wavio.Audio
	proc *ott.Processor
	loop bool

	pos     int
	block   [][]float64
	pending int // processed frames not yet delivered
	offset  int // next frame of block to deliver

	played atomic.Int64
}

// NewStream prepares a stream over src. proc must be prepared for src's
// sample rate; blocks are proc.MaxBlockSize frames long.
func NewStream(src *wavio.Audio, proc *ott.Processor, loop bool) (*Stream, error) {
	if src == nil || proc == nil {
		return nil, errors.New("playback: source and processor must not be nil")
	}
	if n := src.NumChannels(); n < 1 || n > 2 {
		return nil, fmt.Errorf("playback: source must be mono or stereo, has %d channels", n)
	}
	if !proc.Prepared() {
		return nil, ott.ErrNotPrepared
	}
	if int(proc.SampleRate()) != src.SampleRate {
		return nil, fmt.Errorf("playback: processor prepared for %v Hz, source is %d Hz", proc.SampleRate(), src.SampleRate)
	}

	block := make([][]float64, src.NumChannels())
	for ch := range block {
		block[ch] = make([]float64, proc.MaxBlockSize())
	}
	return &Stream{src: src, proc: proc, loop: loop, block: block}, nil
}

// FramesPlayed returns the number of frames delivered so far. It is safe
// to call from any goroutine.
func (s *Stream) FramesPlayed() int64 { return s.played.Load() }

// Read implements io.Reader. It returns io.EOF once a non-looping source
// is exhausted and io.ErrShortBuffer when p cannot hold a single frame.
func (s *Stream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if len(p) < BytesPerFrame {
		return 0, io.ErrShortBuffer
	}
	frames := len(p) / BytesPerFrame
	written := 0
	for written < frames {
		if s.pending == 0 {
			if err := s.fill(); err != nil {
				if written > 0 && errors.Is(err, io.EOF) {
					break
				}
				return written * BytesPerFrame, err
			}
		}

		n := min(frames-written, s.pending)
		left := s.block[0]
		right := s.block[len(s.block)-1]
		for i := range n {
			j := s.offset + i
			off := (written + i) * BytesPerFrame
			binary.LittleEndian.PutUint32(p[off:], math.Float32bits(float32(left[j])))
			binary.LittleEndian.PutUint32(p[off+4:], math.Float32bits(float32(right[j])))
		}
		s.offset += n
		s.pending -= n
		written += n
	}
	s.played.Add(int64(written))
	return written * BytesPerFrame, nil
}

// fill copies the next source block and processes it.
func (s *Stream) fill() error {
	total := s.src.NumFrames()
	if s.pos >= total {
		if !s.loop || total == 0 {
			return io.EOF
		}
		s.pos = 0
	}

	n := min(len(s.block[0]), total-s.pos)
	for ch := range s.block {
		s.block[ch] = s.block[ch][:cap(s.block[ch])]
		copy(s.block[ch], s.src.Channels[ch][s.pos:s.pos+n])
		s.block[ch] = s.block[ch][:n]
	}
	if err := s.proc.ProcessBlock(s.block); err != nil {
		return err
	}

	s.pos += n
	s.pending = n
	s.offset = 0
	return nil
}
