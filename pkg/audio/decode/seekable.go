// ABOUTME: Generic seekable decoder built by re-opening its input
// ABOUTME: Reset rebuilds the whole backend so inter-frame state starts fresh
package decode

import (
	"fmt"
	"io"

	"github.com/Resonate-Protocol/swfsound/pkg/audio"
)

// Opener returns a fresh reader positioned at the start of an encoded stream
type Opener func() io.Reader

// Builder constructs a backend decoder over r
type Builder func(r io.Reader) (Decoder, error)

// FormatBuilder returns a Builder that calls New with format
func FormatBuilder(format audio.Format) Builder {
	return func(r io.Reader) (Decoder, error) {
		return New(r, format)
	}
}

// Seekable makes any backend seekable by rebuilding it from a new reader on
// Reset. Predictor history, bit reservoirs and similar state are therefore
// recomputed from the first byte rather than rewound.
type Seekable struct {
	open       Opener
	build      Builder
	decoder    Decoder
	channels   uint8
	sampleRate uint16
}

// NewSeekable builds the first decoder immediately so construction errors
// surface here.
func NewSeekable(open Opener, build Builder) (*Seekable, error) {
	dec, err := build(open())
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	return &Seekable{
		open:       open,
		build:      build,
		decoder:    dec,
		channels:   dec.NumChannels(),
		sampleRate: dec.SampleRate(),
	}, nil
}

// Next returns the next frame from the current backend
func (s *Seekable) Next() (audio.Frame, bool) {
	if s.decoder == nil {
		return audio.Frame{}, false
	}
	return s.decoder.Next()
}

// NumChannels returns the channel count of the first backend
func (s *Seekable) NumChannels() uint8 { return s.channels }

// SampleRate returns the sample rate of the first backend
func (s *Seekable) SampleRate() uint16 { return s.sampleRate }

// Reset rebuilds the backend from a fresh reader. If the rebuild fails the
// decoder is left at end of stream.
func (s *Seekable) Reset() {
	dec, err := s.build(s.open())
	if err != nil {
		s.decoder = nil
		return
	}
	s.decoder = dec
}

// SeekToSampleFrame uses the default skip-based seek
func (s *Seekable) SeekToSampleFrame(n uint32) {
	SkipTo(s, n)
}
