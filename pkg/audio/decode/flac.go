// ABOUTME: FLAC audio decoder
// ABOUTME: Decodes FLAC to frames with seek-table random access via mewkiz/flac
package decode

import (
	"fmt"
	"io"

	"github.com/Resonate-Protocol/swfsound/pkg/audio"
	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
)

// FLACDecoder decodes FLAC audio
type FLACDecoder struct {
	rs         io.ReadSeeker
	start      int64
	stream     *flac.Stream
	frame      *frame.Frame
	pos        int
	bitDepth   int
	channels   uint8
	sampleRate uint16
	done       bool
}

// NewFLAC creates a new FLAC decoder whose stream starts at the current
// position of rs
func NewFLAC(rs io.ReadSeeker, format audio.Format) (*FLACDecoder, error) {
	if format.Codec != "flac" {
		return nil, fmt.Errorf("invalid codec for FLAC decoder: %s", format.Codec)
	}

	start, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("failed to get stream position: %w", err)
	}

	stream, err := flac.NewSeek(rs)
	if err != nil {
		return nil, fmt.Errorf("failed to decode FLAC: %w", err)
	}

	info := stream.Info
	if info.NChannels != 1 && info.NChannels != 2 {
		return nil, fmt.Errorf("unsupported channel count: %d (supported: 1, 2)", info.NChannels)
	}
	if info.SampleRate == 0 || info.SampleRate > 0xFFFF {
		return nil, fmt.Errorf("unsupported sample rate: %d", info.SampleRate)
	}

	return &FLACDecoder{
		rs:         rs,
		start:      start,
		stream:     stream,
		bitDepth:   int(info.BitsPerSample),
		channels:   info.NChannels,
		sampleRate: uint16(info.SampleRate),
	}, nil
}

// Next decodes one frame
func (d *FLACDecoder) Next() (audio.Frame, bool) {
	if d.done {
		return audio.Frame{}, false
	}
	for d.frame == nil || d.pos >= int(d.frame.BlockSize) {
		if !d.parseNext() {
			return audio.Frame{}, false
		}
	}

	left := d.toInt16(d.frame.Subframes[0].Samples[d.pos])
	right := left
	if d.channels == 2 {
		right = d.toInt16(d.frame.Subframes[1].Samples[d.pos])
	}
	d.pos++
	return audio.Frame{Left: left, Right: right}, true
}

func (d *FLACDecoder) parseNext() bool {
	f, err := d.stream.ParseNext()
	if err != nil {
		d.done = true
		d.frame = nil
		return false
	}
	d.frame = f
	d.pos = 0
	return true
}

// toInt16 scales a sample of the stream's bit depth to 16 bits
func (d *FLACDecoder) toInt16(sample int32) int16 {
	switch {
	case d.bitDepth == 16:
		return int16(sample)
	case d.bitDepth > 16:
		return int16(sample >> (d.bitDepth - 16))
	default:
		return int16(sample << (16 - d.bitDepth))
	}
}

func (d *FLACDecoder) NumChannels() uint8 { return d.channels }
func (d *FLACDecoder) SampleRate() uint16 { return d.sampleRate }

// Reset re-parses the stream from its first frame
func (d *FLACDecoder) Reset() {
	d.frame = nil
	d.pos = 0
	if _, err := d.rs.Seek(d.start, io.SeekStart); err != nil {
		d.done = true
		return
	}
	stream, err := flac.NewSeek(d.rs)
	if err != nil {
		d.done = true
		return
	}
	d.stream = stream
	d.done = false
}

// SeekToSampleFrame jumps to the FLAC frame containing n and discards the
// frames before n inside it. Falls back to SkipTo when the stream cannot
// seek there.
func (d *FLACDecoder) SeekToSampleFrame(n uint32) {
	if d.stream == nil {
		SkipTo(d, n)
		return
	}
	first, err := d.stream.Seek(uint64(n))
	if err != nil || first > uint64(n) {
		SkipTo(d, n)
		return
	}

	d.done = false
	d.frame = nil
	remaining := uint64(n) - first
	for {
		if !d.parseNext() {
			return
		}
		size := uint64(d.frame.BlockSize)
		if remaining < size {
			d.pos = int(remaining)
			return
		}
		remaining -= size
	}
}
