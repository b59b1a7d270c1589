// ABOUTME: PCM audio decoder
// ABOUTME: Decodes unsigned 8-bit and little-endian 16-bit PCM to frames
package decode

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Resonate-Protocol/swfsound/pkg/audio"
)

// PCMDecoder decodes PCM audio
type PCMDecoder struct {
	r          io.Reader
	buf        []byte
	is16Bit    bool
	channels   uint8
	sampleRate uint16
	done       bool
}

// NewPCM creates a new PCM decoder
func NewPCM(r io.Reader, format audio.Format) (*PCMDecoder, error) {
	if format.Codec != "pcm" {
		return nil, fmt.Errorf("invalid codec for PCM decoder: %s", format.Codec)
	}

	if format.BitDepth != 8 && format.BitDepth != 16 {
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 8, 16)", format.BitDepth)
	}

	if err := validateLayout(format); err != nil {
		return nil, err
	}

	return &PCMDecoder{
		r:          r,
		buf:        make([]byte, format.Channels*format.BitDepth/8),
		is16Bit:    format.BitDepth == 16,
		channels:   uint8(format.Channels),
		sampleRate: uint16(format.SampleRate),
	}, nil
}

// Next decodes one frame. A trailing partial frame ends the stream.
func (d *PCMDecoder) Next() (audio.Frame, bool) {
	if d.done {
		return audio.Frame{}, false
	}
	if _, err := io.ReadFull(d.r, d.buf); err != nil {
		d.done = true
		return audio.Frame{}, false
	}

	left := d.sample(0)
	if d.channels == 1 {
		return audio.FrameFromMono(left), true
	}
	return audio.Frame{Left: left, Right: d.sample(1)}, true
}

func (d *PCMDecoder) sample(ch int) int16 {
	if d.is16Bit {
		return int16(binary.LittleEndian.Uint16(d.buf[ch*2:]))
	}
	return audio.SampleFromUint8(d.buf[ch])
}

func (d *PCMDecoder) NumChannels() uint8 { return d.channels }
func (d *PCMDecoder) SampleRate() uint16 { return d.sampleRate }

func (d *PCMDecoder) frameSize() int64 {
	return int64(len(d.buf))
}

// SeekablePCMDecoder decodes PCM from a seekable source. PCM has no
// inter-frame state, so seeking is a direct byte offset.
type SeekablePCMDecoder struct {
	*PCMDecoder
	rs    io.ReadSeeker
	start int64
}

// NewSeekablePCM creates a PCM decoder whose stream starts at the current
// position of rs
func NewSeekablePCM(rs io.ReadSeeker, format audio.Format) (*SeekablePCMDecoder, error) {
	dec, err := NewPCM(rs, format)
	if err != nil {
		return nil, err
	}
	start, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("failed to get stream position: %w", err)
	}
	return &SeekablePCMDecoder{
		PCMDecoder: dec,
		rs:         rs,
		start:      start,
	}, nil
}

// Reset rewinds to the first frame
func (d *SeekablePCMDecoder) Reset() {
	d.seekTo(d.start)
}

// SeekToSampleFrame jumps straight to frame n
func (d *SeekablePCMDecoder) SeekToSampleFrame(n uint32) {
	d.seekTo(d.start + int64(n)*d.frameSize())
}

func (d *SeekablePCMDecoder) seekTo(offset int64) {
	if _, err := d.rs.Seek(offset, io.SeekStart); err != nil {
		d.done = true
		return
	}
	d.done = false
}
