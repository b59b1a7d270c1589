// ABOUTME: MP3 audio decoder
// ABOUTME: Decodes MP3 audio to frames using go-mp3
package decode

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Resonate-Protocol/swfsound/pkg/audio"
	"github.com/hajimehoshi/go-mp3"
)

// go-mp3 always emits interleaved 16-bit stereo
const (
	mp3FrameBytes  = 4
	mp3ReadBufSize = 4608
)

// MP3Decoder decodes MP3 audio
type MP3Decoder struct {
	decoder    *mp3.Decoder
	r          *bufio.Reader
	buf        [mp3FrameBytes]byte
	sampleRate uint16
	done       bool
}

// NewMP3 creates a new MP3 decoder. go-mp3 parses the first frame header
// here, so an undecodable stream fails at construction.
func NewMP3(r io.Reader, format audio.Format) (*MP3Decoder, error) {
	if format.Codec != "mp3" {
		return nil, fmt.Errorf("invalid codec for MP3 decoder: %s", format.Codec)
	}

	decoder, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create mp3 decoder: %w", err)
	}

	rate := decoder.SampleRate()
	if rate <= 0 || rate > 0xFFFF {
		return nil, fmt.Errorf("unsupported sample rate: %d", rate)
	}

	return &MP3Decoder{
		decoder:    decoder,
		r:          bufio.NewReaderSize(decoder, mp3ReadBufSize),
		sampleRate: uint16(rate),
	}, nil
}

// Next decodes one frame
func (d *MP3Decoder) Next() (audio.Frame, bool) {
	if d.done {
		return audio.Frame{}, false
	}
	if _, err := io.ReadFull(d.r, d.buf[:]); err != nil {
		d.done = true
		return audio.Frame{}, false
	}
	return audio.Frame{
		Left:  int16(binary.LittleEndian.Uint16(d.buf[0:])),
		Right: int16(binary.LittleEndian.Uint16(d.buf[2:])),
	}, true
}

// NumChannels is always 2; go-mp3 duplicates mono streams
func (d *MP3Decoder) NumChannels() uint8 { return 2 }
func (d *MP3Decoder) SampleRate() uint16 { return d.sampleRate }
