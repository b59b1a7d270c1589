// ABOUTME: Decoder capability interfaces
// ABOUTME: Common pull-based interface for all audio decoders plus seeking
package decode

import (
	"fmt"
	"io"

	"github.com/Resonate-Protocol/swfsound/pkg/audio"
)

// Decoder produces sample frames on demand
type Decoder interface {
	// Next returns the next frame, or false at end of stream. Once false
	// is returned every later call returns false too.
	Next() (audio.Frame, bool)

	// NumChannels returns 1 or 2
	NumChannels() uint8

	// SampleRate returns the sample rate in Hz
	SampleRate() uint16
}

// Rewinder is a Decoder that can restart from its first frame
type Rewinder interface {
	Decoder

	// Reset rewinds to the first frame, rebuilding all decode state
	Reset()
}

// SeekableDecoder adds positioning to a Decoder
type SeekableDecoder interface {
	Rewinder

	// SeekToSampleFrame positions the decoder so the next frame returned
	// is frame n. The result must match Reset followed by discarding n
	// frames.
	SeekToSampleFrame(n uint32)
}

// SkipTo is the default seek: reset, then decode and discard n frames.
// It costs O(n) but works for any codec.
func SkipTo(d Rewinder, n uint32) {
	d.Reset()
	for i := uint32(0); i < n; i++ {
		if _, ok := d.Next(); !ok {
			return
		}
	}
}

// New creates a decoder for the specified format reading from r. PCM over
// an io.ReadSeeker gets the seekable variant.
func New(r io.Reader, format audio.Format) (Decoder, error) {
	var dec Decoder
	var err error

	switch format.Codec {
	case "pcm":
		if rs, ok := r.(io.ReadSeeker); ok {
			dec, err = asDecoder(NewSeekablePCM(rs, format))
		} else {
			dec, err = asDecoder(NewPCM(r, format))
		}
	case "adpcm":
		dec, err = asDecoder(NewADPCM(r, format))
	case "mp3":
		dec, err = asDecoder(NewMP3(r, format))
	case "flac":
		rs, ok := r.(io.ReadSeeker)
		if !ok {
			return nil, fmt.Errorf("flac decoder requires an io.ReadSeeker")
		}
		dec, err = asDecoder(NewFLAC(rs, format))
	default:
		return nil, fmt.Errorf("unsupported codec: %s", format.Codec)
	}

	if err != nil {
		return nil, err
	}
	return dec, nil
}

// asDecoder drops typed nil pointers so a failed constructor yields a nil
// interface
func asDecoder[T Decoder](dec T, err error) (Decoder, error) {
	if err != nil {
		return nil, err
	}
	return dec, nil
}

func validateLayout(format audio.Format) error {
	if format.Channels != 1 && format.Channels != 2 {
		return fmt.Errorf("unsupported channel count: %d (supported: 1, 2)", format.Channels)
	}
	if format.SampleRate <= 0 || format.SampleRate > 0xFFFF {
		return fmt.Errorf("unsupported sample rate: %d", format.SampleRate)
	}
	return nil
}
