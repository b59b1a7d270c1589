// ABOUTME: PCM audio encoder
// ABOUTME: Encodes frames to interleaved 8-bit or 16-bit PCM bytes
package encode

import (
	"encoding/binary"
	"fmt"

	"github.com/Resonate-Protocol/swfsound/pkg/audio"
)

// PCMEncoder encodes PCM audio
type PCMEncoder struct {
	bitDepth int
	channels int
}

// NewPCM creates a new PCM encoder
func NewPCM(format audio.Format) (*PCMEncoder, error) {
	if format.Codec != "pcm" {
		return nil, fmt.Errorf("invalid codec for PCM encoder: %s", format.Codec)
	}

	if format.BitDepth != 8 && format.BitDepth != 16 {
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 8, 16)", format.BitDepth)
	}

	if format.Channels != 1 && format.Channels != 2 {
		return nil, fmt.Errorf("unsupported channel count: %d (supported: 1, 2)", format.Channels)
	}

	return &PCMEncoder{
		bitDepth: format.BitDepth,
		channels: format.Channels,
	}, nil
}

// FrameSize returns the number of bytes one encoded frame takes
func (e *PCMEncoder) FrameSize() int {
	return e.channels * e.bitDepth / 8
}

// Encode converts frames to PCM bytes. Mono output averages both channels.
func (e *PCMEncoder) Encode(frames []audio.Frame) ([]byte, error) {
	output := make([]byte, 0, len(frames)*e.FrameSize())
	for _, f := range frames {
		if e.channels == 1 {
			output = e.appendSample(output, f.Mono())
			continue
		}
		output = e.appendSample(output, f.Left)
		output = e.appendSample(output, f.Right)
	}
	return output, nil
}

func (e *PCMEncoder) appendSample(out []byte, s int16) []byte {
	if e.bitDepth == 8 {
		return append(out, audio.SampleToUint8(s))
	}
	return binary.LittleEndian.AppendUint16(out, uint16(s))
}

// Close releases resources
func (e *PCMEncoder) Close() error {
	return nil
}
