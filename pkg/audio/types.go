// ABOUTME: Audio type definitions
// ABOUTME: Defines sample frames, stream formats and sample conversions
package audio

const (
	// 16-bit sample range
	MaxInt16 = 32767
	MinInt16 = -32768
)

// Frame is one playback unit: a left and right signed 16-bit sample.
// Mono sources duplicate the sample into both channels.
type Frame struct {
	Left  int16
	Right int16
}

// FrameFromMono builds a frame with the same sample on both channels
func FrameFromMono(sample int16) Frame {
	return Frame{Left: sample, Right: sample}
}

// Mono averages both channels into a single sample
func (f Frame) Mono() int16 {
	return int16((int32(f.Left) + int32(f.Right)) / 2)
}

// Format describes an encoded audio stream
type Format struct {
	Codec      string
	SampleRate int
	Channels   int
	BitDepth   int // PCM only: 8 or 16
}

// SampleFromUint8 converts an unsigned 8-bit PCM sample to int16
func SampleFromUint8(sample uint8) int16 {
	// 8-bit PCM is unsigned with 128 as silence
	return int16(int(sample)-128) << 8
}

// SampleToUint8 converts an int16 sample to unsigned 8-bit PCM
func SampleToUint8(sample int16) uint8 {
	return uint8((int(sample) >> 8) + 128)
}

// ClampInt16 saturates a wider intermediate value to the int16 range
func ClampInt16(v int32) int16 {
	if v > MaxInt16 {
		return MaxInt16
	}
	if v < MinInt16 {
		return MinInt16
	}
	return int16(v)
}
