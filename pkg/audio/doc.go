// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Frame, Format types and sample conversion functions
// Package audio provides fundamental audio types shared by the decoders.
//
// This package defines core types used throughout the swfsound library:
//   - Frame: one stereo sample pair (left, right) of signed 16-bit samples
//   - Format: Describes an encoded stream (codec, sample rate, channels, bit depth)
//
// It also provides utilities for converting between sample formats:
//   - unsigned 8-bit ↔ signed 16-bit conversions
//   - saturating int32 → int16 conversion
//
// Example:
//
//	format := audio.Format{
//	    Codec:      "pcm",
//	    SampleRate: 44100,
//	    Channels:   2,
//	    BitDepth:   16,
//	}
//
//	frame := audio.FrameFromMono(audio.SampleFromUint8(0xC0))
package audio
