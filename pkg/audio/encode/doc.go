// ABOUTME: Audio encoder package for writing decoded frames
// ABOUTME: Provides Encoder interface, PCM encoder and WAV writer
// Package encode provides encoders for decoded audio frames.
//
// Supports: PCM (8-bit and 16-bit, mono or stereo), WAV files via go-audio
//
// Example:
//
//	encoder, err := encode.NewPCM(format)
//	data, err := encoder.Encode(frames)
package encode
