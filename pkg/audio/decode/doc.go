// ABOUTME: Audio decoder package for multiple codec support
// ABOUTME: Provides Decoder interfaces and implementations for PCM, ADPCM, MP3, FLAC
// Package decode provides pull-based audio decoders for various codecs.
//
// Supports: PCM (8-bit and 16-bit), SWF ADPCM, MP3, FLAC
//
// All decoders implement the Decoder interface and produce stereo
// audio.Frame values one at a time. Mono streams duplicate each sample
// into both channels. End of stream is sticky.
//
// Decoders that can restart implement SeekableDecoder. Backends without
// random access seek with SkipTo; PCM over an io.ReadSeeker and FLAC
// override it with direct positioning.
//
// Example:
//
//	decoder, err := decode.New(r, format)
//	for frame, ok := decoder.Next(); ok; frame, ok = decoder.Next() {
//	    ...
//	}
package decode
