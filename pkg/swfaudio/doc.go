// ABOUTME: Package swfaudio documentation
// ABOUTME: Describes loading SWF files and opening their sounds
// Package swfaudio ties the SWF container, the stream demuxer and the
// decoders together.
//
// Example:
//
//	movie, err := swfaudio.Load("intro.swf")
//	dec, err := swfaudio.OpenStream(movie)
//	dec.SeekToSampleFrame(44100)
//	frame, ok := dec.Next()
package swfaudio
