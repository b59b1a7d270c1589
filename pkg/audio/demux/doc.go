// ABOUTME: Stream sound demuxer package
// ABOUTME: Turns SWF timeline tags into a byte stream for decoders
// Package demux extracts stream sound data from SWF timelines.
//
// StreamTagDemuxer walks a timeline's tags and yields the payload bytes
// of every SoundStreamBlock in order, skipping each block's 4-byte MP3
// header. ShowFrame advances the frame count and End stops the scan.
// A truncated timeline ends the stream without an error; Err reports it.
//
// IterReader adapts any ByteSource to io.Reader so byte-oriented codecs
// such as go-mp3 can read the demuxed stream. StreamReader builds one over
// a fresh demuxer, so calling it again restarts from the first block.
//
// Example:
//
//	dec, err := decode.New(demux.StreamReader(tags), format)
package demux
