// ABOUTME: Test helpers for building SWF tag streams in memory
// ABOUTME: Used by tests across packages that need container fixtures
// Package swftest builds small SWF fixtures for tests.
package swftest

import (
	"encoding/binary"

	"github.com/Resonate-Protocol/swfsound/pkg/swf"
)

// Tag encodes a record with a short header when the body allows it
func Tag(code swf.TagCode, body []byte) []byte {
	if len(body) < 0x3f {
		return TagWithLength(code, len(body), body)
	}
	return LongTag(code, body)
}

// LongTag encodes a record with a 32-bit length field
func LongTag(code swf.TagCode, body []byte) []byte {
	out := make([]byte, 6, 6+len(body))
	binary.LittleEndian.PutUint16(out, uint16(code)<<6|0x3f)
	binary.LittleEndian.PutUint32(out[2:], uint32(len(body)))
	return append(out, body...)
}

// TagWithLength encodes a short header declaring length regardless of
// len(body), for building truncated containers.
func TagWithLength(code swf.TagCode, length int, body []byte) []byte {
	out := make([]byte, 2, 2+len(body))
	binary.LittleEndian.PutUint16(out, uint16(code)<<6|uint16(length&0x3f))
	return append(out, body...)
}

// ShowFrame encodes an empty ShowFrame tag
func ShowFrame() []byte {
	return Tag(swf.TagShowFrame, nil)
}

// StreamBlock encodes a SoundStreamBlock with a zeroed 4-byte block
// header in front of payload.
func StreamBlock(payload ...byte) []byte {
	body := append(make([]byte, 4), payload...)
	return Tag(swf.TagSoundStreamBlock, body)
}

// StreamHead encodes a SoundStreamHead2 tag
func StreamHead(compression swf.SoundCompression, rateIndex int, is16Bit, stereo bool, samplesPerBlock uint16) []byte {
	flags := byte(compression)<<4 | byte(rateIndex&0x3)<<2
	if is16Bit {
		flags |= 0x2
	}
	if stereo {
		flags |= 0x1
	}
	body := []byte{flags, flags, 0, 0}
	binary.LittleEndian.PutUint16(body[2:], samplesPerBlock)
	if compression == swf.SoundMP3 {
		body = append(body, 0, 0)
	}
	return Tag(swf.TagSoundStreamHead2, body)
}

// MP3StreamHead encodes a 16-bit MP3 SoundStreamHead2 carrying latency
// seek frames
func MP3StreamHead(rateIndex int, stereo bool, samplesPerBlock uint16, latency int16) []byte {
	tag := StreamHead(swf.SoundMP3, rateIndex, true, stereo, samplesPerBlock)
	binary.LittleEndian.PutUint16(tag[len(tag)-2:], uint16(latency))
	return tag
}

// SilentMP3Frame returns one MPEG1 Layer III frame, 128kbps 44100Hz
// stereo, with empty side info so it decodes to silence
func SilentMP3Frame() []byte {
	f := make([]byte, 417)
	copy(f, []byte{0xFF, 0xFB, 0x90, 0x04})
	return f
}

// DefineSound encodes a DefineSound tag
func DefineSound(id uint16, compression swf.SoundCompression, rateIndex int, is16Bit, stereo bool, sampleCount uint32, data []byte) []byte {
	flags := byte(compression)<<4 | byte(rateIndex&0x3)<<2
	if is16Bit {
		flags |= 0x2
	}
	if stereo {
		flags |= 0x1
	}
	body := make([]byte, 7, 7+len(data))
	binary.LittleEndian.PutUint16(body, id)
	body[2] = flags
	binary.LittleEndian.PutUint32(body[3:], sampleCount)
	return Tag(swf.TagDefineSound, append(body, data...))
}

// Timeline concatenates encoded tags
func Timeline(tags ...[]byte) []byte {
	var out []byte
	for _, t := range tags {
		out = append(out, t...)
	}
	return out
}

// Movie wraps a timeline in an uncompressed FWS header with an empty
// frame RECT, 24fps and the given frame count.
func Movie(version uint8, numFrames uint16, timeline []byte) []byte {
	// RECT with nbits=0 packs into a single byte
	header := []byte{'F', 'W', 'S', version, 0, 0, 0, 0, 0x00, 0x00, 24, 0, 0}
	binary.LittleEndian.PutUint16(header[11:], numFrames)
	out := append(header, timeline...)
	binary.LittleEndian.PutUint32(out[4:], uint32(len(out)))
	return out
}
