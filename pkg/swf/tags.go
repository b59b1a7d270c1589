// ABOUTME: Tag record scanning for SWF timelines
// ABOUTME: Reads tag headers and drives a callback over each record in order
package swf

import (
	"encoding/binary"
	"fmt"
	"io"
)

// TagCode identifies a tag record type
type TagCode uint16

const (
	TagEnd              TagCode = 0
	TagShowFrame        TagCode = 1
	TagDefineSound      TagCode = 14
	TagSoundStreamHead  TagCode = 18
	TagSoundStreamBlock TagCode = 19
	TagDefineSprite     TagCode = 39
	TagSoundStreamHead2 TagCode = 45
)

func (c TagCode) String() string {
	switch c {
	case TagEnd:
		return "End"
	case TagShowFrame:
		return "ShowFrame"
	case TagDefineSound:
		return "DefineSound"
	case TagSoundStreamHead:
		return "SoundStreamHead"
	case TagSoundStreamBlock:
		return "SoundStreamBlock"
	case TagDefineSprite:
		return "DefineSprite"
	case TagSoundStreamHead2:
		return "SoundStreamHead2"
	default:
		return fmt.Sprintf("Tag(%d)", uint16(c))
	}
}

// Short tag headers store the length in the low 6 bits; this value means
// a 32-bit length follows.
const longTagLength = 0x3f

// Tag is one scanned record. Offset is the body position relative to the
// slice the Reader was created over.
type Tag struct {
	Code   TagCode
	Length int
	Offset int
}

// TruncatedTagError is returned when a tag declares more body bytes than
// the container holds.
type TruncatedTagError struct {
	Code      TagCode
	Offset    int
	Length    int
	Remaining int
}

func (e *TruncatedTagError) Error() string {
	return fmt.Sprintf("truncated %s tag at offset %d: declared %d bytes, %d remaining",
		e.Code, e.Offset, e.Length, e.Remaining)
}

// Reader walks tag records in a Slice
type Reader struct {
	s   Slice
	buf []byte
	pos int
}

// NewReader creates a Reader positioned at the first tag of s
func NewReader(s Slice) *Reader {
	return &Reader{s: s, buf: s.Bytes()}
}

// Pos returns the current offset relative to the reader's slice
func (r *Reader) Pos() int {
	return r.pos
}

// Remaining returns the number of unread bytes
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

// ReadTagHeader reads a short or long tag header and leaves the reader at
// the start of the body.
func (r *Reader) ReadTagHeader() (Tag, error) {
	if r.Remaining() < 2 {
		return Tag{}, fmt.Errorf("reading tag header at offset %d: %w", r.pos, io.ErrUnexpectedEOF)
	}
	codeAndLength := binary.LittleEndian.Uint16(r.buf[r.pos:])
	r.pos += 2

	code := TagCode(codeAndLength >> 6)
	length := int(codeAndLength & longTagLength)
	if length == longTagLength {
		if r.Remaining() < 4 {
			return Tag{}, fmt.Errorf("reading long length of %s tag at offset %d: %w", code, r.pos, io.ErrUnexpectedEOF)
		}
		long := binary.LittleEndian.Uint32(r.buf[r.pos:])
		r.pos += 4
		if long > uint32(len(r.buf)) {
			// Clamp so Length stays a sane int; the bounds check still fails
			long = uint32(len(r.buf)) + 1
		}
		length = int(long)
	}

	return Tag{Code: code, Length: length, Offset: r.pos}, nil
}

// Body returns the tag body bytes without copying
func (r *Reader) Body(tag Tag) ([]byte, error) {
	if tag.Offset < 0 || tag.Length > len(r.buf)-tag.Offset {
		return nil, &TruncatedTagError{
			Code:      tag.Code,
			Offset:    tag.Offset,
			Length:    tag.Length,
			Remaining: len(r.buf) - tag.Offset,
		}
	}
	return r.buf[tag.Offset : tag.Offset+tag.Length : tag.Offset+tag.Length], nil
}

// BodySlice returns the tag body as a Slice sharing the container bytes
func (r *Reader) BodySlice(tag Tag) (Slice, error) {
	sub, ok := r.s.Sub(tag.Offset, tag.Length)
	if !ok {
		return Slice{}, &TruncatedTagError{
			Code:      tag.Code,
			Offset:    tag.Offset,
			Length:    tag.Length,
			Remaining: r.s.Len() - tag.Offset,
		}
	}
	return sub, nil
}

// TagFunc is called once per tag with the reader positioned at the body
type TagFunc func(r *Reader, tag Tag) error

// DecodeTags drives fn over the records from the reader's position.
//
// It returns true right after handling a tag whose code equals stop, leaving
// the reader at the following tag so a later call resumes there. It returns
// false with a nil error at the End tag or when the data runs out. A tag whose
// body runs past the data yields *TruncatedTagError and fn is not called.
func DecodeTags(r *Reader, fn TagFunc, stop TagCode) (bool, error) {
	for r.Remaining() > 0 {
		tag, err := r.ReadTagHeader()
		if err != nil {
			return false, err
		}

		if tag.Code == TagEnd {
			r.pos = len(r.buf)
			return false, nil
		}

		if tag.Length > r.Remaining() {
			return false, &TruncatedTagError{
				Code:      tag.Code,
				Offset:    tag.Offset,
				Length:    tag.Length,
				Remaining: r.Remaining(),
			}
		}

		if err := fn(r, tag); err != nil {
			return false, fmt.Errorf("handling %s tag at offset %d: %w", tag.Code, tag.Offset, err)
		}

		r.pos = tag.Offset + tag.Length
		if tag.Code == stop {
			return true, nil
		}
	}
	return false, nil
}
