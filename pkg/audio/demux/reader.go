// ABOUTME: io.Reader adapter over pull-based byte sources
// ABOUTME: Lets byte-oriented codecs consume demuxed stream data
package demux

import (
	"io"

	"github.com/Resonate-Protocol/swfsound/pkg/swf"
)

// ByteSource is a lazily pulled sequence of bytes. ok is false once the
// sequence is exhausted.
type ByteSource interface {
	NextByte() (b byte, ok bool)
}

// ByteSourceFunc adapts a function to ByteSource
type ByteSourceFunc func() (byte, bool)

// NextByte calls f
func (f ByteSourceFunc) NextByte() (byte, bool) {
	return f()
}

// IterReader fills read buffers from a ByteSource one pull at a time. It
// buffers nothing itself.
type IterReader struct {
	src ByteSource
}

// NewIterReader wraps src
func NewIterReader(src ByteSource) *IterReader {
	return &IterReader{src: src}
}

// Read fills p with as many bytes as the source can supply. Short reads
// return a nil error; io.EOF is returned only with n == 0, once the source
// is exhausted. No other error is ever returned.
func (r *IterReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		b, ok := r.src.NextByte()
		if !ok {
			break
		}
		p[n] = b
		n++
	}
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

// StreamReader returns a reader over the stream sound payload of a
// timeline. Each call starts a fresh scan, so it doubles as an opener for
// seekable decoders.
func StreamReader(tags swf.Slice) *IterReader {
	return NewIterReader(NewStreamTagDemuxer(tags))
}
