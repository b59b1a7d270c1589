// ABOUTME: Decoder view that hides a fixed number of leading frames
// ABOUTME: Applies MP3 encoder delay so frame 0 is the first audible frame
package decode

import (
	"math"

	"github.com/Resonate-Protocol/swfsound/pkg/audio"
)

// Offset presents d with its first skip frames removed. Frame n of the
// Offset is frame skip+n of d.
type Offset struct {
	d    SeekableDecoder
	skip uint32
}

// NewOffset wraps d and positions it on its first visible frame
func NewOffset(d SeekableDecoder, skip uint32) *Offset {
	o := &Offset{d: d, skip: skip}
	o.Reset()
	return o
}

func (o *Offset) Next() (audio.Frame, bool) { return o.d.Next() }
func (o *Offset) NumChannels() uint8        { return o.d.NumChannels() }
func (o *Offset) SampleRate() uint16        { return o.d.SampleRate() }

// Reset rewinds to the first visible frame
func (o *Offset) Reset() {
	o.d.SeekToSampleFrame(o.skip)
}

// SeekToSampleFrame seeks the wrapped decoder past the hidden frames
func (o *Offset) SeekToSampleFrame(n uint32) {
	if n > math.MaxUint32-o.skip {
		// Past any representable end
		o.d.SeekToSampleFrame(math.MaxUint32)
		return
	}
	o.d.SeekToSampleFrame(o.skip + n)
}
