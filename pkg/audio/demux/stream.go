// ABOUTME: Stream sound demuxer for SWF timelines
// ABOUTME: Yields the payload bytes of every SoundStreamBlock in tag order
package demux

import (
	"github.com/Resonate-Protocol/swfsound/pkg/swf"
)

// blockHeaderSize is the per-block prefix dropped before payload bytes are
// exposed (sample count and seek samples for MP3 streams).
const blockHeaderSize = 4

// StreamTagDemuxer pulls stream sound bytes out of a timeline one byte at
// a time. Blocks are concatenated with no separator; framing across block
// boundaries is left to the decoder.
//
// Malformed input ends the stream the same way clean exhaustion does. Err
// reports which of the two happened.
type StreamTagDemuxer struct {
	tags swf.Slice

	// Created on the first pull
	reader *swf.Reader

	block  []byte
	cursor int
	frame  uint32
	done   bool
	err    error
}

// NewStreamTagDemuxer creates a demuxer over a timeline
func NewStreamTagDemuxer(tags swf.Slice) *StreamTagDemuxer {
	return &StreamTagDemuxer{tags: tags}
}

// NextByte returns the next payload byte, or false once the timeline holds
// no further stream blocks. Exhaustion is permanent.
func (d *StreamTagDemuxer) NextByte() (byte, bool) {
	for d.cursor >= len(d.block) {
		if !d.nextBlock() {
			return 0, false
		}
	}
	b := d.block[d.cursor]
	d.cursor++
	return b, true
}

// nextBlock scans forward to the next SoundStreamBlock and makes it the
// current buffer. It reports false when scanning is finished for good.
func (d *StreamTagDemuxer) nextBlock() bool {
	if d.done {
		return false
	}
	if d.reader == nil {
		d.reader = swf.NewReader(d.tags)
	}

	d.block = nil
	d.cursor = 0

	found, err := swf.DecodeTags(d.reader, d.handleTag, swf.TagSoundStreamBlock)
	if err != nil || !found {
		d.done = true
		d.err = err
		return false
	}
	return true
}

func (d *StreamTagDemuxer) handleTag(r *swf.Reader, tag swf.Tag) error {
	switch tag.Code {
	case swf.TagShowFrame:
		d.frame++
	case swf.TagSoundStreamBlock:
		body, err := r.Body(tag)
		if err != nil {
			return err
		}
		if len(body) <= blockHeaderSize {
			d.block = nil
		} else {
			d.block = body[blockHeaderSize:]
		}
	}
	return nil
}

// Frame returns the number of ShowFrame tags scanned so far
func (d *StreamTagDemuxer) Frame() uint32 {
	return d.frame
}

// Done reports whether scanning has finished
func (d *StreamTagDemuxer) Done() bool {
	return d.done
}

// Err returns nil if the stream ended cleanly, or the truncation or scan
// error that ended it. The byte stream itself never reports errors.
func (d *StreamTagDemuxer) Err() error {
	return d.err
}
