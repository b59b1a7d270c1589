// ABOUTME: Simple linear resampler for converting decoder sample rates
// ABOUTME: Wraps a Decoder and interpolates frames at a new output rate
package resample

import (
	"github.com/Resonate-Protocol/swfsound/pkg/audio"
	"github.com/Resonate-Protocol/swfsound/pkg/audio/decode"
)

// Resampler performs linear interpolation to convert between sample rates.
// It is itself a Decoder, so it can sit anywhere a decoder is expected.
// Output frame k sits at input position k*ratio; output stops after the
// last input frame.
type Resampler struct {
	src        decode.Decoder
	outputRate int
	ratio      float64 // input frames per output frame
	position   float64 // fractional position between prev and next
	prev       audio.Frame
	next       audio.Frame
	hasNext    bool
	primed     bool
	done       bool
}

// New creates a new resampler reading from src
func New(src decode.Decoder, outputRate int) *Resampler {
	return &Resampler{
		src:        src,
		outputRate: outputRate,
		ratio:      float64(src.SampleRate()) / float64(outputRate),
	}
}

// Next returns the next output frame
func (r *Resampler) Next() (audio.Frame, bool) {
	if r.done {
		return audio.Frame{}, false
	}

	if !r.primed {
		r.primed = true
		first, ok := r.src.Next()
		if !ok {
			r.done = true
			return audio.Frame{}, false
		}
		r.prev = first
		r.next, r.hasNext = r.src.Next()
	}

	// Advance the input window until position falls inside it
	for r.position >= 1 {
		if !r.hasNext {
			r.done = true
			return audio.Frame{}, false
		}
		r.position--
		r.prev = r.next
		r.next, r.hasNext = r.src.Next()
	}

	// Past the last input frame
	if !r.hasNext && r.position > 0 {
		r.done = true
		return audio.Frame{}, false
	}

	out := r.prev
	if r.hasNext {
		out = interpolate(r.prev, r.next, r.position)
	}
	r.position += r.ratio
	return out, true
}

func interpolate(a, b audio.Frame, frac float64) audio.Frame {
	return audio.Frame{
		Left:  int16(float64(a.Left)*(1.0-frac) + float64(b.Left)*frac),
		Right: int16(float64(a.Right)*(1.0-frac) + float64(b.Right)*frac),
	}
}

// NumChannels returns the source channel count
func (r *Resampler) NumChannels() uint8 { return r.src.NumChannels() }

// SampleRate returns the output sample rate
func (r *Resampler) SampleRate() uint16 { return uint16(r.outputRate) }

func (r *Resampler) clear() {
	r.position = 0.0
	r.prev = audio.Frame{}
	r.next = audio.Frame{}
	r.hasNext = false
	r.primed = false
	r.done = false
}

// SeekableResampler is a Resampler over a source that can rewind
type SeekableResampler struct {
	*Resampler
	src decode.SeekableDecoder
}

// NewSeekable creates a resampler that supports Reset and seeking
func NewSeekable(src decode.SeekableDecoder, outputRate int) *SeekableResampler {
	return &SeekableResampler{
		Resampler: New(src, outputRate),
		src:       src,
	}
}

// Reset rewinds the source and clears the interpolation state
func (r *SeekableResampler) Reset() {
	r.src.Reset()
	r.clear()
}

// SeekToSampleFrame seeks in output frames using the default skip seek
func (r *SeekableResampler) SeekToSampleFrame(n uint32) {
	decode.SkipTo(r, n)
}
