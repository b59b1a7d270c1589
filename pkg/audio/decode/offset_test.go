// ABOUTME: Tests for the leading-frame offset wrapper
// ABOUTME: Checks hidden frames, seek equivalence and overflow clamping
package decode

import (
	"math"
	"testing"

	"github.com/Resonate-Protocol/swfsound/pkg/audio"
)

func TestOffset(t *testing.T) {
	tests := []struct {
		name     string
		skip     uint32
		expected []int16
	}{
		{"no offset", 0, []int16{1, 3, 6, 10, 15}},
		{"two hidden", 2, []int16{6, 10, 15}},
		{"all hidden", 5, nil},
		{"past end", 9, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOffset(&accumDecoder{deltas: []int16{1, 2, 3, 4, 5}}, tt.skip)

			var expected []audio.Frame
			for _, v := range tt.expected {
				expected = append(expected, audio.FrameFromMono(v))
			}
			if got := collect(o); !equalFrames(expected, got) {
				t.Errorf("expected %v, got %v", expected, got)
			}

			for n := uint32(0); n <= 6; n++ {
				checkSeekMatchesSkip(t, o, n)
			}
			checkEndIsSticky(t, o)
		})
	}
}

func TestOffset_ResetAndOverflow(t *testing.T) {
	o := NewOffset(&accumDecoder{deltas: []int16{1, 2, 3, 4, 5}}, 1)
	checkResetIdempotent(t, o)

	o.SeekToSampleFrame(math.MaxUint32)
	if _, ok := o.Next(); ok {
		t.Error("expected end of stream after seeking to the last representable frame")
	}

	o.Reset()
	f, ok := o.Next()
	if !ok || f.Left != 3 {
		t.Errorf("expected 3 after reset, got %+v (ok=%v)", f, ok)
	}
}
