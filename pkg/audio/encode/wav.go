// ABOUTME: WAV file writer for decoded frames
// ABOUTME: Streams frames through go-audio's WAV encoder
package encode

import (
	"fmt"
	"io"

	"github.com/Resonate-Protocol/swfsound/pkg/audio"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVWriter writes frames as a PCM WAV file
type WAVWriter struct {
	enc      *wav.Encoder
	format   *goaudio.Format
	bitDepth int
	frames   int
	closed   bool
}

// NewWAVWriter creates a writer; the header sizes are filled in by Close
func NewWAVWriter(w io.WriteSeeker, sampleRate, channels, bitDepth int) (*WAVWriter, error) {
	if bitDepth != 8 && bitDepth != 16 {
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 8, 16)", bitDepth)
	}
	if channels != 1 && channels != 2 {
		return nil, fmt.Errorf("unsupported channel count: %d (supported: 1, 2)", channels)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("unsupported sample rate: %d", sampleRate)
	}

	return &WAVWriter{
		enc: wav.NewEncoder(w, sampleRate, bitDepth, channels, 1), // 1 = PCM
		format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		bitDepth: bitDepth,
	}, nil
}

// WriteFrames encodes and appends frames
func (ww *WAVWriter) WriteFrames(frames []audio.Frame) error {
	if ww.closed {
		return fmt.Errorf("wav writer closed")
	}
	if err := ww.enc.Write(ww.buffer(frames)); err != nil {
		return fmt.Errorf("failed to write wav data: %w", err)
	}
	ww.frames += len(frames)
	return nil
}

// buffer converts frames to interleaved samples at the file's bit depth.
// 8-bit WAV samples are unsigned.
func (ww *WAVWriter) buffer(frames []audio.Frame) *goaudio.IntBuffer {
	data := make([]int, 0, len(frames)*ww.format.NumChannels)
	for _, f := range frames {
		if ww.format.NumChannels == 1 {
			data = append(data, ww.sample(f.Mono()))
			continue
		}
		data = append(data, ww.sample(f.Left), ww.sample(f.Right))
	}
	return &goaudio.IntBuffer{
		Format:         ww.format,
		Data:           data,
		SourceBitDepth: ww.bitDepth,
	}
}

func (ww *WAVWriter) sample(s int16) int {
	if ww.bitDepth == 8 {
		return int(audio.SampleToUint8(s))
	}
	return int(s)
}

// Frames returns the number of frames written so far
func (ww *WAVWriter) Frames() int {
	return ww.frames
}

// Close rewrites the header with the final sizes. It does not close the
// underlying writer.
func (ww *WAVWriter) Close() error {
	if ww.closed {
		return nil
	}
	ww.closed = true

	// The encoder emits its header on the first write
	if ww.frames == 0 {
		if err := ww.enc.Write(ww.buffer(nil)); err != nil {
			return fmt.Errorf("failed to write wav header: %w", err)
		}
	}
	if err := ww.enc.Close(); err != nil {
		return fmt.Errorf("failed to finish wav file: %w", err)
	}
	return nil
}
