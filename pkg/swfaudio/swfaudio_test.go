// ABOUTME: Tests for SWF sound entry points
// ABOUTME: Covers loading, stream sound selection and event sounds
package swfaudio

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Resonate-Protocol/swfsound/pkg/audio"
	"github.com/Resonate-Protocol/swfsound/pkg/audio/decode"
	"github.com/Resonate-Protocol/swfsound/pkg/swf"
	"github.com/Resonate-Protocol/swfsound/pkg/swf/swftest"
)

func collect(d decode.Decoder) []audio.Frame {
	var frames []audio.Frame
	for {
		f, ok := d.Next()
		if !ok {
			return frames
		}
		frames = append(frames, f)
	}
}

func writeMovie(t *testing.T, timeline []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movie.swf")
	if err := os.WriteFile(path, swftest.Movie(10, 3, timeline), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeMovie(t, swftest.Timeline(swftest.ShowFrame(), swftest.ShowFrame()))

	movie, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if movie.Version != 10 {
		t.Errorf("expected version 10, got %d", movie.Version)
	}
	if movie.NumFrames != 3 {
		t.Errorf("expected 3 frames, got %d", movie.NumFrames)
	}
	if movie.FrameRate != 24 {
		t.Errorf("expected 24 fps, got %v", movie.FrameRate)
	}
	if movie.Tags.Len() != 4 {
		t.Errorf("expected 4 tag bytes, got %d", movie.Tags.Len())
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.swf")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.swf")
	if err := os.WriteFile(path, []byte("not a movie"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	_, err := Load(path)
	if !errors.Is(err, swf.ErrInvalidSignature) {
		t.Errorf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestOpenStream_NoStreamHead(t *testing.T) {
	movie, err := swf.Decompress(swftest.Movie(8, 1, swftest.Timeline(
		swftest.StreamBlock(1, 2, 3),
		swftest.ShowFrame(),
	)))
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}

	dec, err := OpenStream(movie)
	if !errors.Is(err, swf.ErrNoSoundStream) {
		t.Errorf("expected ErrNoSoundStream, got %v", err)
	}
	if dec != nil {
		t.Error("expected nil decoder")
	}
}

func TestOpenTimelineStream_Unsupported(t *testing.T) {
	tags := swf.NewSlice(swftest.Timeline(
		swftest.StreamHead(swf.SoundPCMLittleEndian, 2, true, false, 100),
		swftest.StreamBlock(1, 2),
	))

	_, err := OpenTimelineStream(tags)
	if err == nil {
		t.Fatal("expected error for PCM stream, got nil")
	}
	expected := "unsupported stream compression: pcm-le"
	if err.Error() != expected {
		t.Errorf("expected error %q, got %q", expected, err.Error())
	}
}

func TestOpenTimelineStream_UndecodableMP3(t *testing.T) {
	tags := swf.NewSlice(swftest.Timeline(
		swftest.StreamHead(swf.SoundMP3, 3, true, true, 1152),
		swftest.StreamBlock(0, 0, 0, 0),
		swftest.ShowFrame(),
	))

	_, err := OpenTimelineStream(tags)
	if err == nil {
		t.Fatal("expected error for undecodable MP3 stream, got nil")
	}
	if !strings.Contains(err.Error(), "failed to open stream sound") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestOpenStream_ConcatenatesBlocks(t *testing.T) {
	// 8-bit mono PCM keeps every demuxed byte a frame
	tags := swf.NewSlice(swftest.Timeline(
		swftest.ShowFrame(),
		swftest.StreamBlock(128, 129),
		swftest.ShowFrame(),
		swftest.Tag(swf.TagDefineSound, []byte{0xAA}),
		swftest.StreamBlock(130),
		swftest.ShowFrame(),
		swftest.StreamBlock(131, 132),
	))
	format := audio.Format{Codec: "pcm", SampleRate: 11025, Channels: 1, BitDepth: 8}

	dec, err := openStream(tags, format)
	if err != nil {
		t.Fatalf("openStream failed: %v", err)
	}

	frames := collect(dec)
	if len(frames) != 5 {
		t.Fatalf("expected 5 frames, got %d", len(frames))
	}
	for i, f := range frames {
		want := audio.SampleFromUint8(uint8(128 + i))
		if f.Left != want {
			t.Errorf("frame %d: expected %d, got %d", i, want, f.Left)
		}
	}

	dec.SeekToSampleFrame(3)
	f, ok := dec.Next()
	if !ok || f.Left != audio.SampleFromUint8(131) {
		t.Errorf("expected frame from byte 131 after seek, got %+v ok=%v", f, ok)
	}
}

func TestOpenSprite(t *testing.T) {
	sprite := append([]byte{7, 0, 1, 0}, swftest.Timeline(
		swftest.StreamHead(swf.SoundADPCM, 1, true, false, 10),
		swftest.ShowFrame(),
	)...)
	movie, err := swf.Decompress(swftest.Movie(8, 1, swftest.Timeline(
		swftest.Tag(swf.TagDefineSprite, sprite),
		swftest.ShowFrame(),
	)))
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}

	tags, ok := movie.Sprite(7)
	if !ok {
		t.Fatal("expected sprite 7")
	}
	_, err = OpenTimelineStream(tags)
	if err == nil || err.Error() != "unsupported stream compression: adpcm" {
		t.Errorf("expected sprite stream head to be found, got %v", err)
	}
}

func TestOpenSound(t *testing.T) {
	pcm := []byte{0x10, 0x00, 0x20, 0x00, 0x30, 0x00}
	movie, err := swf.Decompress(swftest.Movie(8, 1, swftest.Timeline(
		swftest.DefineSound(3, swf.SoundPCMLittleEndian, 3, true, false, 3, pcm),
		swftest.ShowFrame(),
	)))
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}

	sounds, err := swf.DefineSounds(movie.Tags)
	if err != nil {
		t.Fatalf("DefineSounds failed: %v", err)
	}
	if len(sounds) != 1 {
		t.Fatalf("expected 1 sound, got %d", len(sounds))
	}

	dec, err := OpenSound(sounds[0])
	if err != nil {
		t.Fatalf("OpenSound failed: %v", err)
	}
	if dec.SampleRate() != 44100 || dec.NumChannels() != 1 {
		t.Errorf("expected 44100Hz mono, got %dHz %dch", dec.SampleRate(), dec.NumChannels())
	}

	frames := collect(dec)
	expected := []int16{0x10, 0x20, 0x30}
	if len(frames) != len(expected) {
		t.Fatalf("expected %d frames, got %d", len(expected), len(frames))
	}
	for i, want := range expected {
		if frames[i] != audio.FrameFromMono(want) {
			t.Errorf("frame %d: expected %d, got %+v", i, want, frames[i])
		}
	}

	dec.SeekToSampleFrame(2)
	if f, ok := dec.Next(); !ok || f.Left != 0x30 {
		t.Errorf("expected 0x30 after seek, got %+v ok=%v", f, ok)
	}
}

func TestOpenSound_Unsupported(t *testing.T) {
	sound := &swf.DefineSound{
		ID:     9,
		Format: swf.SoundFormat{Compression: swf.SoundNellymoser, SampleRate: 22050},
	}

	_, err := OpenSound(sound)
	if err == nil {
		t.Fatal("expected error for nellymoser sound")
	}
	expected := "sound 9: unsupported sound compression: nellymoser"
	if err.Error() != expected {
		t.Errorf("expected error %q, got %q", expected, err.Error())
	}
}

func TestOpenTimelineStream_MP3(t *testing.T) {
	frame := swftest.SilentMP3Frame()

	tests := []struct {
		name    string
		latency int16
	}{
		{"no latency", 0},
		{"latency hidden", 576},
		{"negative latency ignored", -5},
	}

	var total uint32
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The frame is split across two blocks
			tags := swf.NewSlice(swftest.Timeline(
				swftest.MP3StreamHead(3, true, 1152, tt.latency),
				swftest.StreamBlock(frame[:200]...),
				swftest.ShowFrame(),
				swftest.StreamBlock(frame[200:]...),
				swftest.ShowFrame(),
			))

			dec, err := OpenTimelineStream(tags)
			if err != nil {
				t.Fatalf("OpenTimelineStream failed: %v", err)
			}
			if dec.SampleRate() != 44100 || dec.NumChannels() != 2 {
				t.Errorf("expected 44100Hz 2ch, got %dHz %dch", dec.SampleRate(), dec.NumChannels())
			}

			n := uint32(len(collect(dec)))
			if tt.latency <= 0 {
				if n <= 1000 {
					t.Fatalf("expected more than 1000 frames, got %d", n)
				}
				total = n
			} else if n != total-uint32(tt.latency) {
				t.Errorf("expected %d frames after latency, got %d", total-uint32(tt.latency), n)
			}

			dec.SeekToSampleFrame(1000)
			if got := uint32(len(collect(dec))); got != n-1000 {
				t.Errorf("expected %d frames after seeking to 1000, got %d", n-1000, got)
			}
			for i := 0; i < 3; i++ {
				if _, ok := dec.Next(); ok {
					t.Fatal("expected end of stream to repeat")
				}
			}

			dec.Reset()
			if got := uint32(len(collect(dec))); got != n {
				t.Errorf("expected %d frames after reset, got %d", n, got)
			}
		})
	}
}

func TestOpenSound_MP3SeekSamples(t *testing.T) {
	frame := swftest.SilentMP3Frame()

	open := func(seekSamples int16) uint32 {
		t.Helper()
		data := make([]byte, 2, 2+len(frame))
		data[0] = byte(seekSamples)
		data[1] = byte(uint16(seekSamples) >> 8)
		movie, err := swf.Decompress(swftest.Movie(8, 1, swftest.Timeline(
			swftest.DefineSound(4, swf.SoundMP3, 3, true, true, 1152, append(data, frame...)),
			swftest.ShowFrame(),
		)))
		if err != nil {
			t.Fatalf("Decompress failed: %v", err)
		}
		sounds, err := swf.DefineSounds(movie.Tags)
		if err != nil || len(sounds) != 1 {
			t.Fatalf("expected 1 sound, got %d (%v)", len(sounds), err)
		}
		if sounds[0].SeekSamples != seekSamples {
			t.Errorf("expected seek samples %d, got %d", seekSamples, sounds[0].SeekSamples)
		}

		dec, err := OpenSound(sounds[0])
		if err != nil {
			t.Fatalf("OpenSound failed: %v", err)
		}
		return uint32(len(collect(dec)))
	}

	full := open(0)
	if full == 0 {
		t.Fatal("expected decoded frames")
	}
	if got := open(100); got != full-100 {
		t.Errorf("expected %d frames with 100 seek samples, got %d", full-100, got)
	}
}
