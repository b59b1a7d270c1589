// ABOUTME: Tests for SWF header parsing and decompression
// ABOUTME: Covers FWS and CWS containers, sprites and sound tags
package swf_test

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/Resonate-Protocol/swfsound/pkg/swf"
	"github.com/Resonate-Protocol/swfsound/pkg/swf/swftest"
	"github.com/ulikunitz/xz/lzma"
)

func TestDecompress_Uncompressed(t *testing.T) {
	timeline := swftest.Timeline(swftest.ShowFrame(), swftest.Tag(swf.TagEnd, nil))
	data := swftest.Movie(10, 1, timeline)

	movie, err := swf.Decompress(data)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if movie.Compression != swf.CompressionNone {
		t.Errorf("expected no compression, got %s", movie.Compression)
	}
	if movie.Version != 10 {
		t.Errorf("expected version 10, got %d", movie.Version)
	}
	if movie.FrameRate != 24 {
		t.Errorf("expected 24 fps, got %v", movie.FrameRate)
	}
	if movie.NumFrames != 1 {
		t.Errorf("expected 1 frame, got %d", movie.NumFrames)
	}
	if !bytes.Equal(movie.Tags.Bytes(), timeline) {
		t.Errorf("expected tags %v, got %v", timeline, movie.Tags.Bytes())
	}
}

func TestDecompress_Zlib(t *testing.T) {
	timeline := swftest.Timeline(swftest.ShowFrame(), swftest.StreamBlock(0xAA))
	plain := swftest.Movie(8, 1, timeline)

	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	if _, err := zw.Write(plain[8:]); err != nil {
		t.Fatalf("zlib write failed: %v", err)
	}
	zw.Close()

	data := append([]byte{'C', 'W', 'S', 8, 0, 0, 0, 0}, compressed.Bytes()...)
	binary.LittleEndian.PutUint32(data[4:], uint32(len(plain)))

	movie, err := swf.Decompress(data)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if movie.Compression != swf.CompressionZlib {
		t.Errorf("expected zlib compression, got %s", movie.Compression)
	}
	if !bytes.Equal(movie.Tags.Bytes(), timeline) {
		t.Errorf("expected tags %v, got %v", timeline, movie.Tags.Bytes())
	}
}

func TestDecompress_LZMA(t *testing.T) {
	timeline := swftest.Timeline(swftest.ShowFrame(), swftest.StreamBlock(0xAA, 0xBB), swftest.ShowFrame())
	plain := swftest.Movie(13, 2, timeline)
	body := plain[8:]

	tests := []struct {
		name   string
		config lzma.WriterConfig
	}{
		{"unknown size with end marker", lzma.WriterConfig{EOSMarker: true}},
		{"known size", lzma.WriterConfig{SizeInHeader: true, Size: int64(len(body))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var compressed bytes.Buffer
			lw, err := tt.config.NewWriter(&compressed)
			if err != nil {
				t.Fatalf("NewWriter failed: %v", err)
			}
			if _, err := lw.Write(body); err != nil {
				t.Fatalf("lzma write failed: %v", err)
			}
			if err := lw.Close(); err != nil {
				t.Fatalf("lzma close failed: %v", err)
			}
			lz := compressed.Bytes()

			// ZWS keeps the 5 property bytes but replaces the 8-byte size
			// with its own 4-byte compressed length
			data := []byte{'Z', 'W', 'S', 13, 0, 0, 0, 0, 0, 0, 0, 0}
			binary.LittleEndian.PutUint32(data[4:], uint32(len(plain)))
			binary.LittleEndian.PutUint32(data[8:], uint32(len(lz)-13))
			data = append(data, lz[:5]...)
			data = append(data, lz[13:]...)

			movie, err := swf.Decompress(data)
			if err != nil {
				t.Fatalf("Decompress failed: %v", err)
			}
			if movie.Compression != swf.CompressionLZMA {
				t.Errorf("expected lzma compression, got %s", movie.Compression)
			}
			if movie.Version != 13 || movie.NumFrames != 2 {
				t.Errorf("expected version 13 with 2 frames, got %d and %d", movie.Version, movie.NumFrames)
			}
			if !bytes.Equal(movie.Tags.Bytes(), timeline) {
				t.Errorf("expected tags %v, got %v", timeline, movie.Tags.Bytes())
			}
		})
	}
}

func TestDecompress_InvalidSignature(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short", []byte("FWS")},
		{"wrong magic", []byte{'R', 'I', 'F', 'F', 0, 0, 0, 0, 0}},
		{"unknown compression", []byte{'X', 'W', 'S', 1, 0, 0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := swf.Decompress(tt.data)
			if !errors.Is(err, swf.ErrInvalidSignature) {
				t.Errorf("expected ErrInvalidSignature, got %v", err)
			}
		})
	}
}

func TestDecompress_FrameSize(t *testing.T) {
	// nbits=15, xmin=0, xmax=11000, ymin=0, ymax=8000 (550x400 px in twips)
	rect := []byte{0x78, 0x00, 0x05, 0x5F, 0x00, 0x00, 0x0F, 0xA0, 0x00}
	body := append(rect, 0x00, 0x18, 0x01, 0x00)
	data := append([]byte{'F', 'W', 'S', 6, 0, 0, 0, 0}, body...)

	movie, err := swf.Decompress(data)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	want := swf.Rect{XMin: 0, XMax: 11000, YMin: 0, YMax: 8000}
	if movie.FrameSize != want {
		t.Errorf("expected %+v, got %+v", want, movie.FrameSize)
	}
	if movie.Tags.Len() != 0 {
		t.Errorf("expected empty timeline, got %d bytes", movie.Tags.Len())
	}
}

func TestMovieSprite(t *testing.T) {
	inner := swftest.Timeline(swftest.ShowFrame(), swftest.StreamBlock(0x42))
	sprite := append([]byte{7, 0, 1, 0}, inner...)
	movie, err := swf.Decompress(swftest.Movie(10, 1, swftest.Tag(swf.TagDefineSprite, sprite)))
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}

	tags, ok := movie.Sprite(7)
	if !ok {
		t.Fatal("expected sprite 7 to be found")
	}
	if !bytes.Equal(tags.Bytes(), inner) {
		t.Errorf("expected sprite timeline %v, got %v", inner, tags.Bytes())
	}

	if _, ok := movie.Sprite(8); ok {
		t.Error("expected sprite 8 to be missing")
	}
}

func TestFindSoundStreamHead(t *testing.T) {
	timeline := swftest.Timeline(
		swftest.ShowFrame(),
		swftest.StreamHead(swf.SoundMP3, 3, true, true, 1152),
		swftest.StreamBlock(1, 2, 3),
	)

	head, err := swf.FindSoundStreamHead(swf.NewSlice(timeline))
	if err != nil {
		t.Fatalf("FindSoundStreamHead failed: %v", err)
	}
	if head.Stream.Compression != swf.SoundMP3 {
		t.Errorf("expected mp3, got %s", head.Stream.Compression)
	}
	if head.Stream.SampleRate != 44100 {
		t.Errorf("expected 44100 Hz, got %d", head.Stream.SampleRate)
	}
	if !head.Stream.IsStereo || !head.Stream.Is16Bit {
		t.Errorf("expected 16-bit stereo, got %+v", head.Stream)
	}
	if head.SamplesPerBlock != 1152 {
		t.Errorf("expected 1152 samples per block, got %d", head.SamplesPerBlock)
	}
}

func TestFindSoundStreamHead_Missing(t *testing.T) {
	timeline := swftest.Timeline(swftest.ShowFrame(), swftest.ShowFrame())
	_, err := swf.FindSoundStreamHead(swf.NewSlice(timeline))
	if !errors.Is(err, swf.ErrNoSoundStream) {
		t.Errorf("expected ErrNoSoundStream, got %v", err)
	}
}

func TestSoundFormatAudioFormat(t *testing.T) {
	tests := []struct {
		name      string
		format    swf.SoundFormat
		wantCodec string
		wantDepth int
		wantErr   bool
	}{
		{"8-bit pcm", swf.SoundFormat{Compression: swf.SoundPCMNative, SampleRate: 11025}, "pcm", 8, false},
		{"16-bit pcm le", swf.SoundFormat{Compression: swf.SoundPCMLittleEndian, SampleRate: 22050, Is16Bit: true}, "pcm", 16, false},
		{"adpcm", swf.SoundFormat{Compression: swf.SoundADPCM, SampleRate: 22050}, "adpcm", 16, false},
		{"mp3", swf.SoundFormat{Compression: swf.SoundMP3, SampleRate: 44100, IsStereo: true}, "mp3", 16, false},
		{"nellymoser", swf.SoundFormat{Compression: swf.SoundNellymoser}, "", 0, true},
		{"speex", swf.SoundFormat{Compression: swf.SoundSpeex}, "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.format.AudioFormat()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Codec != tt.wantCodec || got.BitDepth != tt.wantDepth {
				t.Errorf("expected %s/%d, got %s/%d", tt.wantCodec, tt.wantDepth, got.Codec, got.BitDepth)
			}
			if got.SampleRate != int(tt.format.SampleRate) {
				t.Errorf("expected rate %d, got %d", tt.format.SampleRate, got.SampleRate)
			}
		})
	}
}

func TestDefineSounds(t *testing.T) {
	timeline := swftest.Timeline(
		swftest.DefineSound(1, swf.SoundPCMLittleEndian, 1, true, false, 2, []byte{1, 0, 2, 0}),
		swftest.ShowFrame(),
		swftest.DefineSound(2, swf.SoundMP3, 3, true, true, 1152, []byte{0x10, 0x00, 0xFF, 0xFB}),
		swftest.Tag(swf.TagDefineSound, []byte{1, 2}), // too short, skipped
	)

	sounds, err := swf.DefineSounds(swf.NewSlice(timeline))
	if err != nil {
		t.Fatalf("DefineSounds failed: %v", err)
	}
	if len(sounds) != 2 {
		t.Fatalf("expected 2 sounds, got %d", len(sounds))
	}

	if sounds[0].ID != 1 || sounds[0].SampleCount != 2 || len(sounds[0].Data) != 4 {
		t.Errorf("unexpected first sound: %+v", sounds[0])
	}
	if sounds[1].SeekSamples != 16 {
		t.Errorf("expected mp3 seek samples 16, got %d", sounds[1].SeekSamples)
	}
	if !bytes.Equal(sounds[1].Data, []byte{0xFF, 0xFB}) {
		t.Errorf("expected mp3 data after seek prefix, got %v", sounds[1].Data)
	}
}
