// ABOUTME: High-level entry points for SWF sound extraction
// ABOUTME: Opens stream and event sounds as seekable decoders
package swfaudio

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Resonate-Protocol/swfsound/pkg/audio"
	"github.com/Resonate-Protocol/swfsound/pkg/audio/decode"
	"github.com/Resonate-Protocol/swfsound/pkg/audio/demux"
	"github.com/Resonate-Protocol/swfsound/pkg/swf"
)

// Load reads and decompresses a SWF file
func Load(path string) (*swf.Movie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	movie, err := swf.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	log.Printf("Loaded SWF: %s (%s, version %d, %d frames at %.2f fps)",
		path, movie.Compression, movie.Version, movie.NumFrames, movie.FrameRate)
	return movie, nil
}

// OpenStream opens the root timeline's stream sound
func OpenStream(m *swf.Movie) (decode.SeekableDecoder, error) {
	return OpenTimelineStream(m.Tags)
}

// OpenTimelineStream opens the stream sound of a timeline, either the root
// one or a sprite's. Only MP3 streams are supported: each block starts
// with the MP3 sample count and seek samples, which are dropped. The head's
// latency seek frames are hidden from the start of the decoded stream.
func OpenTimelineStream(tags swf.Slice) (decode.SeekableDecoder, error) {
	head, err := swf.FindSoundStreamHead(tags)
	if err != nil {
		return nil, err
	}

	if head.Stream.Compression != swf.SoundMP3 {
		return nil, fmt.Errorf("unsupported stream compression: %s", head.Stream.Compression)
	}

	format, err := head.Stream.AudioFormat()
	if err != nil {
		return nil, err
	}

	dec, err := openStream(tags, format)
	if err != nil {
		return nil, err
	}

	log.Printf("Stream sound: %s %dHz %dch, %d samples/block",
		format.Codec, dec.SampleRate(), dec.NumChannels(), head.SamplesPerBlock)
	return withLatency(dec, head.LatencySeek), nil
}

// withLatency hides the MP3 encoder delay. Negative values are ignored.
func withLatency(dec decode.SeekableDecoder, latency int16) decode.SeekableDecoder {
	if latency <= 0 {
		return dec
	}
	log.Printf("Skipping %d latency frames", latency)
	return decode.NewOffset(dec, uint32(latency))
}

// openStream builds a decoder over the concatenated block payloads of a
// timeline. Every reset re-demuxes from the first tag.
func openStream(tags swf.Slice, format audio.Format) (*decode.Seekable, error) {
	open := func() io.Reader { return demux.StreamReader(tags) }
	dec, err := decode.NewSeekable(open, decode.FormatBuilder(format))
	if err != nil {
		return nil, fmt.Errorf("failed to open stream sound: %w", err)
	}
	return dec, nil
}

// OpenSound opens an event sound
func OpenSound(s *swf.DefineSound) (decode.SeekableDecoder, error) {
	format, err := s.Format.AudioFormat()
	if err != nil {
		return nil, fmt.Errorf("sound %d: %w", s.ID, err)
	}

	open := func() io.Reader { return bytes.NewReader(s.Data) }
	dec, err := decode.NewSeekable(open, decode.FormatBuilder(format))
	if err != nil {
		return nil, fmt.Errorf("failed to open sound %d: %w", s.ID, err)
	}
	return withLatency(dec, s.SeekSamples), nil
}
