// ABOUTME: Listing and WAV extraction of SWF sounds
// ABOUTME: Pumps decoders into WAV files with optional seek and resampling
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/Resonate-Protocol/swfsound/pkg/audio"
	"github.com/Resonate-Protocol/swfsound/pkg/audio/decode"
	"github.com/Resonate-Protocol/swfsound/pkg/audio/encode"
	"github.com/Resonate-Protocol/swfsound/pkg/audio/resample"
	"github.com/Resonate-Protocol/swfsound/pkg/swf"
	"github.com/Resonate-Protocol/swfsound/pkg/swfaudio"
)

// chunkFrames is how many frames are decoded between context checks
const chunkFrames = 4096

type options struct {
	outDir string
	seek   uint32
	rate   int
	sounds bool
	tui    bool
}

// listFile prints the sound inventory of one file
func listFile(w io.Writer, path string) error {
	movie, err := swfaudio.Load(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s: %s v%d, %d frames at %.2f fps\n",
		path, movie.Compression, movie.Version, movie.NumFrames, movie.FrameRate)

	head, err := swf.FindSoundStreamHead(movie.Tags)
	switch {
	case errors.Is(err, swf.ErrNoSoundStream):
		fmt.Fprintf(w, "  stream: none\n")
	case err != nil:
		fmt.Fprintf(w, "  stream: unreadable (%v)\n", err)
	default:
		fmt.Fprintf(w, "  stream: %s, %d samples/block\n", describe(head.Stream), head.SamplesPerBlock)
	}

	defined, err := swf.DefineSounds(movie.Tags)
	for _, s := range defined {
		fmt.Fprintf(w, "  sound %d: %s, %d samples, %d bytes\n", s.ID, describe(s.Format), s.SampleCount, len(s.Data))
	}
	if err != nil {
		fmt.Fprintf(w, "  warning: %v\n", err)
	}
	return nil
}

func describe(f swf.SoundFormat) string {
	bits := 8
	if f.Is16Bit {
		bits = 16
	}
	return fmt.Sprintf("%s %dHz %d-bit %dch", f.Compression, f.SampleRate, bits, f.Channels())
}

// extractFile writes the stream sound, and optionally every event sound,
// of one file as WAV
func extractFile(ctx context.Context, path string, opts options) error {
	movie, err := swfaudio.Load(path)
	if err != nil {
		return err
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	dec, err := swfaudio.OpenStream(movie)
	switch {
	case errors.Is(err, swf.ErrNoSoundStream):
		log.Printf("%s: no stream sound", path)
	case err != nil:
		log.Printf("%s: skipping stream sound: %v", path, err)
	default:
		dec.SeekToSampleFrame(opts.seek)
		if err := writeWAV(ctx, filepath.Join(opts.outDir, base+".stream.wav"), withRate(dec, opts.rate)); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	if !opts.sounds {
		return nil
	}

	defined, err := swf.DefineSounds(movie.Tags)
	if err != nil {
		log.Printf("%s: %v", path, err)
	}
	for _, s := range defined {
		dec, err := swfaudio.OpenSound(s)
		if err != nil {
			log.Printf("%s: skipping: %v", path, err)
			continue
		}
		name := fmt.Sprintf("%s.sound%d.wav", base, s.ID)
		if err := writeWAV(ctx, filepath.Join(opts.outDir, name), withRate(dec, opts.rate)); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func withRate(dec decode.Decoder, rate int) decode.Decoder {
	if rate == 0 || rate == int(dec.SampleRate()) {
		return dec
	}
	return resample.New(dec, rate)
}

func writeWAV(ctx context.Context, path string, dec decode.Decoder) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer f.Close()

	ww, err := encode.NewWAVWriter(f, int(dec.SampleRate()), int(dec.NumChannels()), 16)
	if err != nil {
		return err
	}

	if err := pump(ctx, dec, ww.WriteFrames); err != nil {
		return err
	}
	if err := ww.Close(); err != nil {
		return err
	}

	log.Printf("Wrote %s (%d frames, %dHz)", path, ww.Frames(), dec.SampleRate())
	return f.Close()
}

// pump drains dec in chunks into sink until end of stream or cancellation
func pump(ctx context.Context, dec decode.Decoder, sink func([]audio.Frame) error) error {
	buf := make([]audio.Frame, 0, chunkFrames)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		buf = buf[:0]
		for len(buf) < chunkFrames {
			f, ok := dec.Next()
			if !ok {
				break
			}
			buf = append(buf, f)
		}
		if len(buf) == 0 {
			return nil
		}
		if err := sink(buf); err != nil {
			return err
		}
		if len(buf) < chunkFrames {
			return nil
		}
	}
}
