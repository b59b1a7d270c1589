// ABOUTME: Live playback of a SWF stream sound
// ABOUTME: Feeds decoded frames to the oto output and drives the status view
package main

import (
	"context"
	"errors"
	"log"

	"github.com/Resonate-Protocol/swfsound/internal/ui"
	"github.com/Resonate-Protocol/swfsound/pkg/audio"
	"github.com/Resonate-Protocol/swfsound/pkg/audio/decode"
	"github.com/Resonate-Protocol/swfsound/pkg/audio/output"
	"github.com/Resonate-Protocol/swfsound/pkg/swf"
	"github.com/Resonate-Protocol/swfsound/pkg/swfaudio"
	tea "github.com/charmbracelet/bubbletea"
)

// volumeControl is the part of the output the keyboard controls reach
type volumeControl interface {
	SetVolume(volume int)
	SetMuted(muted bool)
	GetVolume() int
	IsMuted() bool
}

// playFile plays the stream sound, falling back to the first event sound
func playFile(ctx context.Context, path string, opts options) error {
	movie, err := swfaudio.Load(path)
	if err != nil {
		return err
	}

	dec, codec, err := openPlayable(movie)
	if err != nil {
		return err
	}
	dec.SeekToSampleFrame(opts.seek)
	src := withRate(dec, opts.rate)

	out := output.NewOto()
	if err := out.Open(int(src.SampleRate()), int(src.NumChannels())); err != nil {
		return err
	}
	defer out.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var controls *ui.Controls
	var program *tea.Program
	done := make(chan struct{})
	if opts.tui {
		controls = ui.NewControls()
		program = ui.Run(path, out.GetVolume(), controls)
		go func() {
			defer close(done)
			if _, err := program.Run(); err != nil {
				log.Printf("TUI error: %v", err)
			}
			cancel()
		}()
		go func() {
			select {
			case <-controls.Quit:
				cancel()
			case <-ctx.Done():
			}
		}()
		program.Send(ui.StatusMsg{
			Codec:      codec.String(),
			SampleRate: int(src.SampleRate()),
			Channels:   int(src.NumChannels()),
			State:      "playing",
		})
	} else {
		close(done)
		log.Printf("Playing %s (Ctrl-C to stop)", path)
	}

	position := startPosition(opts.seek, dec.SampleRate(), src.SampleRate())
	err = pump(ctx, src, func(frames []audio.Frame) error {
		if controls != nil {
			applyControls(out, controls.Changes)
		}
		if err := out.Write(frames); err != nil {
			return err
		}
		position += uint64(len(frames))
		if program != nil {
			program.Send(ui.StatusMsg{Position: position})
		}
		return nil
	})

	if program != nil {
		state := "finished"
		if err != nil {
			state = "stopped"
		}
		program.Send(ui.StatusMsg{State: state})
		program.Quit()
	}
	<-done

	if errors.Is(err, context.Canceled) {
		log.Printf("Playback interrupted")
		return nil
	}
	return err
}

// applyControls drains queued keyboard changes into the output
func applyControls(out volumeControl, changes <-chan ui.VolumeChangeMsg) {
	for {
		select {
		case change := <-changes:
			if change.Volume != out.GetVolume() {
				out.SetVolume(change.Volume)
			}
			if change.Muted != out.IsMuted() {
				out.SetMuted(change.Muted)
			}
		default:
			return
		}
	}
}

// startPosition maps a source seek frame onto the output rate
func startPosition(seek uint32, srcRate, outRate uint16) uint64 {
	if srcRate == 0 || srcRate == outRate {
		return uint64(seek)
	}
	return uint64(seek) * uint64(outRate) / uint64(srcRate)
}

func openPlayable(movie *swf.Movie) (decode.SeekableDecoder, swf.SoundCompression, error) {
	dec, err := swfaudio.OpenStream(movie)
	if err == nil {
		return dec, swf.SoundMP3, nil
	}
	log.Printf("No playable stream sound: %v", err)

	defined, _ := swf.DefineSounds(movie.Tags)
	for _, s := range defined {
		if dec, err := swfaudio.OpenSound(s); err == nil {
			log.Printf("Playing event sound %d instead", s.ID)
			return dec, s.Format.Compression, nil
		}
	}
	return nil, 0, err
}
