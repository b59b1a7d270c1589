// ABOUTME: Audio output interface definition
// ABOUTME: Common interface for audio playback backends
package output

import "github.com/Resonate-Protocol/swfsound/pkg/audio"

// Output represents an audio output device
type Output interface {
	// Open initializes the output device
	Open(sampleRate, channels int) error

	// Write outputs audio frames (blocks until written)
	Write(frames []audio.Frame) error

	// Close releases output resources
	Close() error
}
