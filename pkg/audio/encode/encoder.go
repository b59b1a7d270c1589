// ABOUTME: Encoder interface definition
// ABOUTME: Common interface for all frame encoders
package encode

import "github.com/Resonate-Protocol/swfsound/pkg/audio"

// Encoder encodes decoded frames to a byte format
type Encoder interface {
	// Encode converts frames to encoded audio data
	Encode(frames []audio.Frame) ([]byte, error)

	// Close releases encoder resources
	Close() error
}
