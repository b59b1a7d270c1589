// ABOUTME: Audio output package for playing decoded frames
// ABOUTME: Provides Output interface and oto implementation
// Package output provides audio playback interfaces.
//
// Example:
//
//	out := output.NewOto()
//	err := out.Open(44100, 2)
//	err = out.Write(frames)
package output
