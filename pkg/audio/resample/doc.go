// ABOUTME: Audio resampling package using linear interpolation
// ABOUTME: Converts decoder output between different sample rates
// Package resample provides audio sample rate conversion.
//
// Uses linear interpolation for converting between sample rates.
// Handles both upsampling and downsampling.
//
// Example:
//
//	r := resample.New(decoder, 44100)
//	frame, ok := r.Next()
package resample
