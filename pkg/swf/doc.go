// ABOUTME: SWF container package for tag scanning and sound metadata
// ABOUTME: Provides Slice, Reader, DecodeTags and sound tag parsers
// Package swf reads the tag structure of SWF containers.
//
// A timeline is a sequence of length-prefixed tag records. DecodeTags walks
// them in order and hands each one to a callback, stopping early after a
// chosen tag code so the scan can be resumed later from the same Reader.
//
// Example:
//
//	movie, err := swf.Decompress(data)
//	r := swf.NewReader(movie.Tags)
//	found, err := swf.DecodeTags(r, func(r *swf.Reader, tag swf.Tag) error {
//	    body, err := r.Body(tag)
//	    ...
//	}, swf.TagSoundStreamBlock)
package swf
