// ABOUTME: Immutable view over container bytes
// ABOUTME: Slices share the backing array and are only ever re-sliced
package swf

// Slice is an immutable window into a container buffer. Copies are cheap
// and share the underlying bytes, so a Slice can be handed to several
// readers and re-scanned from the start at any time.
type Slice struct {
	data  []byte
	start int
	end   int
}

// NewSlice wraps data. The caller must not modify data afterwards.
func NewSlice(data []byte) Slice {
	return Slice{data: data, start: 0, end: len(data)}
}

// Len returns the number of bytes in the window
func (s Slice) Len() int {
	return s.end - s.start
}

// Start returns the window's offset into the backing buffer
func (s Slice) Start() int {
	return s.start
}

// Bytes returns the window contents. The result is capped so appends
// cannot write into the shared buffer.
func (s Slice) Bytes() []byte {
	return s.data[s.start:s.end:s.end]
}

// Sub returns the window [offset, offset+length) relative to s.
// The second result is false if the range falls outside s.
func (s Slice) Sub(offset, length int) (Slice, bool) {
	if offset < 0 || length < 0 || offset > s.Len() || length > s.Len()-offset {
		return Slice{}, false
	}
	start := s.start + offset
	return Slice{data: s.data, start: start, end: start + length}, true
}
