// ABOUTME: SWF file header parsing and decompression
// ABOUTME: Handles FWS (plain), CWS (zlib) and ZWS (LZMA) containers
package swf

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/icza/bitio"
	"github.com/ulikunitz/xz/lzma"
)

var (
	// ErrInvalidSignature is returned for data that does not start with FWS, CWS or ZWS
	ErrInvalidSignature = errors.New("invalid SWF signature")

	// ErrNoSoundStream is returned when a timeline has no SoundStreamHead tag
	ErrNoSoundStream = errors.New("no sound stream head in timeline")
)

// Compression is the container-level compression named by the signature
type Compression byte

const (
	CompressionNone Compression = 'F'
	CompressionZlib Compression = 'C'
	CompressionLZMA Compression = 'Z'
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZlib:
		return "zlib"
	case CompressionLZMA:
		return "lzma"
	default:
		return fmt.Sprintf("unknown(%q)", byte(c))
	}
}

// Rect is a rectangle in twips
type Rect struct {
	XMin, XMax, YMin, YMax int32
}

// Movie is a decompressed SWF with its header fields parsed
type Movie struct {
	Compression Compression
	Version     uint8
	FileLength  uint32
	FrameSize   Rect
	FrameRate   float64
	NumFrames   uint16

	// Tags is the root timeline, starting right after the header
	Tags Slice
}

const (
	signatureLength = 8
	lzmaHeaderEnd   = 17 // signature + compressed length + 5 property bytes
)

// Decompress parses the SWF header and inflates the body if needed.
// Truncated compressed data is tolerated: whatever inflates is kept.
func Decompress(data []byte) (*Movie, error) {
	if len(data) < signatureLength || data[1] != 'W' || data[2] != 'S' {
		return nil, ErrInvalidSignature
	}

	m := &Movie{
		Compression: Compression(data[0]),
		Version:     data[3],
		FileLength:  binary.LittleEndian.Uint32(data[4:8]),
	}

	var body []byte
	var err error
	switch m.Compression {
	case CompressionNone:
		body = data[signatureLength:]
	case CompressionZlib:
		body, err = inflateZlib(data[signatureLength:])
	case CompressionLZMA:
		body, err = inflateLZMA(data, m.FileLength)
	default:
		return nil, ErrInvalidSignature
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s SWF body: %w", m.Compression, err)
	}

	headerLen, err := m.parseHeader(body)
	if err != nil {
		return nil, err
	}

	tags, _ := NewSlice(body).Sub(headerLen, len(body)-headerLen)
	m.Tags = tags
	return m, nil
}

func inflateZlib(compressed []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return readTolerant(zr)
}

// SWF stores LZMA properties without the uncompressed size the classic
// .lzma header carries, so the header is rebuilt before decoding.
func inflateLZMA(data []byte, fileLength uint32) ([]byte, error) {
	if len(data) < lzmaHeaderEnd {
		return nil, io.ErrUnexpectedEOF
	}
	header := make([]byte, 13)
	copy(header[0:5], data[12:17])
	binary.LittleEndian.PutUint64(header[5:], uint64(fileLength)-signatureLength)

	lr, err := lzma.NewReader(io.MultiReader(bytes.NewReader(header), bytes.NewReader(data[lzmaHeaderEnd:])))
	if err != nil {
		return nil, err
	}
	return readTolerant(lr)
}

func readTolerant(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(r)
	if err != nil && len(body) == 0 {
		return nil, err
	}
	return body, nil
}

// parseHeader reads the frame size RECT, frame rate and frame count and
// returns the header length in bytes.
func (m *Movie) parseHeader(body []byte) (int, error) {
	br := bitio.NewReader(bytes.NewReader(body))

	nbits, err := br.ReadBits(5)
	if err != nil {
		return 0, fmt.Errorf("reading frame size: %w", io.ErrUnexpectedEOF)
	}
	fields := [4]int32{}
	for i := range fields {
		v, err := br.ReadBits(uint8(nbits))
		if err != nil {
			return 0, fmt.Errorf("reading frame size: %w", io.ErrUnexpectedEOF)
		}
		fields[i] = signExtend(v, uint8(nbits))
	}
	m.FrameSize = Rect{XMin: fields[0], XMax: fields[1], YMin: fields[2], YMax: fields[3]}

	rectLen := (5 + 4*int(nbits) + 7) / 8
	if len(body) < rectLen+4 {
		return 0, fmt.Errorf("reading frame rate and count: %w", io.ErrUnexpectedEOF)
	}
	rate := binary.LittleEndian.Uint16(body[rectLen:])
	m.FrameRate = float64(rate) / 256
	m.NumFrames = binary.LittleEndian.Uint16(body[rectLen+2:])

	return rectLen + 4, nil
}

func signExtend(v uint64, bits uint8) int32 {
	if bits == 0 {
		return 0
	}
	shift := 64 - bits
	return int32(int64(v<<shift) >> shift)
}

// Sprite returns the timeline of the DefineSprite tag with the given
// character id.
func (m *Movie) Sprite(id uint16) (Slice, bool) {
	var found Slice
	var ok bool
	r := NewReader(m.Tags)
	_, _ = DecodeTags(r, func(r *Reader, tag Tag) error {
		if tag.Code != TagDefineSprite || tag.Length < 4 || ok {
			return nil
		}
		body, err := r.BodySlice(tag)
		if err != nil {
			return nil
		}
		b := body.Bytes()
		if binary.LittleEndian.Uint16(b) != id {
			return nil
		}
		// id, frame count, then the sprite's own tag list
		found, ok = body.Sub(4, body.Len()-4)
		return nil
	}, TagEnd)
	return found, ok
}
