// ABOUTME: Sound tag parsing (SoundStreamHead, DefineSound)
// ABOUTME: Maps SWF sound format flags onto decoder formats
package swf

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/Resonate-Protocol/swfsound/pkg/audio"
)

// SoundCompression is the codec id stored in sound format flags
type SoundCompression uint8

const (
	SoundPCMNative       SoundCompression = 0
	SoundADPCM           SoundCompression = 1
	SoundMP3             SoundCompression = 2
	SoundPCMLittleEndian SoundCompression = 3
	SoundNellymoser16k   SoundCompression = 4
	SoundNellymoser8k    SoundCompression = 5
	SoundNellymoser      SoundCompression = 6
	SoundSpeex           SoundCompression = 11
)

func (c SoundCompression) String() string {
	switch c {
	case SoundPCMNative:
		return "pcm"
	case SoundADPCM:
		return "adpcm"
	case SoundMP3:
		return "mp3"
	case SoundPCMLittleEndian:
		return "pcm-le"
	case SoundNellymoser16k:
		return "nellymoser-16k"
	case SoundNellymoser8k:
		return "nellymoser-8k"
	case SoundNellymoser:
		return "nellymoser"
	case SoundSpeex:
		return "speex"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

var sampleRates = [4]uint16{5512, 11025, 22050, 44100}

// SoundFormat is the decoded one-byte sound format descriptor
type SoundFormat struct {
	Compression SoundCompression
	SampleRate  uint16
	Is16Bit     bool
	IsStereo    bool
}

func parseSoundFormat(b byte) SoundFormat {
	return SoundFormat{
		Compression: SoundCompression(b >> 4),
		SampleRate:  sampleRates[(b>>2)&0x3],
		Is16Bit:     b&0x2 != 0,
		IsStereo:    b&0x1 != 0,
	}
}

// Channels returns 1 or 2
func (f SoundFormat) Channels() int {
	if f.IsStereo {
		return 2
	}
	return 1
}

// AudioFormat maps the descriptor onto a decoder format
func (f SoundFormat) AudioFormat() (audio.Format, error) {
	format := audio.Format{
		SampleRate: int(f.SampleRate),
		Channels:   f.Channels(),
		BitDepth:   16,
	}
	switch f.Compression {
	case SoundPCMNative, SoundPCMLittleEndian:
		format.Codec = "pcm"
		if !f.Is16Bit {
			format.BitDepth = 8
		}
	case SoundADPCM:
		format.Codec = "adpcm"
	case SoundMP3:
		format.Codec = "mp3"
	default:
		return audio.Format{}, fmt.Errorf("unsupported sound compression: %s", f.Compression)
	}
	return format, nil
}

// SoundStreamHead describes the stream sound of a timeline
type SoundStreamHead struct {
	Playback        SoundFormat
	Stream          SoundFormat
	SamplesPerBlock uint16
	LatencySeek     int16 // MP3 only
}

// ParseSoundStreamHead parses a SoundStreamHead or SoundStreamHead2 body
func ParseSoundStreamHead(body []byte) (*SoundStreamHead, error) {
	if len(body) < 4 {
		return nil, fmt.Errorf("sound stream head: %d bytes, need 4", len(body))
	}
	head := &SoundStreamHead{
		Playback:        parseSoundFormat(body[0]),
		Stream:          parseSoundFormat(body[1]),
		SamplesPerBlock: binary.LittleEndian.Uint16(body[2:]),
	}
	if head.Stream.Compression == SoundMP3 && len(body) >= 6 {
		head.LatencySeek = int16(binary.LittleEndian.Uint16(body[4:]))
	}
	return head, nil
}

// FindSoundStreamHead returns the first stream head of a timeline
func FindSoundStreamHead(s Slice) (*SoundStreamHead, error) {
	var head *SoundStreamHead
	errFound := errors.New("found")

	r := NewReader(s)
	_, err := DecodeTags(r, func(r *Reader, tag Tag) error {
		if tag.Code != TagSoundStreamHead && tag.Code != TagSoundStreamHead2 {
			return nil
		}
		body, err := r.Body(tag)
		if err != nil {
			return err
		}
		head, err = ParseSoundStreamHead(body)
		if err != nil {
			return err
		}
		return errFound
	}, TagEnd)

	if head != nil {
		return head, nil
	}
	if err != nil {
		return nil, err
	}
	return nil, ErrNoSoundStream
}

// DefineSound is an event sound stored whole in one tag
type DefineSound struct {
	ID          uint16
	Format      SoundFormat
	SampleCount uint32
	// SeekSamples is the MP3 leading seek count; zero for other codecs
	SeekSamples int16
	// Data is the encoded sound with any MP3 seek prefix removed
	Data []byte
}

// ParseDefineSound parses a DefineSound body
func ParseDefineSound(body []byte) (*DefineSound, error) {
	if len(body) < 7 {
		return nil, fmt.Errorf("define sound: %d bytes, need 7", len(body))
	}
	sound := &DefineSound{
		ID:          binary.LittleEndian.Uint16(body[0:]),
		Format:      parseSoundFormat(body[2]),
		SampleCount: binary.LittleEndian.Uint32(body[3:]),
		Data:        body[7:],
	}
	if sound.Format.Compression == SoundMP3 && len(sound.Data) >= 2 {
		sound.SeekSamples = int16(binary.LittleEndian.Uint16(sound.Data))
		sound.Data = sound.Data[2:]
	}
	return sound, nil
}

// DefineSounds lists every event sound in a timeline. Malformed sound
// tags are skipped.
func DefineSounds(s Slice) ([]*DefineSound, error) {
	var sounds []*DefineSound
	r := NewReader(s)
	_, err := DecodeTags(r, func(r *Reader, tag Tag) error {
		if tag.Code != TagDefineSound {
			return nil
		}
		body, err := r.Body(tag)
		if err != nil {
			return err
		}
		sound, err := ParseDefineSound(body)
		if err != nil {
			return nil
		}
		sounds = append(sounds, sound)
		return nil
	}, TagEnd)
	return sounds, err
}
