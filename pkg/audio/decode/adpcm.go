// ABOUTME: SWF ADPCM audio decoder
// ABOUTME: Decodes 2-5 bit variable-width ADPCM packets to frames
package decode

import (
	"fmt"
	"io"

	"github.com/Resonate-Protocol/swfsound/pkg/audio"
	"github.com/icza/bitio"
)

// Each packet carries a raw initial frame plus this many frames in total
const adpcmPacketFrames = 4096

var adpcmStepTable = [89]int32{
	7, 8, 9, 10, 11, 12, 13, 14, 16, 17, 19, 21, 23, 25, 28, 31, 34, 37, 41, 45,
	50, 55, 60, 66, 73, 80, 88, 97, 107, 118, 130, 143, 157, 173, 190, 209, 230,
	253, 279, 307, 337, 371, 408, 449, 494, 544, 598, 658, 724, 796, 876, 963,
	1060, 1166, 1282, 1411, 1552, 1707, 1878, 2066, 2272, 2499, 2749, 3024, 3327,
	3660, 4026, 4428, 4871, 5358, 5894, 6484, 7132, 7845, 8630, 9493, 10442, 11487,
	12635, 13899, 15289, 16818, 18500, 20350, 22385, 24623, 27086, 29794, 32767,
}

// Index adjustments by code magnitude, per bits-per-sample (2..5)
var adpcmIndexTables = [4][]int32{
	{-1, 2},
	{-1, -1, 2, 4},
	{-1, -1, -1, -1, 2, 4, 6, 8},
	{-1, -1, -1, -1, -1, -1, -1, -1, 1, 2, 4, 6, 8, 10, 13, 16},
}

type adpcmChannel struct {
	sample    int32
	stepIndex int32
}

// ADPCMDecoder decodes SWF ADPCM audio. The bitstream starts with a 2-bit
// code size, followed by packets of one raw 16-bit sample and 6-bit step
// index per channel and then 4095 coded frames.
type ADPCMDecoder struct {
	br            *bitio.Reader
	bitsPerSample uint8
	signMask      uint64
	indexTable    []int32
	channels      []adpcmChannel
	sampleRate    uint16
	frameNum      int
	done          bool
}

// NewADPCM creates a new ADPCM decoder and reads the code size header
func NewADPCM(r io.Reader, format audio.Format) (*ADPCMDecoder, error) {
	if format.Codec != "adpcm" {
		return nil, fmt.Errorf("invalid codec for ADPCM decoder: %s", format.Codec)
	}

	if err := validateLayout(format); err != nil {
		return nil, err
	}

	br := bitio.NewReader(r)
	codeSize, err := br.ReadBits(2)
	if err != nil {
		return nil, fmt.Errorf("failed to read adpcm header: %w", err)
	}
	bits := uint8(codeSize) + 2

	return &ADPCMDecoder{
		br:            br,
		bitsPerSample: bits,
		signMask:      1 << (bits - 1),
		indexTable:    adpcmIndexTables[codeSize],
		channels:      make([]adpcmChannel, format.Channels),
		sampleRate:    uint16(format.SampleRate),
	}, nil
}

// Next decodes one frame
func (d *ADPCMDecoder) Next() (audio.Frame, bool) {
	if d.done {
		return audio.Frame{}, false
	}

	var err error
	if d.frameNum == 0 {
		err = d.readPacketHeader()
	} else {
		for ch := range d.channels {
			if err = d.decodeSample(&d.channels[ch]); err != nil {
				break
			}
		}
	}
	if err != nil {
		d.done = true
		return audio.Frame{}, false
	}

	d.frameNum = (d.frameNum + 1) % adpcmPacketFrames

	left := int16(d.channels[0].sample)
	if len(d.channels) == 1 {
		return audio.FrameFromMono(left), true
	}
	return audio.Frame{Left: left, Right: int16(d.channels[1].sample)}, true
}

func (d *ADPCMDecoder) readPacketHeader() error {
	for ch := range d.channels {
		initial, err := d.br.ReadBits(16)
		if err != nil {
			return err
		}
		index, err := d.br.ReadBits(6)
		if err != nil {
			return err
		}
		d.channels[ch].sample = int32(int16(uint16(initial)))
		d.channels[ch].stepIndex = clampStepIndex(int32(index))
	}
	return nil
}

func (d *ADPCMDecoder) decodeSample(c *adpcmChannel) error {
	code, err := d.br.ReadBits(d.bitsPerSample)
	if err != nil {
		return err
	}

	step := adpcmStepTable[c.stepIndex]
	diff := step >> (d.bitsPerSample - 1)
	for mask := d.signMask >> 1; mask != 0; mask >>= 1 {
		if code&mask != 0 {
			diff += step
		}
		step >>= 1
	}

	if code&d.signMask != 0 {
		c.sample -= diff
	} else {
		c.sample += diff
	}
	c.sample = int32(audio.ClampInt16(c.sample))

	magnitude := code &^ d.signMask
	c.stepIndex = clampStepIndex(c.stepIndex + d.indexTable[magnitude])
	return nil
}

func clampStepIndex(i int32) int32 {
	if i < 0 {
		return 0
	}
	if i > int32(len(adpcmStepTable)-1) {
		return int32(len(adpcmStepTable) - 1)
	}
	return i
}

func (d *ADPCMDecoder) NumChannels() uint8 { return uint8(len(d.channels)) }
func (d *ADPCMDecoder) SampleRate() uint16 { return d.sampleRate }
