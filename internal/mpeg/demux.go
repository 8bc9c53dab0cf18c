// Package mpeg reads stream properties from MPEG-1/2 Layer III frame
// headers.
package mpeg

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	binutil "github.com/simonhull/mp3meta/internal/binary"
	"github.com/simonhull/mp3meta/internal/types"
)

// Bitrates in kbps, indexed by the header's bitrate field.
var (
	bitrateTableV1 = [16]int{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0}
	bitrateTableV2 = [16]int{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0}
)

// Sample rates in Hz, indexed by the header's sample rate field.
var (
	sampleRateTableV1 = [4]int{44100, 48000, 32000, 0}
	sampleRateTableV2 = [4]int{22050, 24000, 16000, 0}
)

// ErrNoFrame is returned when no Layer III frame header is found in the
// scanned range.
var ErrNoFrame = errors.New("no valid MPEG audio frame found")

// Demuxer is the default stream-info reader. It finds the first Layer III
// frame after any leading ID3v2 tag and derives the duration from a
// Xing/Info/VBRI header or, failing that, from the bitrate and file size.
type Demuxer struct{}

// header is a decoded 4-byte frame header.
type header struct {
	mpeg1      bool
	bitrate    int // bps
	sampleRate int
	channels   int
	padding    int
}

func (h header) samplesPerFrame() int {
	if h.mpeg1 {
		return 1152
	}
	return 576
}

// frameLength returns the frame size in bytes, header included.
func (h header) frameLength() int {
	return h.samplesPerFrame()/8*h.bitrate/h.sampleRate + h.padding
}

// sideInfoSize is the Layer III side information size that precedes a
// Xing/Info header.
func (h header) sideInfoSize() int {
	switch {
	case h.mpeg1 && h.channels == 1:
		return 17
	case h.mpeg1:
		return 32
	case h.channels == 1:
		return 9
	default:
		return 17
	}
}

// parseHeader decodes a frame header, rejecting anything that is not a
// valid MPEG-1 or MPEG-2 Layer III header.
func parseHeader(word uint32) (header, bool) {
	if word&0xFFE00000 != 0xFFE00000 {
		return header{}, false
	}

	version := (word >> 19) & 0x3
	layer := (word >> 17) & 0x3
	if (version != 3 && version != 2) || layer != 1 {
		return header{}, false
	}

	h := header{mpeg1: version == 3}

	bitrateIdx := (word >> 12) & 0xF
	sampleRateIdx := (word >> 10) & 0x3
	if h.mpeg1 {
		h.bitrate = bitrateTableV1[bitrateIdx] * 1000
		h.sampleRate = sampleRateTableV1[sampleRateIdx]
	} else {
		h.bitrate = bitrateTableV2[bitrateIdx] * 1000
		h.sampleRate = sampleRateTableV2[sampleRateIdx]
	}
	if h.bitrate == 0 || h.sampleRate == 0 {
		return header{}, false
	}

	h.padding = int((word >> 9) & 0x1)

	if (word>>6)&0x3 == 3 {
		h.channels = 1
	} else {
		h.channels = 2
	}
	return h, true
}

// Demux implements the decoder's Demuxer contract. At most maxScan bytes
// past the leading tag are searched for a frame header.
func (Demuxer) Demux(ctx context.Context, view types.FileView, maxScan int) (*types.BasicInfo, error) {
	size := view.Size()
	if size < 4 {
		return nil, ErrNoFrame
	}

	if err := view.ReadBlockOfSizeAt(ctx, maxScan, 0); err != nil {
		return nil, fmt.Errorf("load head: %w", err)
	}

	audioStart := leadingTagSize(view.Block())
	if audioStart >= size {
		return nil, ErrNoFrame
	}
	if audioStart+4 > view.End() {
		if err := view.ReadBlockOfSizeAt(ctx, maxScan, audioStart); err != nil {
			return nil, fmt.Errorf("load audio: %w", err)
		}
	}

	block := view.Block()
	for off := audioStart; off+4 <= view.End(); off++ {
		rel := off - view.Start()
		h, ok := parseHeader(binary.BigEndian.Uint32(block[rel:]))
		if !ok || !confirmed(block, rel, h) {
			continue
		}

		info := &types.BasicInfo{
			SampleRate: h.sampleRate,
			Channels:   h.channels,
		}
		if frames, ok := vbrFrameCount(block[rel:], h); ok {
			info.Duration = float64(frames) * float64(h.samplesPerFrame()) / float64(h.sampleRate)
		} else {
			info.Duration = float64(size-off) * 8 / float64(h.bitrate)
		}
		return info, nil
	}

	return nil, ErrNoFrame
}

// confirmed reports whether the frame following h also starts with a
// header, or lies beyond the loaded bytes.
func confirmed(block []byte, rel int64, h header) bool {
	next := rel + int64(h.frameLength())
	if next+4 > int64(len(block)) {
		return true
	}
	_, ok := parseHeader(binary.BigEndian.Uint32(block[next:]))
	return ok
}

// leadingTagSize returns the size of an ID3v2 tag at the start of block,
// footer included, or 0.
func leadingTagSize(block []byte) int64 {
	if len(block) < 10 || string(block[0:3]) != "ID3" {
		return 0
	}
	size := int64(binutil.Synchsafe32(block[6:10])) + 10
	if block[5]&0x10 != 0 {
		size += 10
	}
	return size
}

// vbrFrameCount reads the frame count from a Xing/Info or VBRI header in
// the frame starting at frame[0].
func vbrFrameCount(frame []byte, h header) (uint32, bool) {
	xing := 4 + h.sideInfoSize()
	if len(frame) >= xing+12 {
		tag := string(frame[xing : xing+4])
		if tag == "Xing" || tag == "Info" {
			flags := binary.BigEndian.Uint32(frame[xing+4:])
			if flags&0x1 != 0 {
				return binary.BigEndian.Uint32(frame[xing+8:]), true
			}
			return 0, false
		}
	}

	// VBRI sits at a fixed 32 bytes after the header.
	const vbri = 36
	if len(frame) >= vbri+18 && string(frame[vbri:vbri+4]) == "VBRI" {
		return binary.BigEndian.Uint32(frame[vbri+14:]), true
	}
	return 0, false
}
