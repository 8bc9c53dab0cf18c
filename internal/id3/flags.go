package id3

import (
	"github.com/simonhull/mp3meta/internal/types"
)

// mainFlags are the tag-level flags from byte 5 of the ID3v2 header.
type mainFlags struct {
	unsynchronized bool
	extended       bool
	experimental   bool
	footer         bool

	// invalidBits is set when any of the reserved low four bits is set,
	// which marks a tag this decoder cannot interpret.
	invalidBits bool
}

// frameFlags are the per-frame status and format flags (ID3v2.3+).
type frameFlags struct {
	tagAlterPreservation  bool
	fileAlterPreservation bool
	readOnly              bool
	containsGroupInfo     bool
	compressed            bool
	encrypted             bool
	unsynchronized        bool
	dataLengthIndicator   bool
}

func readBit(bits uint16, n uint) bool {
	return bits&(1<<n) != 0
}

// parseMainFlags decodes the header flags byte.
func parseMainFlags(b byte) mainFlags {
	bits := uint16(b)
	return mainFlags{
		unsynchronized: readBit(bits, 7),
		extended:       readBit(bits, 6),
		experimental:   readBit(bits, 5),
		footer:         readBit(bits, 4),
		invalidBits:    b&0x0F != 0,
	}
}

// readMainFlags reads the flags byte of the tag header starting at off.
func readMainFlags(view types.FileView, off int64) (mainFlags, error) {
	b, err := view.Uint8(off + 5)
	if err != nil {
		return mainFlags{}, err
	}
	return parseMainFlags(b), nil
}

// parseFrameFlags decodes the two frame flag bytes. ID3v2.2 frames carry
// no flags, so version 2 always yields the zero value.
func parseFrameFlags(bits uint16, version byte) frameFlags {
	if version < 3 {
		return frameFlags{}
	}
	return frameFlags{
		tagAlterPreservation:  readBit(bits, 14),
		fileAlterPreservation: readBit(bits, 13),
		readOnly:              readBit(bits, 12),
		containsGroupInfo:     readBit(bits, 6),
		compressed:            readBit(bits, 3),
		encrypted:             readBit(bits, 2),
		unsynchronized:        readBit(bits, 1),
		dataLengthIndicator:   readBit(bits, 0),
	}
}

// readFrameFlags reads the frame flags at off. Nothing is read for version 2.
func readFrameFlags(view types.FileView, off int64, version byte) (frameFlags, error) {
	if version < 3 {
		return frameFlags{}, nil
	}
	bits, err := view.Uint16(off)
	if err != nil {
		return frameFlags{}, err
	}
	return parseFrameFlags(bits, version), nil
}
