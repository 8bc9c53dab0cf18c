package id3

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/simonhull/mp3meta/internal/types"
)

// iTunes writes gapless playback info into a comment keyed "iTunSMPB" as
// eleven hex words; the second and third are encoder delay and padding.
var gaplessPattern = regexp.MustCompile(
	`[0-9A-F]{8} ([0-9A-F]{8}) ([0-9A-F]{8}) [0-9A-F]{16}` +
		` [0-9A-F]{8} [0-9A-F]{8} [0-9A-F]{8} [0-9A-F]{8} [0-9A-F]{8} [0-9A-F]{8} [0-9A-F]{8}`)

const maxGaplessSamples = 65536

// commentHandler handles COM/COMM frames, looking for gapless playback
// hints.
//
//	[1 byte]              Text encoding
//	[3 bytes]             Language
//	[null-terminated]     Short description (the key)
//	[remaining]           Text (the value)
type commentHandler struct{}

func (commentHandler) decode(f *frame, m *types.Metadata) error {
	data := f.data
	if len(data) < 4 {
		return errEmptyFrame
	}

	enc := data[0]
	pos := 4 // encoding + language

	key, n, err := readText(data, pos, enc)
	if err != nil {
		return err
	}
	pos += n

	value, _, err := readText(data, pos, enc)
	if err != nil {
		return err
	}

	if key != "iTunSMPB" && key != "" {
		return nil
	}

	match := gaplessPattern.FindStringSubmatch(strings.TrimSpace(value))
	if match == nil {
		return nil
	}

	m.EncoderDelay = ptr(parseGaplessWord(match[1]))
	m.EncoderPadding = ptr(parseGaplessWord(match[2]))
	return nil
}

// parseGaplessWord parses an 8-digit hex word clamped to [0, 65536].
func parseGaplessWord(s string) int {
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0
	}
	return int(min(v, maxGaplessSamples))
}
