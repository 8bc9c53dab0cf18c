package id3

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Text encoding bytes used by ID3v2 frames.
const (
	encodingISO88591 byte = 0
	encodingUTF16BOM byte = 1
	encodingUTF16BE  byte = 2
	encodingUTF8     byte = 3
)

// maxStringLength is the longest text value stored in Metadata, in runes.
const maxStringLength = 512

// UTF-16 without a BOM falls back to little-endian, like the WHATWG
// "utf-16" label.
var decoders = map[byte]encoding.Encoding{
	encodingISO88591: charmap.ISO8859_1,
	encodingUTF16BOM: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	encodingUTF16BE:  unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	encodingUTF8:     unicode.UTF8BOM,
}

// errUnknownEncoding is returned for encoding bytes outside 0-3.
var errUnknownEncoding = errors.New("unknown text encoding")

// terminatorWidth returns the size of the null terminator for the encoding.
func terminatorWidth(enc byte) int {
	if enc == encodingUTF16BOM || enc == encodingUTF16BE {
		return 2
	}
	return 1
}

// scanForTerminator returns the distance from start to the first null
// terminator, stepping by width. When no terminator occurs within
// maxLength (or before the end of buf) it returns the whole span.
func scanForTerminator(buf []byte, start, maxLength, width int) int {
	if start >= len(buf) || maxLength <= 0 {
		return 0
	}
	if remaining := len(buf) - start; maxLength > remaining {
		maxLength = remaining
	}

	for j := 0; j < maxLength; j += width {
		i := start + j
		if buf[i] != 0 {
			continue
		}
		if width == 1 {
			return j
		}
		if i+1 < len(buf) && buf[i+1] == 0 {
			return j
		}
	}
	return maxLength
}

// decodeText converts raw frame bytes in the given encoding to a string.
func decodeText(data []byte, enc byte) (string, error) {
	e, ok := decoders[enc]
	if !ok {
		return "", fmt.Errorf("%w %d", errUnknownEncoding, enc)
	}
	if len(data) == 0 {
		return "", nil
	}

	if terminatorWidth(enc) == 2 && len(data)%2 != 0 {
		data = data[:len(data)-1]
	}

	out, err := e.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode text: %w", err)
	}
	return string(out), nil
}

// readText decodes one terminated string starting at start. It returns the
// text and the number of bytes consumed including the terminator.
func readText(data []byte, start int, enc byte) (string, int, error) {
	if _, ok := decoders[enc]; !ok {
		return "", 0, fmt.Errorf("%w %d", errUnknownEncoding, enc)
	}
	if start > len(data) {
		start = len(data)
	}

	width := terminatorWidth(enc)
	length := scanForTerminator(data, start, len(data)-start, width)

	text, err := decodeText(data[start:start+length], enc)
	if err != nil {
		return "", 0, err
	}

	consumed := length + width
	if start+consumed > len(data) {
		consumed = len(data) - start
	}
	return text, consumed, nil
}

// normalize trims surrounding whitespace and caps the length.
func normalize(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= maxStringLength {
		return s
	}

	n := 0
	for i := range s {
		if n == maxStringLength {
			return s[:i]
		}
		n++
	}
	return s
}
