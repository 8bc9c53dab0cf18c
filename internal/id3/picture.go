package id3

import (
	"bytes"
	"crypto/md5"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/simonhull/mp3meta/internal/types"
)

var (
	errPictureTooShort    = errors.New("picture frame too short")
	errPictureType        = errors.New("picture frame has unusable MIME type")
	errPictureNoImageData = errors.New("picture frame has no image data")
	errPictureTooLarge    = errors.New("picture exceeds size limit")
)

var imageExtPattern = regexp.MustCompile(`jpg|jpeg|png`)

// pictureHandler handles APIC (ID3v2.3+) and PIC (ID3v2.2) frames.
//
// APIC layout:
//
//	[1 byte]              Text encoding
//	[null-terminated]     MIME type (ISO-8859-1)
//	[1 byte]              Picture type
//	[null-terminated]     Description (frame encoding)
//	[remaining]           Picture data
//
// PIC replaces the MIME type with a fixed 3-byte image format ("JPG").
type pictureHandler struct{}

func (pictureHandler) decode(f *frame, m *types.Metadata) error {
	data := f.data
	if len(data) < 2 {
		return errPictureTooShort
	}

	enc := data[0]
	if _, ok := decoders[enc]; !ok {
		return errUnknownEncoding
	}
	pos := 1

	var mimeType string
	if f.version <= 2 {
		if len(data) < pos+3 {
			return errPictureTooShort
		}
		mimeType = "image/" + strings.ToLower(latin1(data[pos:pos+3]))
		pos += 3
	} else {
		length := scanForTerminator(data, pos, len(data)-pos, 1)
		typeString := strings.ToLower(latin1(data[pos : pos+length]))
		pos += length + 1

		switch {
		case strings.Contains(typeString, "/"):
			mimeType = typeString
		case imageExtPattern.MatchString(typeString):
			mimeType = "image/" + typeString
		default:
			return fmt.Errorf("%w %q", errPictureType, typeString)
		}
	}

	if pos >= len(data) {
		return errPictureTooShort
	}
	kind := types.PictureKindOf(data[pos])
	pos++

	description, n, err := readText(data, pos, enc)
	if err != nil {
		return err
	}
	pos += n

	if pos >= len(data) {
		return errPictureNoImageData
	}
	payload := data[pos:]

	if f.maxPictureSize > 0 && len(payload) > f.maxPictureSize {
		return fmt.Errorf("%w: %d bytes", errPictureTooLarge, len(payload))
	}

	payload = bytes.Clone(payload)
	sum := md5.Sum(payload)

	m.Pictures = append(m.Pictures, types.Picture{
		ContentHash: sum[:],
		Blob:        types.Blob{Data: payload, MIMEType: mimeType},
		Kind:        kind,
		Description: description,
	})
	return nil
}

// latin1 decodes ISO-8859-1 bytes. It cannot fail.
func latin1(b []byte) string {
	s, _ := decodeText(b, encodingISO88591)
	return s
}
