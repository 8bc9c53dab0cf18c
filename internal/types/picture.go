package types

import (
	"encoding/hex"
	"fmt"
)

// Picture is an image embedded in a tag (ID3v2 APIC/PIC frame).
type Picture struct {
	// MD5 of Blob.Data
	ContentHash ContentHash `json:"content_hash"`

	Blob Blob `json:"blob"`

	// Kind of picture (front cover, artist photo, ...)
	Kind PictureKind `json:"kind"`

	// Description of the picture (optional)
	Description string `json:"description,omitempty"`
}

// Blob is binary image data with its MIME type.
type Blob struct {
	Data     []byte `json:"-"`
	MIMEType string `json:"mime_type"` // "image/jpeg", "image/png"
}

// ContentHash is a digest of picture data, rendered as lowercase hex.
type ContentHash []byte

// String returns the hash as lowercase hex.
func (h ContentHash) String() string {
	return hex.EncodeToString(h)
}

// MarshalText implements encoding.TextMarshaler.
func (h ContentHash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// PictureKind categorizes the purpose/content of a picture.
//
// Values are the ID3v2 APIC picture types.
// See: https://id3.org/id3v2.4.0-frames (APIC frame)
type PictureKind byte

const (
	PictureOther PictureKind = iota
	PictureIcon
	PictureOtherIcon
	PictureFrontCover
	PictureBackCover
	PictureLeaflet
	PictureMedia
	PictureLeadArtist
	PictureArtist
	PictureConductor
	PictureBand
	PictureComposer
	PictureLyricist
	PictureRecordingLocation
	PictureDuringRecording
	PictureDuringPerformance
	PictureVideoCapture
	PictureBrightFish
	PictureIllustration
	PictureBandLogotype
	PicturePublisherLogotype
)

var pictureKindNames = [...]string{
	"Other", "32x32 pixels 'file icon'", "Other file icon",
	"Cover (front)", "Cover (back)", "Leaflet page", "Media (e.g. label side of CD)",
	"Lead artist/lead performer/soloist", "Artist/performer", "Conductor", "Band/Orchestra",
	"Composer", "Lyricist/text writer", "Recording Location", "During recording",
	"During performance", "Movie/video screen capture", "A bright coloured fish", "Illustration",
	"Band/artist logotype", "Publisher/Studio logotype",
}

// PictureKindOf maps a raw APIC picture type byte to a PictureKind.
// Values past the end of the table map to PictureOther.
func PictureKindOf(b byte) PictureKind {
	if int(b) >= len(pictureKindNames) {
		return PictureOther
	}
	return PictureKind(b)
}

// String returns the ID3v2 name of the picture kind.
func (k PictureKind) String() string {
	if int(k) >= len(pictureKindNames) {
		return pictureKindNames[PictureOther]
	}
	return pictureKindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k PictureKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// String returns a human-readable description of the picture.
//
// Example output: "Cover (front) (1200x1200 JPEG, 245KB)"
func (p Picture) String() string {
	size := len(p.Blob.Data)
	sizeStr := formatSize(size)

	dims := ""
	if w, h := p.Blob.Dimensions(); w > 0 && h > 0 {
		dims = fmt.Sprintf("%dx%d ", w, h)
	}

	format := mimeToFormat(p.Blob.MIMEType)

	return fmt.Sprintf("%s (%s%s, %s)", p.Kind, dims, format, sizeStr)
}

// Dimensions extracts width/height from JPEG or PNG data.
// Returns 0, 0 for other formats or when the header cannot be read.
func (b Blob) Dimensions() (int, int) {
	switch b.MIMEType {
	case "image/jpeg", "image/jpg":
		return jpegDimensions(b.Data)
	case "image/png":
		return pngDimensions(b.Data)
	default:
		return 0, 0
	}
}

// jpegDimensions extracts dimensions from the first SOF0/1/2 marker.
func jpegDimensions(data []byte) (int, int) {
	for i := 0; i < len(data)-9; i++ {
		if data[i] != 0xFF {
			continue
		}

		marker := data[i+1]
		if marker == 0xC0 || marker == 0xC1 || marker == 0xC2 {
			// FF Cn [2 bytes length] [1 byte precision] [2 bytes height] [2 bytes width]
			height := int(data[i+5])<<8 | int(data[i+6])
			width := int(data[i+7])<<8 | int(data[i+8])
			return width, height
		}
	}
	return 0, 0
}

// pngDimensions reads the IHDR chunk that follows the 8-byte signature.
func pngDimensions(data []byte) (int, int) {
	if len(data) < 24 {
		return 0, 0
	}

	pngSig := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	for i := range 8 {
		if data[i] != pngSig[i] {
			return 0, 0
		}
	}

	width := int(data[16])<<24 | int(data[17])<<16 | int(data[18])<<8 | int(data[19])
	height := int(data[20])<<24 | int(data[21])<<16 | int(data[22])<<8 | int(data[23])

	return width, height
}

// formatSize formats byte size in human-readable form.
func formatSize(bytes int) string {
	const (
		KB = 1024
		MB = 1024 * KB
	)

	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1fMB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%dKB", bytes/KB)
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

// mimeToFormat converts MIME type to short format name.
func mimeToFormat(mime string) string {
	switch mime {
	case "image/jpeg", "image/jpg":
		return "JPEG"
	case "image/png":
		return "PNG"
	case "image/gif":
		return "GIF"
	case "image/bmp":
		return "BMP"
	default:
		return "Image"
	}
}
