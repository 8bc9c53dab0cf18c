package id3

import (
	"bytes"
	"encoding/binary"

	binutil "github.com/simonhull/mp3meta/internal/binary"
)

// rawFrame builds one frame for the given major version. flags is ignored
// for version 2.
func rawFrame(version byte, id string, flags uint16, payload []byte) []byte {
	var b bytes.Buffer
	b.WriteString(id)

	switch version {
	case 2:
		n := len(payload)
		b.Write([]byte{byte(n >> 16), byte(n >> 8), byte(n)})
	case 3:
		b.Write(binary.BigEndian.AppendUint32(nil, uint32(len(payload))))
	default:
		size := make([]byte, 4)
		binutil.PutSynchsafe32(size, uint32(len(payload)))
		b.Write(size)
	}

	if version > 2 {
		b.Write(binary.BigEndian.AppendUint16(nil, flags))
	}
	b.Write(payload)
	return b.Bytes()
}

// textFrame builds a text frame with an ISO-8859-1 value.
func textFrame(version byte, id, value string) []byte {
	return rawFrame(version, id, 0, append([]byte{encodingISO88591}, value...))
}

// rawTag wraps frames in a tag header. padding zero bytes follow the frames
// and are counted in the tag size.
func rawTag(version, flags byte, padding int, frames ...[]byte) []byte {
	var body bytes.Buffer
	for _, f := range frames {
		body.Write(f)
	}
	body.Write(make([]byte, padding))

	header := []byte{'I', 'D', '3', version, 0, flags, 0, 0, 0, 0}
	binutil.PutSynchsafe32(header[6:10], uint32(body.Len()))
	return append(header, body.Bytes()...)
}

func newView(data []byte) *binutil.BlockView {
	return binutil.NewBlockView(binutil.NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.mp3"))
}

// legacyTrailer builds a 128-byte ID3v1 tag.
func legacyTrailer(title, artist, album, year, comment string, track, genre byte) []byte {
	tag := make([]byte, legacyTagSize)
	copy(tag, "TAG")
	copy(tag[legacyTitle.offset:legacyTitle.offset+legacyTitle.width], title)
	copy(tag[legacyArtist.offset:legacyArtist.offset+legacyArtist.width], artist)
	copy(tag[legacyAlbum.offset:legacyAlbum.offset+legacyAlbum.width], album)
	copy(tag[legacyYear.offset:legacyYear.offset+legacyYear.width], year)
	copy(tag[legacyComment.offset:legacyComment.offset+28], comment)
	tag[legacyComment.offset+29] = track
	tag[legacyGenreOffset] = genre
	return tag
}
