package id3

import (
	"github.com/simonhull/mp3meta/internal/types"
)

// frame is one ID3v2 frame ready for a handler.
type frame struct {
	data    []byte // payload, with unsynchronisation already reversed
	offset  int64  // file offset of the payload
	id      uint32
	flags   frameFlags
	version byte

	maxPictureSize int
}

// frameHandler decodes the payload of one frame family into m. A returned
// error skips the frame; it never aborts the tag.
type frameHandler interface {
	decode(f *frame, m *types.Metadata) error
}

// frameID packs a 3- or 4-character frame identifier into the big-endian
// integer the walker reads from the file.
func frameID(s string) uint32 {
	var id uint32
	for i := 0; i < len(s); i++ {
		id = id<<8 | uint32(s[i])
	}
	return id
}

// frameName renders an identifier for warnings and logs.
func frameName(id uint32, version byte) string {
	if version < 3 {
		return string([]byte{byte(id >> 16), byte(id >> 8), byte(id)})
	}
	return string([]byte{byte(id >> 24), byte(id >> 16), byte(id >> 8), byte(id)})
}

// frameHandlers maps ID3v2.2 (3-character) and ID3v2.3/2.4 (4-character)
// identifiers to handlers. Three-character ids occupy the low 24 bits, so
// the two sets never collide. Unlisted frames are skipped.
var frameHandlers = map[uint32]frameHandler{
	frameID("TP1"):  stringField(setArtist),
	frameID("TPE1"): stringField(setArtist),
	frameID("TT2"):  stringField(setTitle),
	frameID("TIT2"): stringField(setTitle),
	frameID("TAL"):  stringField(setAlbum),
	frameID("TALB"): stringField(setAlbum),
	frameID("TMOO"): stringField(setMood),
	frameID("TS2"):  stringField(setAlbumArtist),
	frameID("TSO2"): stringField(setAlbumArtist),
	frameID("TP2"):  stringField(setAlbumArtist),
	frameID("TPE2"): stringField(setAlbumArtist),
	frameID("TRK"):  stringField(setTrack),
	frameID("TRCK"): stringField(setTrack),
	frameID("TPA"):  stringField(setDisc),
	frameID("TPOS"): stringField(setDisc),
	frameID("TCP"):  stringField(setCompilation),
	frameID("TCMP"): stringField(setCompilation),
	frameID("TBP"):  stringField(setBPM),
	frameID("TBPM"): stringField(setBPM),
	frameID("TYE"):  stringField(setYear),
	frameID("TYER"): stringField(setYear),
	frameID("TDRC"): stringField(setRecordingTime),
	frameID("TCO"):  genreHandler{},
	frameID("TCON"): genreHandler{},
	frameID("PIC"):  pictureHandler{},
	frameID("APIC"): pictureHandler{},
	frameID("COM"):  commentHandler{},
	frameID("COMM"): commentHandler{},
}
