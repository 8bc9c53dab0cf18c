package id3

import (
	"bytes"
	"context"

	"github.com/simonhull/mp3meta/internal/types"
)

// legacyTagSize is the size of the ID3v1 trailer.
const legacyTagSize = 128

var legacyMagic = []byte("TAG")

// ID3v1 field layout: offset and width within the trailer.
var (
	legacyTitle   = legacyField{3, 30}
	legacyArtist  = legacyField{33, 30}
	legacyAlbum   = legacyField{63, 30}
	legacyYear    = legacyField{93, 4}
	legacyComment = legacyField{97, 30}
)

const legacyGenreOffset = 127

type legacyField struct {
	offset, width int
}

// bytes returns the field up to its first zero byte.
func (f legacyField) bytes(tag []byte) []byte {
	b := tag[f.offset : f.offset+f.width]
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return b
}

func (f legacyField) text(tag []byte) string {
	return normalize(latin1(f.bytes(tag)))
}

// readLegacy decodes the ID3v1 trailer into m. found is false when the
// file is too short or the trailer has no "TAG" signature.
func readLegacy(ctx context.Context, view types.FileView, m *types.Metadata) (found bool, err error) {
	size := view.Size()
	if size < legacyTagSize {
		return false, nil
	}

	offset := size - legacyTagSize
	if offset < view.Start() || size > view.End() {
		if err := view.ReadBlockOfSizeAt(ctx, legacyTagSize, offset); err != nil {
			return false, err
		}
	}

	rel := offset - view.Start()
	tag := view.Block()[rel : rel+legacyTagSize]
	if !bytes.Equal(tag[:3], legacyMagic) {
		return false, nil
	}

	if v := legacyTitle.text(tag); v != "" {
		m.Title = v
	}
	if v := legacyArtist.text(tag); v != "" {
		m.Artist = v
	}
	if v := legacyAlbum.text(tag); v != "" {
		m.Album = v
	}
	if v := legacyYear.text(tag); v != "" {
		m.Year = ptr(parseNumber(v))
	}

	// ID3v1.1 keeps the track number in the last comment byte when the
	// byte before it is zero.
	comment := tag[legacyComment.offset : legacyComment.offset+legacyComment.width]
	if comment[28] == 0 {
		m.TrackIndex = ptr(int(comment[29]))
	}

	if names := genreNames(int(tag[legacyGenreOffset])); len(names) > 0 {
		m.Genres = append([]string(nil), names...)
	}

	return true, nil
}
