package id3

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/simonhull/mp3meta/internal/types"
)

var errEmptyFrame = errors.New("frame has no payload")

// text decodes the frame as [encoding][string]. ok is false when the string
// span is empty, in which case nothing should be stored.
func (f *frame) text() (string, bool, error) {
	if len(f.data) < 1 {
		return "", false, errEmptyFrame
	}

	enc := f.data[0]
	if _, ok := decoders[enc]; !ok {
		return "", false, errUnknownEncoding
	}

	length := scanForTerminator(f.data, 1, len(f.data)-1, terminatorWidth(enc))
	if length == 0 {
		return "", false, nil
	}

	s, err := decodeText(f.data[1:1+length], enc)
	if err != nil {
		return "", false, err
	}
	return normalize(s), true, nil
}

// stringField is the handler for plain text frames. The setter receives the
// trimmed, length-capped value.
type stringField func(m *types.Metadata, value string)

func (set stringField) decode(f *frame, m *types.Metadata) error {
	text, ok, err := f.text()
	if err != nil || !ok {
		return err
	}
	set(m, text)
	return nil
}

func setArtist(m *types.Metadata, v string)      { m.Artist = v }
func setTitle(m *types.Metadata, v string)       { m.Title = v }
func setAlbum(m *types.Metadata, v string)       { m.Album = v }
func setMood(m *types.Metadata, v string)        { m.Mood = v }
func setAlbumArtist(m *types.Metadata, v string) { m.AlbumArtist = v }

func setTrack(m *types.Metadata, v string) {
	m.AlbumIndex, m.TrackCount = parsePair(v)
}

func setDisc(m *types.Metadata, v string) {
	m.DiscNumber, m.DiscCount = parsePair(v)
}

// variousArtists is the album artist assumed for compilations without one.
const variousArtists = "Various Artists"

func setCompilation(m *types.Metadata, v string) {
	compilation := v == "1"
	m.Compilation = &compilation
	if compilation && m.AlbumArtist == "" {
		m.AlbumArtist = variousArtists
	}
}

func setBPM(m *types.Metadata, v string) {
	m.BeatsPerMinute = ptr(parseNumber(v))
}

func setYear(m *types.Metadata, v string) {
	m.Year = ptr(parseNumber(v))
}

// setRecordingTime takes the year from an ID3v2.4 timestamp
// ("yyyy-MM-ddTHH:mm:ss" or any prefix of it).
func setRecordingTime(m *types.Metadata, v string) {
	if len(v) >= 4 {
		if year, err := strconv.Atoi(v[:4]); err == nil {
			m.Year = &year
			return
		}
	}
	setYear(m, v)
}

var pairPattern = regexp.MustCompile(`\s*(\d+)\s*/\s*(\d+)`)

// parsePair parses "N/M" into (N, M), or "N" into (N, UnknownCount).
func parsePair(text string) (index, count *int) {
	if m := pairPattern.FindStringSubmatch(text); m != nil {
		return ptr(parseNumber(m[1])), ptr(parseNumber(m[2]))
	}
	return ptr(parseNumber(text)), ptr(types.UnknownCount)
}

// parseNumber converts tag text to an integer leniently: surrounding space
// is ignored, empty text is 0, a fractional value is truncated, and anything
// else that is not a finite number yields types.InvalidNumber.
func parseNumber(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	if n, err := strconv.Atoi(text); err == nil {
		return n
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) ||
		f > math.MaxInt32 || f < math.MinInt32 {
		return types.InvalidNumber
	}
	return int(f)
}

func ptr[T any](v T) *T {
	return &v
}
