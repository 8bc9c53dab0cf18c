// Package types provides the data structures produced by the tag decoder.
//
// This package defines Metadata, BasicInfo, Picture and the FileView
// contract shared by the decoder and its byte sources.
package types

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// InvalidNumber is stored in a numeric field whose tag text was not a number
// (for example a TBPM frame containing "fast").
const InvalidNumber = math.MinInt32

// UnknownCount is stored in TrackCount or DiscCount when a track or disc
// number was present without a total.
const UnknownCount = -1

// Metadata is the record accumulated while decoding one file.
//
// Text fields are empty when absent. Numeric fields are nil when absent.
// Later tag occurrences in a file overwrite scalar fields set by earlier
// ones; Genres accumulates and Pictures only grows.
type Metadata struct {
	BasicInfo      *BasicInfo `json:"basic_info,omitempty"`
	AlbumIndex     *int       `json:"album_index,omitempty"`
	TrackCount     *int       `json:"track_count,omitempty"`
	DiscNumber     *int       `json:"disc_number,omitempty"`
	DiscCount      *int       `json:"disc_count,omitempty"`
	TrackIndex     *int       `json:"track_index,omitempty"`
	BeatsPerMinute *int       `json:"beats_per_minute,omitempty"`
	Year           *int       `json:"year,omitempty"`
	EncoderDelay   *int       `json:"encoder_delay,omitempty"`
	EncoderPadding *int       `json:"encoder_padding,omitempty"`
	Compilation    *bool      `json:"compilation,omitempty"`
	Title          string     `json:"title,omitempty"`
	Artist         string     `json:"artist,omitempty"`
	Album          string     `json:"album,omitempty"`
	AlbumArtist    string     `json:"album_artist,omitempty"`
	Mood           string     `json:"mood,omitempty"`
	Genres         []string   `json:"genres,omitempty"`
	Pictures       []Picture  `json:"pictures,omitempty"`
	Warnings       []Warning  `json:"-"`
}

// BasicInfo describes the audio stream as reported by a Demuxer.
type BasicInfo struct {
	SampleRate int     `json:"sample_rate"`
	Channels   int     `json:"channels"`
	Duration   float64 `json:"duration"` // seconds
}

// String returns a human-readable representation of the stream info.
// Example output: "44.1kHz stereo 3:25".
func (b BasicInfo) String() string {
	parts := []string{fmt.Sprintf("%.1fkHz", float64(b.SampleRate)/1000)}
	if ch := channelDescription(b.Channels); ch != "" {
		parts = append(parts, ch)
	}

	secs := int(b.Duration)
	parts = append(parts, fmt.Sprintf("%d:%02d", secs/60, secs%60))

	return strings.Join(parts, " ")
}

// channelDescription returns a human-readable channel description.
func channelDescription(channels int) string {
	switch channels {
	case 0:
		return ""
	case 1:
		return "mono"
	case 2:
		return "stereo"
	default:
		return fmt.Sprintf("%dch", channels)
	}
}

// AddGenres appends genres that are not already present, comparing
// case-insensitively and keeping the first-seen casing.
func (m *Metadata) AddGenres(genres ...string) {
	m.Genres = mergeUnique(m.Genres, genres)
}

// Warn records a non-fatal decoding issue.
func (m *Metadata) Warn(stage string, offset int64, format string, args ...any) {
	m.Warnings = append(m.Warnings, Warning{
		Stage:   stage,
		Message: fmt.Sprintf(format, args...),
		Offset:  offset,
	})
}

// IsEmpty reports whether no tag field has been set. BasicInfo and
// Warnings are not tag fields.
func (m *Metadata) IsEmpty() bool {
	return m.Title == "" && m.Artist == "" && m.Album == "" &&
		m.AlbumArtist == "" && m.Mood == "" &&
		m.AlbumIndex == nil && m.TrackCount == nil &&
		m.DiscNumber == nil && m.DiscCount == nil && m.TrackIndex == nil &&
		m.BeatsPerMinute == nil && m.Year == nil &&
		m.EncoderDelay == nil && m.EncoderPadding == nil &&
		m.Compilation == nil && len(m.Genres) == 0 && len(m.Pictures) == 0
}

// mergeUnique appends elements from b to a, skipping duplicates.
// Uses case-insensitive comparison for strings.
func mergeUnique(a, b []string) []string {
	if len(b) == 0 {
		return a
	}

	result := slices.Clone(a)

	for _, bVal := range b {
		found := false
		for _, aVal := range result {
			if strings.EqualFold(aVal, bVal) {
				found = true
				break
			}
		}
		if !found {
			result = append(result, bVal)
		}
	}

	return result
}
