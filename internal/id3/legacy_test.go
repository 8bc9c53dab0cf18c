package id3

import (
	"slices"
	"testing"

	"github.com/simonhull/mp3meta/internal/types"
)

func readLegacyFrom(t *testing.T, data []byte) (*types.Metadata, bool) {
	t.Helper()

	m := &types.Metadata{}
	found, err := readLegacy(t.Context(), newView(data), m)
	if err != nil {
		t.Fatalf("readLegacy() error = %v", err)
	}
	return m, found
}

func TestReadLegacy(t *testing.T) {
	data := append(make([]byte, 500), legacyTrailer("Title", "Artist", "Album", "1997", "hi", 5, 17)...)

	m, found := readLegacyFrom(t, data)
	if !found {
		t.Fatal("legacy tag not found")
	}

	if m.Title != "Title" || m.Artist != "Artist" || m.Album != "Album" {
		t.Errorf("Title, Artist, Album = %q, %q, %q", m.Title, m.Artist, m.Album)
	}
	if m.Year == nil || *m.Year != 1997 {
		t.Errorf("Year = %v, want 1997", intValue(m.Year))
	}
	if m.TrackIndex == nil || *m.TrackIndex != 5 {
		t.Errorf("TrackIndex = %v, want 5", intValue(m.TrackIndex))
	}
	if want := []string{"Rock"}; !slices.Equal(m.Genres, want) {
		t.Errorf("Genres = %v, want %v", m.Genres, want)
	}
}

func TestReadLegacy_Fields(t *testing.T) {
	t.Run("full width comment has no track", func(t *testing.T) {
		tag := legacyTrailer("T", "", "", "", "", 0, 0)
		copy(tag[legacyComment.offset:], "123456789012345678901234567890")

		m, _ := readLegacyFrom(t, tag)
		if m.TrackIndex != nil {
			t.Errorf("TrackIndex = %d, want nil", *m.TrackIndex)
		}
	})

	t.Run("genre pair expands", func(t *testing.T) {
		m, _ := readLegacyFrom(t, legacyTrailer("T", "", "", "", "", 1, 62))
		if want := []string{"Pop", "Funk"}; !slices.Equal(m.Genres, want) {
			t.Errorf("Genres = %v, want %v", m.Genres, want)
		}
	})

	t.Run("unknown genre", func(t *testing.T) {
		m, _ := readLegacyFrom(t, legacyTrailer("T", "", "", "", "", 1, 255))
		if m.Genres != nil {
			t.Errorf("Genres = %v, want nil", m.Genres)
		}
	})

	t.Run("latin1 and padding", func(t *testing.T) {
		tag := legacyTrailer("Caf\xe9  ", "A", "", "", "", 0, 0)
		m, _ := readLegacyFrom(t, tag)
		if m.Title != "Café" {
			t.Errorf("Title = %q, want Café", m.Title)
		}
		if m.Year != nil {
			t.Errorf("Year = %d, want nil", *m.Year)
		}
		if m.Album != "" {
			t.Errorf("Album = %q, want empty", m.Album)
		}
	})

	t.Run("full width title", func(t *testing.T) {
		title := "abcdefghijklmnopqrstuvwxyz1234"
		m, _ := readLegacyFrom(t, legacyTrailer(title, "", "", "", "", 0, 0))
		if m.Title != title {
			t.Errorf("Title = %q, want %q", m.Title, title)
		}
	})
}

func TestReadLegacy_Absent(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"no magic", make([]byte, 300)},
		{"short file", []byte("TAG")},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, found := readLegacyFrom(t, tt.data)
			if found {
				t.Error("found = true, want false")
			}
			if !m.IsEmpty() {
				t.Errorf("record not empty: %+v", m)
			}
		})
	}
}
