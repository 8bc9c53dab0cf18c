package types

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestPictureKindOf(t *testing.T) {
	tests := []struct {
		in   byte
		want PictureKind
		name string
	}{
		{0, PictureOther, "Other"},
		{3, PictureFrontCover, "Cover (front)"},
		{17, PictureBrightFish, "A bright coloured fish"},
		{20, PicturePublisherLogotype, "Publisher/Studio logotype"},
		{21, PictureOther, "Other"},
		{255, PictureOther, "Other"},
	}

	for _, tt := range tests {
		got := PictureKindOf(tt.in)
		if got != tt.want {
			t.Errorf("PictureKindOf(%d) = %d, want %d", tt.in, got, tt.want)
		}
		if got.String() != tt.name {
			t.Errorf("PictureKindOf(%d).String() = %q, want %q", tt.in, got.String(), tt.name)
		}
	}
}

func TestBlob_Dimensions_PNG(t *testing.T) {
	data := []byte{
		0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, // signature
		0x00, 0x00, 0x00, 0x0D, 'I', 'H', 'D', 'R', // chunk length + type
		0x00, 0x00, 0x02, 0x00, // width 512
		0x00, 0x00, 0x01, 0x00, // height 256
	}

	w, h := Blob{Data: data, MIMEType: "image/png"}.Dimensions()
	if w != 512 || h != 256 {
		t.Errorf("Dimensions() = %dx%d, want 512x256", w, h)
	}
}

func TestBlob_Dimensions_JPEG(t *testing.T) {
	data := []byte{
		0xFF, 0xD8, // SOI
		0xFF, 0xC0, 0x00, 0x11, 0x08, // SOF0, length, precision
		0x00, 0x64, // height 100
		0x00, 0xC8, // width 200
		0x03, 0x00, 0x00,
	}

	w, h := Blob{Data: data, MIMEType: "image/jpeg"}.Dimensions()
	if w != 200 || h != 100 {
		t.Errorf("Dimensions() = %dx%d, want 200x100", w, h)
	}
}

func TestBlob_Dimensions_Unknown(t *testing.T) {
	w, h := Blob{Data: []byte("GIF89a"), MIMEType: "image/gif"}.Dimensions()
	if w != 0 || h != 0 {
		t.Errorf("expected 0x0 for unsupported format, got %dx%d", w, h)
	}
}

func TestPicture_String(t *testing.T) {
	p := Picture{
		Kind: PictureFrontCover,
		Blob: Blob{Data: make([]byte, 2048), MIMEType: "image/png"},
	}

	got := p.String()
	if !strings.Contains(got, "Cover (front)") || !strings.Contains(got, "PNG") || !strings.Contains(got, "2KB") {
		t.Errorf("unexpected String(): %q", got)
	}
}

func TestPicture_JSON(t *testing.T) {
	p := Picture{
		ContentHash: ContentHash{0xde, 0xad, 0xbe, 0xef},
		Kind:        PictureBackCover,
		Blob:        Blob{Data: []byte{1, 2, 3}, MIMEType: "image/jpeg"},
	}

	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	s := string(out)
	for _, want := range []string{`"content_hash":"deadbeef"`, `"kind":"Cover (back)"`, `"mime_type":"image/jpeg"`} {
		if !strings.Contains(s, want) {
			t.Errorf("JSON %s should contain %s", s, want)
		}
	}
}
