package mp3meta_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/mp3meta"
)

// v23Tag builds an ID3v2.3 tag from (id, payload) pairs.
func v23Tag(frames ...[2]string) []byte {
	var body bytes.Buffer
	for _, f := range frames {
		body.WriteString(f[0])
		binary.Write(&body, binary.BigEndian, uint32(len(f[1])))
		body.Write([]byte{0, 0})
		body.WriteString(f[1])
	}

	n := body.Len()
	header := []byte{'I', 'D', '3', 3, 0, 0,
		byte(n >> 21 & 0x7F), byte(n >> 14 & 0x7F), byte(n >> 7 & 0x7F), byte(n & 0x7F)}
	return append(header, body.Bytes()...)
}

// mpegAudio returns n MPEG-1 Layer III frames (128 kbps, 44.1 kHz, stereo).
func mpegAudio(n int) []byte {
	data := make([]byte, 417*n)
	for i := range n {
		binary.BigEndian.PutUint32(data[i*417:], 0xFFFB9000)
	}
	return data
}

func writeFile(t testing.TB, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func songFile(t testing.TB, title string) string {
	data := v23Tag(
		[2]string{"TIT2", "\x00" + title},
		[2]string{"TPE1", "\x00Artist"},
		[2]string{"TRCK", "\x003/12"},
	)
	return writeFile(t, title+".mp3", append(data, mpegAudio(10)...))
}

func TestOpen(t *testing.T) {
	m, err := mp3meta.Open(songFile(t, "Title"))
	require.NoError(t, err)

	assert.Equal(t, "Title", m.Title)
	assert.Equal(t, "Artist", m.Artist)
	require.NotNil(t, m.AlbumIndex)
	assert.Equal(t, 3, *m.AlbumIndex)
	assert.Equal(t, 12, *m.TrackCount)

	require.NotNil(t, m.BasicInfo)
	assert.Equal(t, 44100, m.BasicInfo.SampleRate)
	assert.Equal(t, 2, m.BasicInfo.Channels)
	assert.InDelta(t, float64(417*10*8)/128000, m.BasicInfo.Duration, 1e-9)
}

func TestOpen_Errors(t *testing.T) {
	_, err := mp3meta.Open(filepath.Join(t.TempDir(), "missing.mp3"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = mp3meta.Open(t.TempDir())
	var unsupported *mp3meta.UnsupportedFormatError
	assert.ErrorAs(t, err, &unsupported)
}

func TestOpen_NoTags(t *testing.T) {
	m, err := mp3meta.Open(writeFile(t, "bare.mp3", mpegAudio(4)))
	require.NoError(t, err)

	assert.True(t, m.IsEmpty())
	assert.NotNil(t, m.BasicInfo)
	assert.Empty(t, m.Warnings)
}

func warningFile(t *testing.T) string {
	data := v23Tag(
		[2]string{"TIT2", "\x07bad encoding"},
		[2]string{"TALB", "\x00Album"},
	)
	return writeFile(t, "warn.mp3", append(data, mpegAudio(2)...))
}

func TestOpen_Warnings(t *testing.T) {
	path := warningFile(t)

	m, err := mp3meta.Open(path)
	require.NoError(t, err)
	assert.Equal(t, "Album", m.Album)
	assert.Empty(t, m.Title)
	require.Len(t, m.Warnings, 1)
	assert.Equal(t, "frame", m.Warnings[0].Stage)

	m, err = mp3meta.Open(path, mp3meta.WithIgnoreWarnings())
	require.NoError(t, err)
	assert.Equal(t, "Album", m.Album)
	assert.Empty(t, m.Warnings)

	_, err = mp3meta.Open(path, mp3meta.WithStrictParsing())
	var corrupted *mp3meta.CorruptedFileError
	require.ErrorAs(t, err, &corrupted)
	assert.Equal(t, path, corrupted.Path)
	assert.Contains(t, corrupted.Reason, "TIT2")
}

func TestOpen_WithoutBasicInfo(t *testing.T) {
	m, err := mp3meta.Open(songFile(t, "Title"), mp3meta.WithoutBasicInfo())
	require.NoError(t, err)
	assert.Nil(t, m.BasicInfo)
	assert.Equal(t, "Title", m.Title)
}

type fixedDemuxer struct{ info mp3meta.BasicInfo }

func (d fixedDemuxer) Demux(context.Context, mp3meta.FileView, int) (*mp3meta.BasicInfo, error) {
	return &d.info, nil
}

func TestDecode_CustomDemuxer(t *testing.T) {
	data := v23Tag([2]string{"TIT2", "\x00Streamed"})
	view := mp3meta.NewBlockView(bytes.NewReader(data), int64(len(data)), "stream")

	want := mp3meta.BasicInfo{SampleRate: 48000, Channels: 1, Duration: 3.5}
	m, err := mp3meta.Decode(t.Context(), view, mp3meta.WithDemuxer(fixedDemuxer{want}))
	require.NoError(t, err)

	assert.Equal(t, "Streamed", m.Title)
	require.NotNil(t, m.BasicInfo)
	assert.Equal(t, want, *m.BasicInfo)
}

func TestDecode_PictureLimit(t *testing.T) {
	apic := "\x00image/png\x00\x03\x00" + string(bytes.Repeat([]byte{0x89}, 64))
	data := v23Tag([2]string{"APIC", apic})
	view := mp3meta.NewBlockView(bytes.NewReader(data), int64(len(data)), "pic.mp3")

	m, err := mp3meta.Decode(t.Context(), view, mp3meta.WithMaxPictureSize(32), mp3meta.WithoutBasicInfo())
	require.NoError(t, err)
	assert.Empty(t, m.Pictures)
	require.Len(t, m.Warnings, 1)

	view = mp3meta.NewBlockView(bytes.NewReader(data), int64(len(data)), "pic.mp3")
	m, err = mp3meta.Decode(t.Context(), view, mp3meta.WithoutBasicInfo())
	require.NoError(t, err)
	require.Len(t, m.Pictures, 1)
	assert.Equal(t, mp3meta.PictureFrontCover, m.Pictures[0].Kind)
	assert.Equal(t, "image/png", m.Pictures[0].Blob.MIMEType)
}

func TestOpenMany(t *testing.T) {
	paths := []string{songFile(t, "One"), songFile(t, "Two"), songFile(t, "Three")}

	records, err := mp3meta.OpenMany(t.Context(), paths...)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "One", records[0].Title)
	assert.Equal(t, "Two", records[1].Title)
	assert.Equal(t, "Three", records[2].Title)
}

func TestOpenMany_Empty(t *testing.T) {
	records, err := mp3meta.OpenMany(t.Context())
	assert.NoError(t, err)
	assert.Nil(t, records)
}

// TestOpenMany_Cancellation verifies that a cancelled context fails the batch.
func TestOpenMany_Cancellation(t *testing.T) {
	paths := make([]string, 5)
	for i := range paths {
		paths[i] = songFile(t, string(rune('a'+i)))
	}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	records, err := mp3meta.OpenMany(ctx, paths...)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Nil(t, records)
}

// TestOpenMany_PartialFailure verifies that one bad path fails the batch.
func TestOpenMany_PartialFailure(t *testing.T) {
	valid := songFile(t, "Valid")

	records, err := mp3meta.OpenMany(t.Context(), valid, "/nonexistent/file.mp3", valid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/nonexistent/file.mp3")
	assert.Nil(t, records)
}

func TestGetVersionInfo(t *testing.T) {
	info := mp3meta.GetVersionInfo()
	assert.Equal(t, mp3meta.Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
}

func BenchmarkOpen(b *testing.B) {
	path := songFile(b, "Bench")

	b.ReportAllocs()
	for b.Loop() {
		if _, err := mp3meta.Open(path); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkOpenMany(b *testing.B) {
	paths := make([]string, 16)
	for i := range paths {
		paths[i] = songFile(b, string(rune('a'+i)))
	}

	b.ReportAllocs()
	for b.Loop() {
		if _, err := mp3meta.OpenMany(context.Background(), paths...); err != nil {
			b.Fatal(err)
		}
	}
}
